package domain

import "time"

type Team struct {
	ID        string
	Name      string
	OwnerID   string
	Members   []Member
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Member - участник команды. Capacity - сколько задач он может вести одновременно.
type Member struct {
	ID       string
	Name     string
	Role     string
	Capacity int
}

// MemberByID ищет участника в составе команды
func (t *Team) MemberByID(id string) (Member, bool) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
