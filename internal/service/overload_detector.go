package service

import (
	"sort"

	"github.com/bagdasarian/task-balancer/internal/domain"
)

// Classify относит загрузку к Normal / HighLoad / Overloaded
func Classify(load, capacity int, highLoadThreshold float64) domain.OverloadState {
	if load > capacity {
		return domain.StateOverloaded
	}
	if capacity <= 0 {
		return domain.StateNormal
	}
	if float64(load)/float64(capacity) > highLoadThreshold {
		return domain.StateHighLoad
	}
	return domain.StateNormal
}

// SortForDashboard упорядочивает сводку: сначала перегруженные, затем по убыванию загрузки.
// Сортировка стабильная, равные записи сохраняют исходный порядок.
func SortForDashboard(entries []domain.LoadEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		oi := entries[i].State == domain.StateOverloaded
		oj := entries[j].State == domain.StateOverloaded
		if oi != oj {
			return oi
		}
		return entries[i].CurrentLoad > entries[j].CurrentLoad
	})
}
