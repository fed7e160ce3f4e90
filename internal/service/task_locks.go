package service

import "sync"

// taskLocks - мьютекс на каждую задачу. Запись освобождается, когда её никто не держит.
type taskLocks struct {
	mu    sync.Mutex
	locks map[string]*taskLock
}

type taskLock struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocks() *taskLocks {
	return &taskLocks{locks: make(map[string]*taskLock)}
}

// Lock захватывает задачу taskID и возвращает функцию освобождения
func (l *taskLocks) Lock(taskID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[taskID]
	if !ok {
		lock = &taskLock{}
		l.locks[taskID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, taskID)
		}
		l.mu.Unlock()
	}
}

func (l *taskLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
