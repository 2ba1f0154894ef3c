package state

import "sync"

// Store — потокобезопасный контейнер State. Все изменения идут через Dispatch.
type Store struct {
	mu sync.RWMutex
	st State
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{}
}

// Dispatch применяет действие атомарно и возвращает состояние до и после.
func (s *Store) Dispatch(a Action) (prev, next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.st.clone()
	s.st = Reduce(s.st, a)
	return prev, s.st.clone()
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.clone()
}
