package service

import (
	"sync"

	"cafe-menu/menu-svc/internal/domain"
)

// MenuState holds the live menu. Readers get deep copies; only the mutator,
// the loader bootstrap and the sync consumer replace it.
type MenuState struct {
	mu          sync.RWMutex
	menu        domain.Menu
	subscribers []func(domain.Menu)
}

func NewMenuState(initial domain.Menu) *MenuState {
	return &MenuState{menu: initial.Clone()}
}

func (s *MenuState) Snapshot() domain.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu.Clone()
}

func (s *MenuState) Replace(menu domain.Menu) {
	s.mu.Lock()
	s.menu = menu.Clone()
	subs := append([]func(domain.Menu){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(menu.Clone())
	}
}

// Subscribe registers fn to receive every replaced menu. Callbacks run on the
// replacing goroutine and must not block.
func (s *MenuState) Subscribe(fn func(domain.Menu)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
