package compare

import (
	"errors"
	"sync"
)

const (
	// MaxSelection caps the side-by-side set; a fifth pick is rejected and
	// the triggering control reverted by the caller.
	MaxSelection = 4
	// MinRunSize is the floor for "run comparison".
	MinRunSize = 2
)

var (
	ErrSelectionFull = errors.New("compare selection is full (4 products max)")
	ErrTooFew        = errors.New("select at least 2 products to compare")
)

// Item is the id/name pair kept per selected product.
type Item struct {
	ID   int
	Name string
}

// Selection is the ordered, bounded compare set. Safe for concurrent use;
// order is insertion order.
type Selection struct {
	mu    sync.Mutex
	items []Item
}

// Toggle adds the product if absent and removes it if present. The added
// result tells the caller which way it went so a checkbox can be synced;
// ErrSelectionFull leaves the set unchanged.
func (s *Selection) Toggle(id int, name string) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return false, nil
		}
	}
	if len(s.items) >= MaxSelection {
		return false, ErrSelectionFull
	}
	s.items = append(s.items, Item{ID: id, Name: name})
	return true, nil
}

func (s *Selection) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) Has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (s *Selection) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

func (s *Selection) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ID
	}
	return ids
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// CanRun gates the "run comparison" control.
func (s *Selection) CanRun() bool {
	return s.Len() >= MinRunSize
}

// CanClear gates the "clear" control.
func (s *Selection) CanClear() bool {
	return s.Len() > 0
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
