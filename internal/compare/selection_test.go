package compare

import (
	"errors"
	"testing"
)

func TestSelection_ToggleAddsAndRemoves(t *testing.T) {
	var s Selection

	added, err := s.Toggle(1, "Lamp")
	if err != nil || !added {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	if !s.Has(1) || s.Len() != 1 {
		t.Fatalf("selection should contain product 1")
	}

	added, err = s.Toggle(1, "Lamp")
	if err != nil || added {
		t.Fatalf("second toggle: added=%v err=%v, want removal", added, err)
	}
	if s.Has(1) || s.Len() != 0 {
		t.Fatal("toggling an existing product must remove it")
	}
}

func TestSelection_CapRejectsFifth(t *testing.T) {
	var s Selection
	for id := 1; id <= MaxSelection; id++ {
		if _, err := s.Toggle(id, ""); err != nil {
			t.Fatalf("toggle %d: %v", id, err)
		}
	}

	added, err := s.Toggle(5, "")
	if !errors.Is(err, ErrSelectionFull) {
		t.Fatalf("fifth toggle err = %v, want ErrSelectionFull", err)
	}
	if added {
		t.Error("fifth toggle must not report added")
	}
	if s.Len() != MaxSelection || s.Has(5) {
		t.Error("a rejected toggle must leave the selection unchanged")
	}

	// A full selection can still remove members.
	if removed := s.Remove(3); !removed {
		t.Error("Remove on a member should succeed")
	}
	if _, err := s.Toggle(5, ""); err != nil {
		t.Errorf("toggle after making room: %v", err)
	}
}

func TestSelection_Gates(t *testing.T) {
	var s Selection
	if s.CanRun() || s.CanClear() {
		t.Error("empty selection should gate both controls off")
	}

	s.Toggle(1, "")
	if s.CanRun() {
		t.Error("one product is below the run floor")
	}
	if !s.CanClear() {
		t.Error("clear should be available with one product")
	}

	s.Toggle(2, "")
	if !s.CanRun() {
		t.Error("two products should enable run")
	}

	s.Clear()
	if s.Len() != 0 || s.CanClear() {
		t.Error("Clear should empty the selection")
	}
}

func TestSelection_OrderIsInsertionOrder(t *testing.T) {
	var s Selection
	for _, id := range []int{7, 3, 9} {
		s.Toggle(id, "")
	}
	ids := s.IDs()
	want := []int{7, 3, 9}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", ids, want)
		}
	}
}
