package support

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubSupportStore struct {
	reply *AssistantReply
	err   error
	asked []string
}

func (s *stubSupportStore) FAQs(context.Context) ([]FAQ, error) { return nil, nil }

func (s *stubSupportStore) Contact(context.Context, ContactForm) (*Ticket, error) { return nil, nil }

func (s *stubSupportStore) Lookup(context.Context, string, string) (*Ticket, error) {
	return nil, nil
}

func (s *stubSupportStore) Ask(_ context.Context, message string) (*AssistantReply, error) {
	s.asked = append(s.asked, message)
	return s.reply, s.err
}

// recorder collects chat events in order.
type recorder struct {
	mu     sync.Mutex
	lines  []string
	typing []bool
	chips  [][]string
}

func (r *recorder) events() Events {
	return Events{
		Typing: func(on bool) {
			r.mu.Lock()
			r.typing = append(r.typing, on)
			r.mu.Unlock()
		},
		BotLine: func(text string) {
			r.mu.Lock()
			r.lines = append(r.lines, text)
			r.mu.Unlock()
		},
		Suggestions: func(items []string) {
			r.mu.Lock()
			r.chips = append(r.chips, items)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshotLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func fastScript() []ScriptStep {
	return []ScriptStep{
		{Delay: time.Millisecond, Line: "one"},
		{Delay: time.Millisecond, Line: "two"},
		{Delay: time.Millisecond, Line: "three"},
	}
}

func TestChat_GreetingPlaysOnce(t *testing.T) {
	chat := NewChat(&stubSupportStore{})
	chat.script = fastScript()

	rec := &recorder{}
	chat.Open(context.Background(), rec.events())

	// The suggestion chips are the script's final event.
	deadline := time.After(time.Second)
	for {
		rec.mu.Lock()
		done := len(rec.chips) > 0
		rec.mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("greeting never finished")
		case <-time.After(time.Millisecond):
		}
	}
	chat.Close()

	lines := rec.snapshotLines()
	want := []string{"one", "two", "three"}
	if len(lines) != len(want) {
		t.Fatalf("greeting lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("greeting lines = %v, want %v", lines, want)
		}
	}
	if !chat.Greeted() {
		t.Error("Greeted should report true after the first open")
	}

	// Second open: only the suggestion chips, no replay.
	rec2 := &recorder{}
	chat.Open(context.Background(), rec2.events())
	if len(rec2.snapshotLines()) != 0 {
		t.Errorf("second open replayed lines %v", rec2.lines)
	}
	if len(rec2.chips) != 1 {
		t.Errorf("second open chips = %v, want the default set once", rec2.chips)
	}
}

func TestChat_CloseMidScriptHaltsPendingSteps(t *testing.T) {
	chat := NewChat(&stubSupportStore{})
	chat.script = []ScriptStep{
		{Delay: time.Millisecond, Line: "one"},
		{Delay: time.Hour, Line: "never"},
	}

	rec := &recorder{}
	chat.Open(context.Background(), rec.events())

	// Give the first step time to land, then close while step two pends.
	deadline := time.After(time.Second)
	for len(rec.snapshotLines()) == 0 {
		select {
		case <-deadline:
			t.Fatal("first step never played")
		case <-time.After(time.Millisecond):
		}
	}
	chat.Close()

	lines := rec.snapshotLines()
	if len(lines) != 1 || lines[0] != "one" {
		t.Errorf("lines after close = %v, want just the first step", lines)
	}
}

func TestChat_SendRoutesThroughAssistant(t *testing.T) {
	store := &stubSupportStore{reply: &AssistantReply{
		Answer:      "3-5 business days.",
		Suggestions: []string{"Anything else?"},
	}}
	chat := NewChat(store)

	rec := &recorder{}
	var userLines []string
	events := rec.events()
	events.UserLine = func(text string) { userLines = append(userLines, text) }

	chat.Send(context.Background(), "How long does shipping take?", events)

	if len(store.asked) != 1 || store.asked[0] != "How long does shipping take?" {
		t.Errorf("asked = %v", store.asked)
	}
	if len(userLines) != 1 {
		t.Errorf("user lines = %v", userLines)
	}
	lines := rec.snapshotLines()
	if len(lines) != 1 || lines[0] != "3-5 business days." {
		t.Errorf("bot lines = %v", lines)
	}
	// Typing flashes on then off around the call.
	if len(rec.typing) != 2 || !rec.typing[0] || rec.typing[1] {
		t.Errorf("typing sequence = %v, want [true false]", rec.typing)
	}
	if len(rec.chips) != 1 || rec.chips[0][0] != "Anything else?" {
		t.Errorf("chips = %v", rec.chips)
	}
}

func TestChat_SendFallbackOnError(t *testing.T) {
	chat := NewChat(&stubSupportStore{err: errors.New("boom")})

	rec := &recorder{}
	chat.Send(context.Background(), "hello?", rec.events())

	lines := rec.snapshotLines()
	if len(lines) != 1 || lines[0] != "Assistant unavailable right now. Please try again." {
		t.Errorf("fallback line = %v", lines)
	}
	if len(rec.chips) != 1 || len(rec.chips[0]) != len(DefaultSuggestions) {
		t.Errorf("fallback should reoffer the default chips, got %v", rec.chips)
	}
}
