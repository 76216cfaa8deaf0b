package support

import (
	"context"
	"sync"
	"time"
)

// ScriptStep is one timed line of the greeting: show the typing indicator
// for Delay, then say Line.
type ScriptStep struct {
	Delay time.Duration
	Line  string
}

// GreetingScript plays once per process lifetime, on the first open of the
// chat panel.
var GreetingScript = []ScriptStep{
	{Delay: 600 * time.Millisecond, Line: "Hi there! I'm the store assistant."},
	{Delay: 900 * time.Millisecond, Line: "Ask me about shipping, returns, or tracking an order."},
	{Delay: 700 * time.Millisecond, Line: "You can also tap one of the suggestions below."},
}

// Events receives chat output. Any nil callback is skipped.
type Events struct {
	Typing      func(on bool)
	BotLine     func(text string)
	UserLine    func(text string)
	Suggestions func(items []string)
}

func (e Events) typing(on bool) {
	if e.Typing != nil {
		e.Typing(on)
	}
}

func (e Events) botLine(text string) {
	if e.BotLine != nil {
		e.BotLine(text)
	}
}

func (e Events) suggestions(items []string) {
	if e.Suggestions != nil {
		e.Suggestions(items)
	}
}

// Chat drives the support assistant panel. The greeting is an explicit
// finite sequence of timed steps run by a single cancellable scheduler, so
// closing the panel mid-sequence halts pending steps instead of leaving
// orphaned timers.
type Chat struct {
	store  Store
	script []ScriptStep

	mu      sync.Mutex
	greeted bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewChat(store Store) *Chat {
	return &Chat{store: store, script: GreetingScript}
}

// Open starts the panel session. The first open plays the greeting;
// subsequent opens only show the static suggestion chips.
func (c *Chat) Open(ctx context.Context, events Events) {
	c.mu.Lock()
	if c.greeted {
		c.mu.Unlock()
		events.suggestions(DefaultSuggestions)
		return
	}
	c.greeted = true
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		defer events.typing(false)
		for _, step := range c.script {
			events.typing(true)
			timer := time.NewTimer(step.Delay)
			select {
			case <-runCtx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			events.typing(false)
			events.botLine(step.Line)
		}
		events.suggestions(DefaultSuggestions)
	}()
}

// Close halts a greeting still in flight and waits for the scheduler to
// stop.
func (c *Chat) Close() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Greeted reports whether the greeting has already played this lifetime.
func (c *Chat) Greeted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.greeted
}

// Send routes a free-text or chip message through the assistant, replacing
// the typing indicator with the answer (or a fallback line) and a fresh
// suggestion set.
func (c *Chat) Send(ctx context.Context, text string, events Events) {
	if events.UserLine != nil {
		events.UserLine(text)
	}
	events.typing(true)
	reply, err := c.store.Ask(ctx, text)
	events.typing(false)

	if err != nil {
		events.botLine("Assistant unavailable right now. Please try again.")
		events.suggestions(DefaultSuggestions)
		return
	}
	answer := reply.Answer
	if answer == "" {
		answer = "How else can I help?"
	}
	events.botLine(answer)
	if len(reply.Suggestions) > 0 {
		events.suggestions(reply.Suggestions)
	} else {
		events.suggestions(DefaultSuggestions)
	}
}
