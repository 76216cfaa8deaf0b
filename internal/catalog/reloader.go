package catalog

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce sits inside the 250-300ms window the search box used.
const DefaultDebounce = 275 * time.Millisecond

type FetchFunc func(ctx context.Context, filter FilterState) ([]Product, error)

type RenderFunc func(products []Product, err error)

// Reloader debounces filter changes and serializes what gets rendered.
// Rapid triggers reset a pending timer rather than cancelling in-flight
// requests; instead every fetch carries a sequence number and a response
// that is no longer the latest issued is dropped, so a stale reply can never
// repaint over a fresher one.
type Reloader struct {
	fetch  FetchFunc
	render RenderFunc
	delay  time.Duration

	mu       sync.Mutex
	renderMu sync.Mutex
	timer    *time.Timer
	pending  *FilterState
	issued   uint64
	rendered uint64
	closed   bool
	wg       sync.WaitGroup
}

func NewReloader(fetch FetchFunc, render RenderFunc, delay time.Duration) *Reloader {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Reloader{fetch: fetch, render: render, delay: delay}
}

// Trigger schedules a reload for the given state, replacing any pending one.
func (r *Reloader) Trigger(ctx context.Context, filter FilterState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending = &filter
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		pending := r.pending
		r.pending = nil
		r.mu.Unlock()
		if pending != nil {
			r.fire(ctx, *pending)
		}
	})
}

// Flush runs any pending reload immediately. One-shot callers (and tests)
// use it instead of waiting out the debounce window.
func (r *Reloader) Flush(ctx context.Context) {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	pending := r.pending
	r.pending = nil
	closed := r.closed
	r.mu.Unlock()
	if pending != nil && !closed {
		r.fire(ctx, *pending)
	}
}

func (r *Reloader) fire(ctx context.Context, filter FilterState) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.issued++
	seq := r.issued
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		products, err := r.fetch(ctx, filter)

		r.renderMu.Lock()
		defer r.renderMu.Unlock()

		r.mu.Lock()
		stale := seq != r.issued || seq <= r.rendered || r.closed
		if !stale {
			r.rendered = seq
		}
		r.mu.Unlock()
		if stale {
			return
		}
		r.render(products, err)
	}()
}

// Wait blocks until in-flight fetches finish.
func (r *Reloader) Wait() {
	r.wg.Wait()
}

func (r *Reloader) Close() {
	r.mu.Lock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = nil
	r.mu.Unlock()
	r.wg.Wait()
}
