package subscription

import (
	"context"
	"sync"
)

// Hook is a per-user view of the subscription state.
type Hook struct {
	q      *Query
	userID string

	mu        sync.Mutex
	state     State
	loaded    bool
	gen       uint64
	listeners map[int]func(State)
	nextID    int
}

func newHook(q *Query, userID string) *Hook {
	h := &Hook{q: q, userID: userID, listeners: make(map[int]func(State))}
	if userID == "" {
		h.state = Inactive()
		h.loaded = true
	} else {
		h.state = Loading()
	}
	return h
}

// UserID returns the user the hook is bound to.
func (h *Hook) UserID() string { return h.userID }

// State returns the latest snapshot.
func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// OnChange registers fn for every state transition and returns a function
// that removes it. Listeners are called synchronously, in no fixed order.
func (h *Hook) OnChange(fn func(State)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

// Start resolves the state. It performs one lookup per invalidation cycle;
// later calls return the resolved state. An empty user id never looks up.
func (h *Hook) Start(ctx context.Context) State {
	if h.userID == "" {
		return h.State()
	}

	gen := h.q.generation(h.userID)
	h.mu.Lock()
	if h.loaded && h.gen == gen {
		s := h.state
		h.mu.Unlock()
		return s
	}
	h.mu.Unlock()

	h.set(Loading())
	s := h.q.Load(ctx, h.userID)

	h.mu.Lock()
	h.loaded = true
	h.gen = gen
	h.mu.Unlock()
	h.set(s)
	return s
}

// Refetch invalidates the user's cached state and loads it again.
func (h *Hook) Refetch(ctx context.Context) State {
	if h.userID == "" {
		return h.State()
	}
	h.q.Invalidate(ctx, h.userID)
	return h.Start(ctx)
}

func (h *Hook) set(s State) {
	h.mu.Lock()
	if h.state.Equal(s) {
		h.mu.Unlock()
		return
	}
	h.state = s
	listeners := make([]func(State), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
