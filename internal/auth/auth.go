// Package auth tracks the authentication state of the application and lets
// other components observe sign-in and sign-out transitions.
package auth

import "sync"

// State is the current authentication state. UserID is empty while signed
// out.
type State struct {
	UserID string
}

// SignedIn reports whether a user is authenticated.
func (s State) SignedIn() bool {
	return s.UserID != ""
}

// Notifier holds the authentication state and notifies subscribers on every
// transition. Subscriptions return an unsubscribe handle scoped to the
// subscriber's lifetime.
type Notifier struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewNotifier creates a signed-out notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(State))}
}

// Current returns the current authentication state.
func (n *Notifier) Current() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Subscribe registers fn for state changes and returns its unsubscribe
// handle. fn is not called for the current state, only for transitions.
func (n *Notifier) Subscribe(fn func(State)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// SignIn transitions to the given user and notifies subscribers. Signing in
// as the already-current user is a no-op.
func (n *Notifier) SignIn(userID string) {
	n.transition(State{UserID: userID})
}

// SignOut clears the authentication state and notifies subscribers.
func (n *Notifier) SignOut() {
	n.transition(State{})
}

func (n *Notifier) transition(next State) {
	n.mu.Lock()
	if n.state == next {
		n.mu.Unlock()
		return
	}
	n.state = next
	fns := make([]func(State), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}
