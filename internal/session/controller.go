package session

import (
	"context"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/auth"
	"codeberg.org/velkan/lingoscope/internal/generate"
	"codeberg.org/velkan/lingoscope/internal/reconcile"
	"codeberg.org/velkan/lingoscope/internal/remote"
)

// Controller owns one user's workflow: the live session, the collection,
// and the login reconciliation. It watches the auth notifier for its own
// lifetime; Close detaches it.
type Controller struct {
	Session    *Session
	Collection *Collection

	engine      *reconcile.Engine
	unsubscribe func()

	mu       sync.Mutex
	lastUser string
}

// NewController wires a session, collection and reconciliation engine over
// the shared cache, store and notifier. Sign-in triggers a merge and swaps
// the merged view into the collection; sign-out rearms the merge guard for
// the next login.
func NewController(gen generate.Service, cache Cache, store remote.Store, notifier *auth.Notifier) *Controller {
	collection := NewCollection(cache, store, notifier)
	c := &Controller{
		Session:    NewSession(gen, collection),
		Collection: collection,
		engine:     reconcile.New(cache, store),
	}
	c.unsubscribe = notifier.Subscribe(c.onAuthChange)
	return c
}

// Close detaches the controller from the auth notifier and waits for
// pending remote writes.
func (c *Controller) Close() {
	c.unsubscribe()
	c.Collection.Flush()
}

func (c *Controller) onAuthChange(state auth.State) {
	if state.SignedIn() {
		c.mu.Lock()
		c.lastUser = state.UserID
		c.mu.Unlock()

		analyses, folders := c.engine.Merge(context.Background(), state.UserID)
		c.Collection.Replace(analyses, folders)
		return
	}

	c.mu.Lock()
	last := c.lastUser
	c.lastUser = ""
	c.mu.Unlock()
	if last != "" {
		c.engine.Rearm(last)
	}
}
