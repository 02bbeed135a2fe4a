// Package reconcile merges the offline cache with the remote store when a
// user signs in. Local-only records are uploaded by id, the remote is then
// re-fetched as the post-merge source of truth, and the local cache is
// overwritten with the merged view. A failing merge is never surfaced as a
// hard error: the user keeps the pre-merge local view.
package reconcile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/remote"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Cache is the slice of the local cache the engine needs.
type Cache interface {
	Load() ([]vocab.SavedAnalysis, []vocab.AnalysisFolder)
	Save(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) error
}

// Engine performs the login merge. One engine is shared per application
// lifetime.
type Engine struct {
	cache Cache
	store remote.Store

	mu     sync.Mutex
	merged map[string]bool // user ids merged this login session
	logf   func(format string, args ...any)
}

// New creates an engine over the given cache and store.
func New(cache Cache, store remote.Store) *Engine {
	return &Engine{
		cache:  cache,
		store:  store,
		merged: make(map[string]bool),
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetLogf overrides where merge failures are reported.
func (e *Engine) SetLogf(logf func(format string, args ...any)) {
	e.logf = logf
}

// Merge reconciles local and remote collections for userID and returns the
// view the UI should present. It runs at most once per sign-in: repeated or
// concurrent calls for the same login return the current local view without
// touching the network. If any network step fails the pre-merge local view
// is returned unmodified.
func (e *Engine) Merge(ctx context.Context, userID string) ([]vocab.SavedAnalysis, []vocab.AnalysisFolder) {
	analyses, folders := e.cache.Load()

	if _, unconfigured := e.store.(remote.Unconfigured); unconfigured {
		return analyses, folders
	}

	e.mu.Lock()
	if e.merged[userID] {
		e.mu.Unlock()
		return analyses, folders
	}
	// The guard arms on attempt, not on success: a failed merge is not
	// retried until the next sign-in.
	e.merged[userID] = true
	e.mu.Unlock()

	if err := e.store.SyncFolders(ctx, userID, folders); err != nil {
		e.logf("Warning: folder sync failed, keeping local view: %v", err)
		return analyses, folders
	}
	if err := e.store.SyncAnalyses(ctx, userID, analyses); err != nil {
		e.logf("Warning: analysis sync failed, keeping local view: %v", err)
		return analyses, folders
	}

	mergedAnalyses, err := e.store.FetchAnalyses(ctx, userID)
	if err != nil {
		e.logf("Warning: failed to fetch merged analyses, keeping local view: %v", err)
		return analyses, folders
	}
	mergedFolders, err := e.store.FetchFolders(ctx, userID)
	if err != nil {
		e.logf("Warning: failed to fetch merged folders, keeping local view: %v", err)
		return analyses, folders
	}

	if err := e.cache.Save(mergedAnalyses, mergedFolders); err != nil {
		e.logf("Warning: failed to write merged view to local cache: %v", err)
	}

	return mergedAnalyses, mergedFolders
}

// Rearm clears the merge guard for userID so the next sign-in merges again.
// Called on sign-out.
func (e *Engine) Rearm(userID string) {
	e.mu.Lock()
	delete(e.merged, userID)
	e.mu.Unlock()
}
