package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"codeberg.org/velkan/lingoscope/internal/auth"
	"codeberg.org/velkan/lingoscope/internal/remote"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

var (
	// ErrNoSuchAnalysis is returned when an operation targets an analysis
	// id that is not in the collection.
	ErrNoSuchAnalysis = errors.New("no such analysis")

	// ErrNoSuchFolder is returned when an operation targets a folder id
	// that is not in the collection.
	ErrNoSuchFolder = errors.New("no such folder")
)

// Cache is the slice of the local cache the collection writes through.
type Cache interface {
	Load() ([]vocab.SavedAnalysis, []vocab.AnalysisFolder)
	Save(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) error
}

// Collection holds the user's saved analyses and folders. Every mutation is
// written through the local cache synchronously and mirrored to the remote
// store asynchronously; the caller sees the local write immediately while
// the remote write is pending.
type Collection struct {
	mu       sync.Mutex
	analyses []vocab.SavedAnalysis
	folders  []vocab.AnalysisFolder

	cache    Cache
	store    remote.Store
	notifier *auth.Notifier

	pending atomic.Int32
	wg      sync.WaitGroup
	logf    func(format string, args ...any)
}

// NewCollection creates a collection primed from the local cache.
func NewCollection(cache Cache, store remote.Store, notifier *auth.Notifier) *Collection {
	analyses, folders := cache.Load()
	return &Collection{
		analyses: analyses,
		folders:  folders,
		cache:    cache,
		store:    store,
		notifier: notifier,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetLogf overrides where background-write failures are reported.
func (c *Collection) SetLogf(logf func(format string, args ...any)) {
	c.logf = logf
}

// Analyses returns a copy of the saved analyses in insertion order.
func (c *Collection) Analyses() []vocab.SavedAnalysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]vocab.SavedAnalysis{}, c.analyses...)
}

// Folders returns a copy of the folder list.
func (c *Collection) Folders() []vocab.AnalysisFolder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]vocab.AnalysisFolder{}, c.folders...)
}

// Get returns the analysis with the given id.
func (c *Collection) Get(analysisID string) (vocab.SavedAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.analyses {
		if a.ID == analysisID {
			return a, nil
		}
	}
	return vocab.SavedAnalysis{}, ErrNoSuchAnalysis
}

// Replace swaps in a reconciled view, e.g. after the login merge.
func (c *Collection) Replace(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) {
	c.mu.Lock()
	c.analyses = analyses
	c.folders = folders
	c.mu.Unlock()
}

// SaveResult stores a completed analysis result. When the file name (or,
// failing that, the input text) matches an existing record, that record is
// updated in place keeping its id, notes and folder; otherwise a new record
// with a fresh id is appended. Returns the stored record and whether it was
// newly inserted.
func (c *Collection) SaveResult(result *vocab.AnalysisResult, inputText, fileName string, source vocab.SourceType) (vocab.SavedAnalysis, bool) {
	c.mu.Lock()

	var record vocab.SavedAnalysis
	inserted := false
	matched := -1
	for i := range c.analyses {
		if c.analyses[i].Matches(fileName, inputText) {
			matched = i
			break
		}
	}

	if matched >= 0 {
		existing := &c.analyses[matched]
		existing.Date = vocab.NowMillis()
		existing.SourceType = source
		existing.InputText = inputText
		existing.FileName = fileName
		existing.Result = *result
		record = *existing
	} else {
		record = vocab.SavedAnalysis{
			ID:         vocab.NewID(),
			Date:       vocab.NowMillis(),
			SourceType: source,
			InputText:  inputText,
			FileName:   fileName,
			Result:     *result,
		}
		c.analyses = append(c.analyses, record)
		inserted = true
	}
	c.mu.Unlock()

	c.persistLocal()
	if inserted {
		c.asyncRemote(func(ctx context.Context, userID string) error {
			return c.store.SaveAnalysis(ctx, userID, record)
		})
	} else {
		c.asyncRemote(func(ctx context.Context, userID string) error {
			return c.store.UpdateAnalysis(ctx, userID, record)
		})
	}
	return record, inserted
}

// Remove deletes an analysis from the collection, the local cache and the
// remote store.
func (c *Collection) Remove(analysisID string) error {
	c.mu.Lock()
	found := false
	kept := make([]vocab.SavedAnalysis, 0, len(c.analyses))
	for _, a := range c.analyses {
		if a.ID == analysisID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	c.analyses = kept
	c.mu.Unlock()

	if !found {
		return ErrNoSuchAnalysis
	}
	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.DeleteAnalysis(ctx, userID, analysisID)
	})
	return nil
}

// AddNote appends a note to an analysis and returns it.
func (c *Collection) AddNote(analysisID, word, definition, noteContext string) (vocab.Note, error) {
	note := vocab.Note{
		ID:         vocab.NewID(),
		Word:       word,
		Definition: definition,
		Context:    noteContext,
		Timestamp:  vocab.NowMillis(),
	}

	updated, err := c.mutateAnalysis(analysisID, func(a *vocab.SavedAnalysis) {
		a.Notes = append(a.Notes, note)
	})
	if err != nil {
		return vocab.Note{}, err
	}

	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.UpdateAnalysis(ctx, userID, updated)
	})
	return note, nil
}

// RemoveNote deletes a single note from an analysis.
func (c *Collection) RemoveNote(analysisID, noteID string) error {
	updated, err := c.mutateAnalysis(analysisID, func(a *vocab.SavedAnalysis) {
		kept := make([]vocab.Note, 0, len(a.Notes))
		for _, n := range a.Notes {
			if n.ID != noteID {
				kept = append(kept, n)
			}
		}
		a.Notes = kept
	})
	if err != nil {
		return err
	}

	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.UpdateAnalysis(ctx, userID, updated)
	})
	return nil
}

// CreateFolder adds a new folder and returns it.
func (c *Collection) CreateFolder(name, color string) vocab.AnalysisFolder {
	folder := vocab.AnalysisFolder{
		ID:        vocab.NewID(),
		Name:      name,
		CreatedAt: vocab.NowMillis(),
		Color:     color,
	}

	c.mu.Lock()
	c.folders = append(c.folders, folder)
	c.mu.Unlock()

	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.CreateFolder(ctx, userID, folder)
	})
	return folder
}

// UpdateFolder renames and recolors a folder.
func (c *Collection) UpdateFolder(folderID, name, color string) error {
	c.mu.Lock()
	var updated *vocab.AnalysisFolder
	for i := range c.folders {
		if c.folders[i].ID == folderID {
			c.folders[i].Name = name
			c.folders[i].Color = color
			folder := c.folders[i]
			updated = &folder
			break
		}
	}
	c.mu.Unlock()

	if updated == nil {
		return ErrNoSuchFolder
	}
	c.persistLocal()
	folder := *updated
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.UpdateFolder(ctx, userID, folder)
	})
	return nil
}

// DeleteFolder removes a folder, moving its member analyses to
// uncategorized first. The analyses themselves are never deleted.
func (c *Collection) DeleteFolder(folderID string) error {
	c.mu.Lock()
	found := false
	kept := make([]vocab.AnalysisFolder, 0, len(c.folders))
	for _, f := range c.folders {
		if f.ID == folderID {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		c.mu.Unlock()
		return ErrNoSuchFolder
	}
	c.folders = kept

	var members []string
	for i := range c.analyses {
		if c.analyses[i].FolderID != nil && *c.analyses[i].FolderID == folderID {
			c.analyses[i].FolderID = nil
			members = append(members, c.analyses[i].ID)
		}
	}
	c.mu.Unlock()

	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		// Null the references before removing the folder, mirroring the
		// local ordering.
		for _, analysisID := range members {
			if err := c.store.UpdateAnalysisFolder(ctx, userID, analysisID, nil); err != nil {
				return err
			}
		}
		return c.store.DeleteFolder(ctx, userID, folderID)
	})
	return nil
}

// MoveToFolder reparents one analysis. A nil folderID moves it to
// uncategorized; otherwise the folder must exist.
func (c *Collection) MoveToFolder(analysisID string, folderID *string) error {
	c.mu.Lock()
	if folderID != nil {
		exists := false
		for _, f := range c.folders {
			if f.ID == *folderID {
				exists = true
				break
			}
		}
		if !exists {
			c.mu.Unlock()
			return ErrNoSuchFolder
		}
	}
	c.mu.Unlock()

	if _, err := c.mutateAnalysis(analysisID, func(a *vocab.SavedAnalysis) {
		a.FolderID = folderID
	}); err != nil {
		return err
	}

	c.persistLocal()
	c.asyncRemote(func(ctx context.Context, userID string) error {
		return c.store.UpdateAnalysisFolder(ctx, userID, analysisID, folderID)
	})
	return nil
}

// PendingRemote reports whether any remote write is still awaiting
// confirmation.
func (c *Collection) PendingRemote() bool {
	return c.pending.Load() > 0
}

// Flush blocks until all in-flight remote writes have resolved.
func (c *Collection) Flush() {
	c.wg.Wait()
}

// mutateAnalysis applies fn to the analysis with the given id under the
// lock and returns the updated copy.
func (c *Collection) mutateAnalysis(analysisID string, fn func(*vocab.SavedAnalysis)) (vocab.SavedAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.analyses {
		if c.analyses[i].ID == analysisID {
			fn(&c.analyses[i])
			return c.analyses[i], nil
		}
	}
	return vocab.SavedAnalysis{}, ErrNoSuchAnalysis
}

// persistLocal writes the current collections through the local cache.
// Failures are logged, not propagated: the in-memory view stays usable.
func (c *Collection) persistLocal() {
	c.mu.Lock()
	analyses := append([]vocab.SavedAnalysis{}, c.analyses...)
	folders := append([]vocab.AnalysisFolder{}, c.folders...)
	c.mu.Unlock()

	if err := c.cache.Save(analyses, folders); err != nil {
		c.logf("Warning: failed to write local cache: %v", err)
	}
}

// asyncRemote runs one remote write in the background when a user is
// signed in. Failures are logged and swallowed; the local write already
// succeeded and reconciliation picks up the difference on the next login.
func (c *Collection) asyncRemote(fn func(ctx context.Context, userID string) error) {
	userID := c.notifier.Current().UserID
	if userID == "" {
		return
	}

	c.pending.Add(1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.pending.Add(-1)
		if err := fn(context.Background(), userID); err != nil {
			c.logf("Warning: remote write failed: %v", err)
		}
	}()
}
