// Package remote is the client for the backend persistence of analyses and
// folders. Records are stored one row per entity, scoped by user id. When no
// backend is configured the Unconfigured store stands in and every operation
// is a silent no-op, so callers never branch on availability.
package remote

import (
	"context"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Store is the CRUD contract over the remote backend, per authenticated
// user id.
type Store interface {
	FetchAnalyses(ctx context.Context, userID string) ([]vocab.SavedAnalysis, error)
	FetchFolders(ctx context.Context, userID string) ([]vocab.AnalysisFolder, error)

	SaveAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error
	// UpdateAnalysis inserts or replaces the record with the same id,
	// scoped by user id.
	UpdateAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error
	DeleteAnalysis(ctx context.Context, userID, analysisID string) error
	// UpdateAnalysisFolder reparents one analysis; a nil folderID moves it
	// to uncategorized.
	UpdateAnalysisFolder(ctx context.Context, userID, analysisID string, folderID *string) error

	CreateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error
	UpdateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// SyncAnalyses inserts only those local records whose id is not already
	// present remotely. Calling it twice with the same set is a no-op the
	// second time.
	SyncAnalyses(ctx context.Context, userID string, local []vocab.SavedAnalysis) error
	SyncFolders(ctx context.Context, userID string, local []vocab.AnalysisFolder) error
}

// missingAnalyses returns the local records whose ids are absent from the
// existing id set, preserving local order.
func missingAnalyses(existing []string, local []vocab.SavedAnalysis) []vocab.SavedAnalysis {
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	var out []vocab.SavedAnalysis
	for _, a := range local {
		if !seen[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// missingFolders is the folder counterpart of missingAnalyses.
func missingFolders(existing []string, local []vocab.AnalysisFolder) []vocab.AnalysisFolder {
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	var out []vocab.AnalysisFolder
	for _, f := range local {
		if !seen[f.ID] {
			out = append(out, f)
		}
	}
	return out
}
