package remote

import (
	"context"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Unconfigured is the null-object Store used when no backend DSN is set.
// Every operation succeeds with no effect, so the rest of the application
// runs in local-only mode without availability checks at call sites.
type Unconfigured struct{}

var _ Store = Unconfigured{}

func (Unconfigured) FetchAnalyses(context.Context, string) ([]vocab.SavedAnalysis, error) {
	return nil, nil
}

func (Unconfigured) FetchFolders(context.Context, string) ([]vocab.AnalysisFolder, error) {
	return nil, nil
}

func (Unconfigured) SaveAnalysis(context.Context, string, vocab.SavedAnalysis) error { return nil }

func (Unconfigured) UpdateAnalysis(context.Context, string, vocab.SavedAnalysis) error { return nil }

func (Unconfigured) DeleteAnalysis(context.Context, string, string) error { return nil }

func (Unconfigured) UpdateAnalysisFolder(context.Context, string, string, *string) error {
	return nil
}

func (Unconfigured) CreateFolder(context.Context, string, vocab.AnalysisFolder) error { return nil }

func (Unconfigured) UpdateFolder(context.Context, string, vocab.AnalysisFolder) error { return nil }

func (Unconfigured) DeleteFolder(context.Context, string, string) error { return nil }

func (Unconfigured) SyncAnalyses(context.Context, string, []vocab.SavedAnalysis) error { return nil }

func (Unconfigured) SyncFolders(context.Context, string, []vocab.AnalysisFolder) error { return nil }
