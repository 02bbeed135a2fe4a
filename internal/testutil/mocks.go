// Package testutil provides shared mocks for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// MockStore is an in-memory remote store. It records every call and can be
// switched to fail wholesale to exercise degraded paths.
type MockStore struct {
	mu       sync.Mutex
	Analyses map[string][]vocab.SavedAnalysis // keyed by user id
	Folders  map[string][]vocab.AnalysisFolder
	Err      error // when set, every operation fails with it
	Calls    []string
}

// NewMockStore creates an empty store.
func NewMockStore() *MockStore {
	return &MockStore{
		Analyses: make(map[string][]vocab.SavedAnalysis),
		Folders:  make(map[string][]vocab.AnalysisFolder),
	}
}

// CallLog returns a copy of the recorded calls.
func (m *MockStore) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.Calls...)
}

// SetErr switches the store into failing mode.
func (m *MockStore) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

func (m *MockStore) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

func (m *MockStore) FetchAnalyses(ctx context.Context, userID string) ([]vocab.SavedAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("FetchAnalyses %s", userID)
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]vocab.SavedAnalysis{}, m.Analyses[userID]...), nil
}

func (m *MockStore) FetchFolders(ctx context.Context, userID string) ([]vocab.AnalysisFolder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("FetchFolders %s", userID)
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]vocab.AnalysisFolder{}, m.Folders[userID]...), nil
}

func (m *MockStore) SaveAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SaveAnalysis %s %s", userID, a.ID)
	if m.Err != nil {
		return m.Err
	}
	m.Analyses[userID] = append(m.Analyses[userID], a)
	return nil
}

func (m *MockStore) UpdateAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateAnalysis %s %s", userID, a.ID)
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Analyses[userID] {
		if existing.ID == a.ID {
			m.Analyses[userID][i] = a
			return nil
		}
	}
	m.Analyses[userID] = append(m.Analyses[userID], a)
	return nil
}

func (m *MockStore) DeleteAnalysis(ctx context.Context, userID, analysisID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteAnalysis %s %s", userID, analysisID)
	if m.Err != nil {
		return m.Err
	}
	kept := make([]vocab.SavedAnalysis, 0, len(m.Analyses[userID]))
	for _, a := range m.Analyses[userID] {
		if a.ID != analysisID {
			kept = append(kept, a)
		}
	}
	m.Analyses[userID] = kept
	return nil
}

func (m *MockStore) UpdateAnalysisFolder(ctx context.Context, userID, analysisID string, folderID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateAnalysisFolder %s %s", userID, analysisID)
	if m.Err != nil {
		return m.Err
	}
	for i, a := range m.Analyses[userID] {
		if a.ID == analysisID {
			m.Analyses[userID][i].FolderID = folderID
		}
	}
	return nil
}

func (m *MockStore) CreateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateFolder %s %s", userID, f.ID)
	if m.Err != nil {
		return m.Err
	}
	m.Folders[userID] = append(m.Folders[userID], f)
	return nil
}

func (m *MockStore) UpdateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("UpdateFolder %s %s", userID, f.ID)
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Folders[userID] {
		if existing.ID == f.ID {
			m.Folders[userID][i] = f
			return nil
		}
	}
	m.Folders[userID] = append(m.Folders[userID], f)
	return nil
}

func (m *MockStore) DeleteFolder(ctx context.Context, userID, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteFolder %s %s", userID, folderID)
	if m.Err != nil {
		return m.Err
	}
	kept := make([]vocab.AnalysisFolder, 0, len(m.Folders[userID]))
	for _, f := range m.Folders[userID] {
		if f.ID != folderID {
			kept = append(kept, f)
		}
	}
	m.Folders[userID] = kept
	return nil
}

func (m *MockStore) SyncAnalyses(ctx context.Context, userID string, local []vocab.SavedAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SyncAnalyses %s (%d)", userID, len(local))
	if m.Err != nil {
		return m.Err
	}
	existing := make(map[string]bool)
	for _, a := range m.Analyses[userID] {
		existing[a.ID] = true
	}
	for _, a := range local {
		if !existing[a.ID] {
			m.Analyses[userID] = append(m.Analyses[userID], a)
		}
	}
	return nil
}

func (m *MockStore) SyncFolders(ctx context.Context, userID string, local []vocab.AnalysisFolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SyncFolders %s (%d)", userID, len(local))
	if m.Err != nil {
		return m.Err
	}
	existing := make(map[string]bool)
	for _, f := range m.Folders[userID] {
		existing[f.ID] = true
	}
	for _, f := range local {
		if !existing[f.ID] {
			m.Folders[userID] = append(m.Folders[userID], f)
		}
	}
	return nil
}

// MockGenerator is a canned generation service.
type MockGenerator struct {
	mu       sync.Mutex
	Result   *vocab.AnalysisResult
	Practice *vocab.GeneratedPractice
	Lookup   *vocab.WordLookup
	Err      error
	Calls    []string
}

// CallLog returns a copy of the recorded calls.
func (m *MockGenerator) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.Calls...)
}

func (m *MockGenerator) AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("AnalyzeText %s", source))
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *MockGenerator) GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("GenerateTopicStrategy %s", topic))
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m *MockGenerator) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("GeneratePractice (%d)", len(items)))
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Practice, nil
}

func (m *MockGenerator) LookupWord(ctx context.Context, word, wordContext string) (*vocab.WordLookup, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("LookupWord %s", word))
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Lookup, nil
}

// SampleResult builds a small analysis result for tests.
func SampleResult(terms ...string) *vocab.AnalysisResult {
	result := &vocab.AnalysisResult{Summary: "summary", Tone: "neutral"}
	for _, term := range terms {
		result.Vocabulary = append(result.Vocabulary, vocab.VocabularyItem{
			Term:       term,
			Definition: "definition of " + term,
			Category:   vocab.CategoryIdiomsFixed,
		})
	}
	return result
}
