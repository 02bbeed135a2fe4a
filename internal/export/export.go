// Package export writes the saved collection to a portable JSON document
// for backup or transfer between machines.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// FormatVersion identifies the export document layout. Bump on any
// incompatible change.
const FormatVersion = 1

// Document is the on-disk export format.
type Document struct {
	FormatVersion int                    `json:"formatVersion"`
	ExportedAt    int64                  `json:"exportedAt"` // epoch millis
	Analyses      []vocab.SavedAnalysis  `json:"analyses"`
	Folders       []vocab.AnalysisFolder `json:"folders"`
	Vocabulary    []vocab.VocabularyItem `json:"vocabulary,omitempty"`
}

// Exporter builds export documents from a collection snapshot.
type Exporter struct {
	// IncludeVocabulary adds a flattened list of every vocabulary item
	// across all analyses, handy for spreadsheet imports.
	IncludeVocabulary bool
}

// Build assembles the export document for the given collections.
func (e *Exporter) Build(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) Document {
	doc := Document{
		FormatVersion: FormatVersion,
		ExportedAt:    vocab.NowMillis(),
		Analyses:      analyses,
		Folders:       folders,
	}
	if e.IncludeVocabulary {
		for _, a := range analyses {
			doc.Vocabulary = append(doc.Vocabulary, a.Result.Vocabulary...)
		}
	}
	return doc
}

// WriteFile writes the export document into dir under a timestamped name
// and returns the full path.
func (e *Exporter) WriteFile(dir string, analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("lingoscope-export-%s.json", timestamp))
	if _, err := os.Stat(path); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		path = filepath.Join(dir, fmt.Sprintf("lingoscope-export-%s.json", timestamp))
	}

	doc := e.Build(analyses, folders)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// ReadFile loads a previously written export document, rejecting
// documents from a newer format version.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse export file: %w", err)
	}
	if doc.FormatVersion > FormatVersion {
		return nil, fmt.Errorf("export format version %d is newer than supported version %d", doc.FormatVersion, FormatVersion)
	}
	return &doc, nil
}
