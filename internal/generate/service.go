// Package generate talks to the external generative-language service. It
// extracts idioms, phrasal verbs and nuanced vocabulary from text, builds
// topic strategies, produces practice payloads for vocabulary batches and
// looks up single words. Every call either returns a complete payload or a
// generic, retryable error; there are no partial results.
package generate

import (
	"context"
	"errors"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// ErrNoResult is returned when the service responds without a usable payload.
var ErrNoResult = errors.New("no result returned")

// Service is the generation contract the session state machine depends on.
type Service interface {
	// AnalyzeText extracts vocabulary from a piece of text.
	AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error)

	// GenerateTopicStrategy builds an expression strategy for a topic the
	// user wants to talk about.
	GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error)

	// GeneratePractice produces a practice scenario for a batch of items.
	GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error)

	// LookupWord resolves a single word against its surrounding context.
	LookupWord(ctx context.Context, word, context string) (*vocab.WordLookup, error)
}
