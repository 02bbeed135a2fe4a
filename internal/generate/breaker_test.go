package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// stubService fails a fixed number of times, then succeeds.
type stubService struct {
	failures int
	calls    int
}

func (s *stubService) AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New("upstream error")
	}
	return &vocab.AnalysisResult{Summary: "ok"}, nil
}

func (s *stubService) GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error) {
	return s.AnalyzeText(ctx, topic, vocab.SourceTopic)
}

func (s *stubService) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	s.calls++
	return &vocab.GeneratedPractice{Scenario: "ok", Sentences: []vocab.PracticeSentence{{}}}, nil
}

func (s *stubService) LookupWord(ctx context.Context, word, wordContext string) (*vocab.WordLookup, error) {
	s.calls++
	return &vocab.WordLookup{Definition: "ok"}, nil
}

func TestBreaker_PassesResultsThrough(t *testing.T) {
	b := NewBreaker(&stubService{})

	result, err := b.AnalyzeText(t.Context(), "text", vocab.SourceNews)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	if result.Summary != "ok" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubService{failures: 100}
	b := NewBreaker(stub)

	for i := 0; i < 3; i++ {
		if _, err := b.AnalyzeText(t.Context(), "text", vocab.SourceNews); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}

	// The breaker is now open: the upstream must not see further calls.
	callsBefore := stub.calls
	_, err := b.AnalyzeText(t.Context(), "text", vocab.SourceNews)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState, got %v", err)
	}
	if stub.calls != callsBefore {
		t.Errorf("Upstream called while breaker open")
	}
}

func TestBreaker_RecoversAfterSuccess(t *testing.T) {
	stub := &stubService{failures: 2}
	b := NewBreaker(stub)

	for i := 0; i < 2; i++ {
		b.AnalyzeText(t.Context(), "text", vocab.SourceNews)
	}
	// Third call succeeds before the trip threshold is reached.
	result, err := b.AnalyzeText(t.Context(), "text", vocab.SourceNews)
	if err != nil {
		t.Fatalf("Expected recovery, got %v", err)
	}
	if result.Summary != "ok" {
		t.Errorf("Unexpected result: %+v", result)
	}
}
