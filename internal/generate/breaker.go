package generate

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Breaker wraps a Service with a circuit breaker so a flapping upstream
// trips open instead of being hammered on every user action. While open,
// calls fail fast with the same retryable error shape as a service failure.
type Breaker struct {
	inner Service
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps svc. The breaker opens after three consecutive failures
// and probes again after 30 seconds.
func NewBreaker(svc Service) *Breaker {
	return &Breaker{
		inner: svc,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "generation",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

func (b *Breaker) AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.AnalyzeText(ctx, text, source)
	})
	if err != nil {
		return nil, err
	}
	return v.(*vocab.AnalysisResult), nil
}

func (b *Breaker) GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.GenerateTopicStrategy(ctx, topic)
	})
	if err != nil {
		return nil, err
	}
	return v.(*vocab.AnalysisResult), nil
}

func (b *Breaker) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.GeneratePractice(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	return v.(*vocab.GeneratedPractice), nil
}

func (b *Breaker) LookupWord(ctx context.Context, word, wordContext string) (*vocab.WordLookup, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.LookupWord(ctx, word, wordContext)
	})
	if err != nil {
		return nil, err
	}
	return v.(*vocab.WordLookup), nil
}
