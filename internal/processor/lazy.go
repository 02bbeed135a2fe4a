package processor

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/cli"
	"codeberg.org/velkan/lingoscope/internal/generate"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// lazyGenerator defers construction of the generation client until a
// command actually calls the service, so local-only operations (history,
// delete, export) run without an API key configured.
type lazyGenerator struct {
	mu  sync.Mutex
	svc generate.Service
}

func (l *lazyGenerator) service(ctx context.Context) (generate.Service, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.svc == nil {
		gemini, err := generate.NewGeminiClient(ctx, cli.GetGeminiKey())
		if err != nil {
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
		l.svc = generate.NewBreaker(gemini)
	}
	return l.svc, nil
}

func (l *lazyGenerator) AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error) {
	svc, err := l.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.AnalyzeText(ctx, text, source)
}

func (l *lazyGenerator) GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error) {
	svc, err := l.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.GenerateTopicStrategy(ctx, topic)
}

func (l *lazyGenerator) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	svc, err := l.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.GeneratePractice(ctx, items)
}

func (l *lazyGenerator) LookupWord(ctx context.Context, word, wordContext string) (*vocab.WordLookup, error) {
	svc, err := l.service(ctx)
	if err != nil {
		return nil, err
	}
	return svc.LookupWord(ctx, word, wordContext)
}
