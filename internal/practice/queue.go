// Package practice drives flashcard-style review of analyzed vocabulary.
// Items are consumed in fixed-size batches; a batch is only committed once
// practice material for it was generated successfully, so a failed
// generation can be retried with the same items.
package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// DefaultBatchSize is the number of vocabulary items practiced per round.
const DefaultBatchSize = 5

var (
	// ErrExhausted is returned when every item in the queue has been
	// practiced.
	ErrExhausted = errors.New("no vocabulary items left to practice")

	// ErrBatchInFlight is returned when a batch is requested while the
	// previous one is still being generated.
	ErrBatchInFlight = errors.New("a practice batch is already being generated")

	// ErrEmptyQueue is returned when practice starts without any items.
	ErrEmptyQueue = errors.New("no vocabulary items selected for practice")
)

// GenerateFunc produces practice material for one batch of items.
type GenerateFunc func(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error)

// Queue walks a selection of vocabulary items batch by batch. The cursor
// only advances when generation succeeds; the final batch may be smaller
// than the batch size.
type Queue struct {
	gen GenerateFunc

	mu        sync.Mutex
	items     []vocab.VocabularyItem
	batchSize int
	cursor    int
	inFlight  bool
}

// NewQueue creates an empty queue with the default batch size.
func NewQueue(gen GenerateFunc) *Queue {
	return &Queue{gen: gen, batchSize: DefaultBatchSize}
}

// SetBatchSize overrides the batch size. Values below one are ignored.
func (q *Queue) SetBatchSize(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n >= 1 {
		q.batchSize = n
	}
}

// Start loads a fresh selection and rewinds the cursor. Practicing all of
// an analysis and practicing a hand-picked subset both go through here;
// the queue never reorders what it is given. While a batch is being
// generated the queue cannot be restarted, otherwise the resolving batch
// would advance the cursor over the new selection.
func (q *Queue) Start(items []vocab.VocabularyItem) error {
	if len(items) == 0 {
		return ErrEmptyQueue
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.inFlight {
		return ErrBatchInFlight
	}
	q.items = append([]vocab.VocabularyItem{}, items...)
	q.cursor = 0
	return nil
}

// Remaining returns how many items have not been practiced yet.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.cursor
}

// Exhausted reports whether every item has been practiced.
func (q *Queue) Exhausted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cursor >= len(q.items)
}

// NextBatch generates practice material for the next slice of items. On
// success the cursor moves past the batch; on failure it stays put so the
// same items are retried next time. Only one batch may be in flight.
func (q *Queue) NextBatch(ctx context.Context) (*vocab.GeneratedPractice, error) {
	q.mu.Lock()
	if q.inFlight {
		q.mu.Unlock()
		return nil, ErrBatchInFlight
	}
	if q.cursor >= len(q.items) {
		q.mu.Unlock()
		return nil, ErrExhausted
	}
	end := q.cursor + q.batchSize
	if end > len(q.items) {
		end = len(q.items)
	}
	batch := append([]vocab.VocabularyItem{}, q.items[q.cursor:end]...)
	q.inFlight = true
	q.mu.Unlock()

	practice, err := q.gen(ctx, batch)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.inFlight = false
	if err != nil {
		return nil, fmt.Errorf("practice batch failed: %w", err)
	}
	q.cursor += len(batch)
	return practice, nil
}
