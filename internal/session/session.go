// Package session holds the live analysis workflow: the status state
// machine driving one analysis at a time, and the collection of saved
// analyses and folders backing the browse and annotate surfaces.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeberg.org/velkan/lingoscope/internal/generate"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Status describes where the session is in the analysis workflow.
type Status int

const (
	// StatusIdle means no analysis is running and none is displayed.
	StatusIdle Status = iota
	// StatusAnalyzing means a text or topic request is in flight.
	StatusAnalyzing
	// StatusPracticing means practice material is being generated for a
	// completed analysis.
	StatusPracticing
	// StatusComplete means an analysis result is available.
	StatusComplete
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusAnalyzing:
		return "analyzing"
	case StatusPracticing:
		return "practicing"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when an analysis is requested while one is
	// already in flight.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrNothingToSave is returned when Save is called without a
	// completed result.
	ErrNothingToSave = errors.New("no completed analysis to save")

	// ErrNoAnalysis is returned when practice is requested before an
	// analysis has completed.
	ErrNoAnalysis = errors.New("no completed analysis to practice")

	// errStale marks a response that arrived after the session moved on.
	errStale = errors.New("superseded analysis response discarded")
)

// Session is the single-analysis workflow state machine. All methods are
// safe for concurrent use; long-running generation calls happen outside
// the lock so Reset stays responsive.
type Session struct {
	gen        generate.Service
	collection *Collection

	mu        sync.Mutex
	status    Status
	seq       uint64 // bumps on every new request and on Reset
	inputText string
	fileName  string
	source    vocab.SourceType
	topic     string
	result    *vocab.AnalysisResult
	practice  *vocab.GeneratedPractice
}

// NewSession creates an idle session over the given generation service
// and collection.
func NewSession(gen generate.Service, collection *Collection) *Session {
	return &Session{gen: gen, collection: collection}
}

// Status returns the current workflow status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Result returns the completed analysis result, or nil when none is
// available.
func (s *Session) Result() *vocab.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Practice returns the most recently generated practice material, or nil.
func (s *Session) Practice() *vocab.GeneratedPractice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.practice
}

// InputText returns the text of the current analysis.
func (s *Session) InputText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputText
}

// AnalyzeText runs a full text analysis. The session enters analyzing,
// then complete on success or back to idle on failure so the user can
// retry. A response that arrives after Reset or a newer request is
// discarded without touching the session.
func (s *Session) AnalyzeText(ctx context.Context, text, fileName string, source vocab.SourceType) error {
	seq, err := s.begin(func() {
		s.inputText = text
		s.fileName = fileName
		s.source = source
		s.topic = ""
	})
	if err != nil {
		return err
	}

	result, genErr := s.gen.AnalyzeText(ctx, text, source)
	return s.finishAnalysis(seq, result, genErr)
}

// AnalyzeTopic generates a vocabulary strategy for a topic instead of
// analyzing supplied text.
func (s *Session) AnalyzeTopic(ctx context.Context, topic string) error {
	seq, err := s.begin(func() {
		s.inputText = topic
		s.fileName = ""
		s.source = vocab.SourceTopic
		s.topic = topic
	})
	if err != nil {
		return err
	}

	result, genErr := s.gen.GenerateTopicStrategy(ctx, topic)
	return s.finishAnalysis(seq, result, genErr)
}

// GeneratePractice builds practice sentences for a subset of the current
// result's vocabulary. The session shows practicing while the request is
// in flight and returns to complete either way; a failure never loses the
// analysis result.
func (s *Session) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	s.mu.Lock()
	if s.result == nil {
		s.mu.Unlock()
		return nil, ErrNoAnalysis
	}
	if s.status == StatusAnalyzing || s.status == StatusPracticing {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.status = StatusPracticing
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	practice, genErr := s.gen.GeneratePractice(ctx, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil, errStale
	}
	s.status = StatusComplete
	if genErr != nil {
		return nil, fmt.Errorf("practice generation failed: %w", genErr)
	}
	s.practice = practice
	return practice, nil
}

// Save stores the completed result in the collection, deduplicating by
// file name or input text. Returns the saved record and whether it was
// newly inserted.
func (s *Session) Save() (vocab.SavedAnalysis, bool, error) {
	s.mu.Lock()
	if s.result == nil {
		s.mu.Unlock()
		return vocab.SavedAnalysis{}, false, ErrNothingToSave
	}
	result := s.result
	inputText := s.inputText
	fileName := s.fileName
	source := s.source
	s.mu.Unlock()

	record, inserted := s.collection.SaveResult(result, inputText, fileName, source)
	return record, inserted, nil
}

// Reset returns the session to idle from any state, clearing the current
// result and discarding any in-flight generation response.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.seq++
	s.inputText = ""
	s.fileName = ""
	s.source = ""
	s.topic = ""
	s.result = nil
	s.practice = nil
}

// begin moves the session into analyzing, applying setup under the lock,
// and returns the sequence number tagging this request.
func (s *Session) begin(setup func()) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusAnalyzing || s.status == StatusPracticing {
		return 0, ErrBusy
	}
	s.status = StatusAnalyzing
	s.seq++
	s.result = nil
	s.practice = nil
	setup()
	return s.seq, nil
}

// finishAnalysis applies the outcome of a generation call, unless a newer
// request or a Reset has superseded it.
func (s *Session) finishAnalysis(seq uint64, result *vocab.AnalysisResult, genErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return errStale
	}
	if genErr != nil {
		s.status = StatusIdle
		return fmt.Errorf("analysis failed, please try again: %w", genErr)
	}
	s.result = result
	s.status = StatusComplete
	return nil
}
