package processor

import (
	"errors"
	"strings"
	"testing"

	"codeberg.org/velkan/lingoscope/internal/auth"
	"codeberg.org/velkan/lingoscope/internal/cli"
	"codeberg.org/velkan/lingoscope/internal/session"
	"codeberg.org/velkan/lingoscope/internal/testutil"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// memCache is an in-memory session.Cache for tests.
type memCache struct {
	analyses []vocab.SavedAnalysis
	folders  []vocab.AnalysisFolder
}

func (c *memCache) Load() ([]vocab.SavedAnalysis, []vocab.AnalysisFolder) {
	return c.analyses, c.folders
}

func (c *memCache) Save(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) error {
	c.analyses = analyses
	c.folders = folders
	return nil
}

func newTestProcessor(gen *testutil.MockGenerator, flags *cli.Flags) *Processor {
	notifier := auth.NewNotifier()
	controller := session.NewController(gen, &memCache{}, testutil.NewMockStore(), notifier)
	controller.Collection.SetLogf(func(string, ...any) {})
	return &Processor{
		flags:      flags,
		gen:        gen,
		notifier:   notifier,
		controller: controller,
	}
}

func TestRunPractice_WalksAllBatches(t *testing.T) {
	gen := &testutil.MockGenerator{
		Result: testutil.SampleResult("a", "b", "c", "d", "e", "f", "g"),
		Practice: &vocab.GeneratedPractice{
			Scenario:  "at the airport",
			Sentences: []vocab.PracticeSentence{{NativeVersion: "s"}},
		},
	}
	p := newTestProcessor(gen, cli.NewFlags())
	defer p.Close()

	if err := p.RunPractice(t.Context()); !errors.Is(err, session.ErrNoAnalysis) {
		t.Fatalf("Expected ErrNoAnalysis without a result, got %v", err)
	}

	if err := p.controller.Session.AnalyzeText(t.Context(), "text", "", vocab.SourceNews); err != nil {
		t.Fatal(err)
	}
	if err := p.RunPractice(t.Context()); err != nil {
		t.Fatalf("RunPractice failed: %v", err)
	}

	// 7 items at batch size 5: one full batch plus a final batch of 2.
	var rounds int
	for _, call := range gen.CallLog() {
		if strings.HasPrefix(call, "GeneratePractice") {
			rounds++
		}
	}
	if rounds != 2 {
		t.Errorf("Expected 2 practice rounds, got %d", rounds)
	}
}

func TestAfterAnalysis_SaveFlag(t *testing.T) {
	flags := cli.NewFlags()
	flags.Save = true
	gen := &testutil.MockGenerator{Result: testutil.SampleResult("a")}
	p := newTestProcessor(gen, flags)
	defer p.Close()

	if err := p.controller.Session.AnalyzeText(t.Context(), "text", "", vocab.SourceNews); err != nil {
		t.Fatal(err)
	}
	if err := p.afterAnalysis(t.Context()); err != nil {
		t.Fatalf("afterAnalysis failed: %v", err)
	}
	if got := p.controller.Collection.Analyses(); len(got) != 1 {
		t.Errorf("Expected 1 saved analysis, got %d", len(got))
	}
}

func TestDelete(t *testing.T) {
	gen := &testutil.MockGenerator{Result: testutil.SampleResult("a")}
	p := newTestProcessor(gen, cli.NewFlags())
	defer p.Close()

	record, _ := p.controller.Collection.SaveResult(testutil.SampleResult("a"), "text", "", vocab.SourceNews)
	if err := p.Delete(record.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := p.Delete(record.ID); !errors.Is(err, session.ErrNoSuchAnalysis) {
		t.Errorf("Expected ErrNoSuchAnalysis, got %v", err)
	}
}

func TestExport_WritesFile(t *testing.T) {
	flags := cli.NewFlags()
	flags.ExportDir = t.TempDir()
	gen := &testutil.MockGenerator{}
	p := newTestProcessor(gen, flags)
	defer p.Close()

	p.controller.Collection.SaveResult(testutil.SampleResult("a"), "text", "", vocab.SourceNews)
	if err := p.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
}

func TestNewProcessor_LocalCommandsNeedNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LINGOSCOPE_REMOTE_DSN", "")

	p, err := NewProcessor(t.Context(), cli.NewFlags())
	if err != nil {
		t.Fatalf("Expected processor to start without an API key, got %v", err)
	}
	defer p.Close()

	// History and export never touch the generation service.
	if err := p.ShowHistory(); err != nil {
		t.Errorf("ShowHistory failed without a key: %v", err)
	}

	// Generation itself still requires the key, as a retryable error.
	err = p.controller.Session.AnalyzeText(t.Context(), "text", "", vocab.SourceNews)
	if err == nil {
		t.Error("Expected analysis to fail without a key")
	}
	if p.controller.Session.Status() != session.StatusIdle {
		t.Errorf("Expected session back to idle, got %v", p.controller.Session.Status())
	}
}

func TestLookup(t *testing.T) {
	gen := &testutil.MockGenerator{
		Lookup: &vocab.WordLookup{Definition: "although", Pronunciation: "ɔːlˈbiːɪt"},
	}
	p := newTestProcessor(gen, cli.NewFlags())
	defer p.Close()

	if err := p.Lookup(t.Context(), "albeit"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	gen.Err = errors.New("model unavailable")
	if err := p.Lookup(t.Context(), "albeit"); err == nil {
		t.Error("Expected lookup error to surface")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 18, "exactly ten chars!"},
		{"this is a longer input text", 10, "this is a ..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
