package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/velkan/lingoscope/internal/auth"
	"codeberg.org/velkan/lingoscope/internal/cli"
	"codeberg.org/velkan/lingoscope/internal/export"
	"codeberg.org/velkan/lingoscope/internal/generate"
	"codeberg.org/velkan/lingoscope/internal/localcache"
	"codeberg.org/velkan/lingoscope/internal/practice"
	"codeberg.org/velkan/lingoscope/internal/remote"
	"codeberg.org/velkan/lingoscope/internal/session"
	"codeberg.org/velkan/lingoscope/internal/speech"
	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// Processor handles the main analysis workflow
type Processor struct {
	flags      *cli.Flags
	gen        generate.Service
	notifier   *auth.Notifier
	controller *session.Controller
	speaker    *speech.Speaker
}

// NewProcessor wires the cache, remote store, generation service and
// session for one command invocation. The generation client is built
// lazily on first use, so commands that never generate (history, delete,
// export) do not need an API key.
func NewProcessor(ctx context.Context, flags *cli.Flags) (*Processor, error) {
	gen := &lazyGenerator{}

	cache := localcache.New(localcache.DefaultDir())

	// Without a configured remote the application runs local-only.
	var store remote.Store = remote.Unconfigured{}
	if dsn := cli.GetRemoteDSN(); dsn != "" {
		opened, err := remote.Open(dsn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: remote store unavailable, running local-only: %v\n", err)
		} else {
			store = opened
		}
	}

	notifier := auth.NewNotifier()
	p := &Processor{
		flags:      flags,
		gen:        gen,
		notifier:   notifier,
		controller: session.NewController(gen, cache, store, notifier),
	}

	if flags.Speak {
		config := speech.DefaultConfig()
		config.CacheDir = filepath.Join(localcache.DefaultDir(), "speech")
		config.OpenAIKey = cli.GetOpenAIKey()
		config.OpenAIModel = flags.OpenAIModel
		config.OpenAIVoice = flags.OpenAIVoice
		config.OpenAISpeed = flags.OpenAISpeed
		provider, err := speech.NewProvider(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: speech disabled: %v\n", err)
		} else {
			p.speaker = speech.NewSpeaker(provider)
		}
	}

	return p, nil
}

// SignIn signs the user in, which triggers the login merge with the
// remote store.
func (p *Processor) SignIn(userID string) {
	p.notifier.SignIn(userID)
}

// Close signs out and waits for pending remote writes.
func (p *Processor) Close() {
	p.notifier.SignOut()
	p.controller.Close()
}

// AnalyzeFile reads and analyzes a text file, or stdin when path is "-".
// The file name becomes the dedup key when the result is saved; pasted
// stdin text dedups by content.
func (p *Processor) AnalyzeFile(ctx context.Context, path string) error {
	var data []byte
	var err error
	fileName := ""
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
		fileName = filepath.Base(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("input is empty")
	}

	source, err := vocab.ParseSourceType(p.flags.Source)
	if err != nil {
		return err
	}

	if fileName != "" {
		fmt.Printf("Analyzing %s...\n", fileName)
	} else {
		fmt.Println("Analyzing text...")
	}
	sess := p.controller.Session
	if err := sess.AnalyzeText(ctx, text, fileName, source); err != nil {
		return err
	}
	p.printResult(sess.Result())

	return p.afterAnalysis(ctx)
}

// Lookup asks the generation service for a dictionary-style definition of
// a single word or phrase.
func (p *Processor) Lookup(ctx context.Context, word string) error {
	lookup, err := p.gen.LookupWord(ctx, word, "")
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	fmt.Printf("%s\n", word)
	if lookup.Pronunciation != "" {
		fmt.Printf("  /%s/\n", strings.Trim(lookup.Pronunciation, "/"))
	}
	fmt.Printf("  %s\n", lookup.Definition)
	p.speak(ctx, word)
	return nil
}

// AnalyzeTopic generates a vocabulary strategy for a topic.
func (p *Processor) AnalyzeTopic(ctx context.Context, topic string) error {
	fmt.Printf("Generating vocabulary strategy for %q...\n", topic)
	sess := p.controller.Session
	if err := sess.AnalyzeTopic(ctx, topic); err != nil {
		return err
	}
	p.printResult(sess.Result())

	return p.afterAnalysis(ctx)
}

// afterAnalysis applies the --save and --practice flags to a completed
// analysis.
func (p *Processor) afterAnalysis(ctx context.Context) error {
	if p.flags.Save {
		record, inserted, err := p.controller.Session.Save()
		if err != nil {
			return err
		}
		if inserted {
			fmt.Printf("\nSaved analysis %s\n", record.ID)
		} else {
			fmt.Printf("\nUpdated analysis %s\n", record.ID)
		}
	}

	if p.flags.Practice {
		return p.RunPractice(ctx)
	}
	return nil
}

// RunPractice walks the current result's vocabulary in batches, printing
// generated practice sentences for each round.
func (p *Processor) RunPractice(ctx context.Context) error {
	sess := p.controller.Session
	result := sess.Result()
	if result == nil {
		return session.ErrNoAnalysis
	}

	queue := practice.NewQueue(func(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
		return sess.GeneratePractice(ctx, items)
	})
	queue.SetBatchSize(p.flags.PracticeBatch)
	if err := queue.Start(result.Vocabulary); err != nil {
		return err
	}

	round := 0
	for !queue.Exhausted() {
		round++
		fmt.Printf("\n=== Practice round %d (%d items left) ===\n", round, queue.Remaining())

		generated, err := queue.NextBatch(ctx)
		if err != nil {
			// The cursor did not move; the same batch can be retried on
			// the next run.
			return fmt.Errorf("practice round %d failed: %w", round, err)
		}

		if generated.Scenario != "" {
			fmt.Printf("Scenario: %s\n", generated.Scenario)
		}
		for _, sentence := range generated.Sentences {
			fmt.Printf("\n  %s\n", sentence.NativeVersion)
			if sentence.OriginalConcept != "" {
				fmt.Printf("  (practicing: %s)\n", sentence.OriginalConcept)
			}
			if sentence.Explanation != "" {
				fmt.Printf("  %s\n", sentence.Explanation)
			}
			p.speak(ctx, sentence.NativeVersion)
		}
	}

	fmt.Printf("\nPractice complete.\n")
	return nil
}

// ShowHistory lists the saved analyses, grouped by folder.
func (p *Processor) ShowHistory() error {
	analyses := p.controller.Collection.Analyses()
	if len(analyses) == 0 {
		fmt.Println("No saved analyses.")
		return nil
	}

	folders := make(map[string]string)
	for _, f := range p.controller.Collection.Folders() {
		folders[f.ID] = f.Name
	}

	for _, a := range analyses {
		title := a.FileName
		if title == "" {
			title = truncate(a.InputText, 40)
		}
		when := time.UnixMilli(a.Date).Format("2006-01-02 15:04")
		folder := ""
		if a.FolderID != nil {
			folder = fmt.Sprintf(" [%s]", folders[*a.FolderID])
		}
		fmt.Printf("%s  %s  %-12s %s%s (%d items, %d notes)\n",
			a.ID, when, a.SourceType, title, folder, len(a.Result.Vocabulary), len(a.Notes))
	}
	return nil
}

// Delete removes one saved analysis.
func (p *Processor) Delete(analysisID string) error {
	if err := p.controller.Collection.Remove(analysisID); err != nil {
		return err
	}
	fmt.Printf("Deleted analysis %s\n", analysisID)
	return nil
}

// Export writes the collection to a JSON file and prints its path.
func (p *Processor) Export() error {
	dir := p.flags.ExportDir
	if configured := viper.GetString("export.directory"); configured != "" {
		dir = configured
	}

	exporter := &export.Exporter{IncludeVocabulary: p.flags.ExportVocabulary}
	path, err := exporter.WriteFile(dir, p.controller.Collection.Analyses(), p.controller.Collection.Folders())
	if err != nil {
		return err
	}
	fmt.Printf("Collection exported to: %s\n", path)
	return nil
}

// printResult prints a completed analysis grouped by vocabulary category.
func (p *Processor) printResult(result *vocab.AnalysisResult) {
	if result == nil {
		return
	}

	fmt.Printf("\nSummary: %s\n", result.Summary)
	if result.Tone != "" {
		fmt.Printf("Tone: %s\n", result.Tone)
	}
	for _, section := range result.StructureAnalysis {
		fmt.Printf("\n%s (%s)\n  %s\n", section.Section, section.Purpose, section.NativePattern)
	}

	for _, category := range vocab.Categories() {
		var items []vocab.VocabularyItem
		for _, item := range result.Vocabulary {
			if item.Category == category {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}

		fmt.Printf("\n--- %s ---\n", category)
		for _, item := range items {
			fmt.Printf("  %s: %s\n", item.Term, item.Definition)
			for _, example := range item.Examples {
				fmt.Printf("      e.g. %s\n", example.Sentence)
			}
		}
	}
}

// speak reads text aloud when speech is enabled. Playback is best-effort
// and never blocks the practice loop.
func (p *Processor) speak(ctx context.Context, text string) {
	if p.speaker == nil || text == "" {
		return
	}
	p.speaker.Speak(ctx, text)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
