package cli

import "codeberg.org/velkan/lingoscope/internal/practice"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile string
	Source  string
	Topic   string
	Lookup  string
	Save    bool
	History bool
	Delete  string
	User    string

	// Practice flags
	Practice      bool
	PracticeBatch int

	// Export flags
	Export           bool
	ExportDir        string
	ExportVocabulary bool

	// Speech flags
	Speak       bool
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Source:        "news",
		PracticeBatch: practice.DefaultBatchSize,
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
	}
}
