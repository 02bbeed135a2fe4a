package vocab

import "fmt"

// Category classifies a vocabulary item. The set is closed: the generation
// service is instructed to pick exactly one of these five tags.
type Category string

const (
	CategoryIdiomsFixed      Category = "idioms_fixed"
	CategoryPhrasalVerbs     Category = "phrasal_verbs"
	CategoryNuanceSarcasm    Category = "nuance_sarcasm"
	CategoryChunksStructures Category = "chunks_structures"
	CategoryTopicSpecific    Category = "topic_specific"
)

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryIdiomsFixed,
		CategoryPhrasalVerbs,
		CategoryNuanceSarcasm,
		CategoryChunksStructures,
		CategoryTopicSpecific,
	}
}

// Valid reports whether c is one of the five fixed tags.
func (c Category) Valid() bool {
	switch c {
	case CategoryIdiomsFixed, CategoryPhrasalVerbs, CategoryNuanceSarcasm,
		CategoryChunksStructures, CategoryTopicSpecific:
		return true
	}
	return false
}

func (c Category) String() string {
	switch c {
	case CategoryIdiomsFixed:
		return "Idioms & Fixed Expressions"
	case CategoryPhrasalVerbs:
		return "Phrasal Verbs"
	case CategoryNuanceSarcasm:
		return "Nuance & Sarcasm"
	case CategoryChunksStructures:
		return "Chunks & Structures"
	case CategoryTopicSpecific:
		return "Topic-Specific"
	default:
		return string(c)
	}
}

// SourceType describes what kind of input produced an analysis.
type SourceType string

const (
	SourceNews         SourceType = "news"
	SourceNovel        SourceType = "novel"
	SourceAcademic     SourceType = "academic"
	SourceConversation SourceType = "conversation"
	SourceTopic        SourceType = "topic"
)

// ParseSourceType converts a user-supplied string into a SourceType.
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(s) {
	case SourceNews, SourceNovel, SourceAcademic, SourceConversation, SourceTopic:
		return SourceType(s), nil
	}
	return "", fmt.Errorf("unknown source type: %q", s)
}

// Example is one usage example attached to a vocabulary item.
type Example struct {
	ContextLabel string `json:"context_label"`
	Sentence     string `json:"sentence"`
	Explanation  string `json:"explanation,omitempty"`
}

// VocabularyItem is a single extracted expression. Items are immutable once
// produced by the generation service; Term is unique within one result.
type VocabularyItem struct {
	Term             string    `json:"term"`
	Definition       string    `json:"definition"`
	Category         Category  `json:"category"`
	SourceContext    string    `json:"source_context,omitempty"`
	ImageryEtymology string    `json:"imagery_etymology,omitempty"`
	Examples         []Example `json:"examples"`
}

// StructureSection is one entry of the optional structural breakdown.
type StructureSection struct {
	Section       string `json:"section"`
	Purpose       string `json:"purpose"`
	NativePattern string `json:"native_pattern"`
}

// AnalysisResult is one complete extraction for a piece of text or topic.
// The core treats it as an opaque payload produced wholesale by the
// generation service.
type AnalysisResult struct {
	Summary           string             `json:"summary"`
	Tone              string             `json:"tone"`
	StructureAnalysis []StructureSection `json:"structure_analysis,omitempty"`
	Vocabulary        []VocabularyItem   `json:"vocabulary"`
}

// PracticeSentence rewrites one practiced concept in native phrasing.
type PracticeSentence struct {
	OriginalConcept string `json:"original_concept"`
	NativeVersion   string `json:"native_version"`
	Explanation     string `json:"explanation"`
}

// GeneratedPractice is the payload returned for one practice batch.
type GeneratedPractice struct {
	Scenario  string             `json:"scenario"`
	Sentences []PracticeSentence `json:"sentences"`
}

// WordLookup is the result of a dictionary-style lookup of a single word
// in context.
type WordLookup struct {
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
}
