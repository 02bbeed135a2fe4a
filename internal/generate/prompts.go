package generate

import (
	"fmt"
	"strings"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

const analysisSchema = `Respond with a single JSON object:
{
  "summary": "one-paragraph summary of the text",
  "tone": "register and tone of the text",
  "structure_analysis": [
    {"section": "...", "purpose": "...", "native_pattern": "..."}
  ],
  "vocabulary": [
    {
      "term": "the expression exactly as used",
      "definition": "plain-language definition",
      "category": "one of: idioms_fixed, phrasal_verbs, nuance_sarcasm, chunks_structures, topic_specific",
      "source_context": "the sentence it appeared in",
      "imagery_etymology": "optional imagery or origin note",
      "examples": [
        {"context_label": "e.g. At work", "sentence": "...", "explanation": "..."}
      ]
    }
  ]
}
Each term must be unique. Do not include any text outside the JSON object.`

func analyzePrompt(text string, source vocab.SourceType) string {
	return fmt.Sprintf(`You are an expert English coach for advanced learners. Analyze the
following %s text and extract the idioms, phrasal verbs and nuanced
vocabulary a native speaker would notice, with usage examples.

%s

TEXT:
%s`, source, analysisSchema, text)
}

func topicPrompt(topic string) string {
	return fmt.Sprintf(`You are an expert English coach for advanced learners. The learner
wants to talk about the topic below. Build an expression strategy for it:
summarize how natives frame this topic, describe the usual tone, and list
the idioms, collocations and topic-specific vocabulary they reach for, with
usage examples. Use category "topic_specific" where no other tag fits.

%s

TOPIC:
%s`, analysisSchema, topic)
}

func practicePrompt(items []vocab.VocabularyItem) string {
	var terms []string
	for _, item := range items {
		terms = append(terms, fmt.Sprintf("- %s: %s", item.Term, item.Definition))
	}
	return fmt.Sprintf(`You are an expert English coach. Create one short, coherent practice
scenario that naturally uses every expression below, then rewrite each
expression as a native speaker would deploy it inside that scenario.

Respond with a single JSON object:
{
  "scenario": "a short scenario description",
  "sentences": [
    {"original_concept": "the expression", "native_version": "a natural sentence using it", "explanation": "why a native phrases it this way"}
  ]
}
Do not include any text outside the JSON object.

EXPRESSIONS:
%s`, strings.Join(terms, "\n"))
}

func lookupPrompt(word, wordContext string) string {
	return fmt.Sprintf(`Define the word %q as used in the context below, for an advanced
English learner.

Respond with a single JSON object:
{"definition": "concise definition fitting this context", "pronunciation": "IPA transcription"}
Do not include any text outside the JSON object.

CONTEXT:
%s`, word, wordContext)
}
