package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

const defaultModel = "gemini-2.5-flash"

// GeminiClient implements Service against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a generation client for the given API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: defaultModel}, nil
}

// SetModel overrides the default model.
func (g *GeminiClient) SetModel(model string) {
	g.model = model
}

func (g *GeminiClient) AnalyzeText(ctx context.Context, text string, source vocab.SourceType) (*vocab.AnalysisResult, error) {
	prompt := analyzePrompt(text, source)
	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(raw)
}

func (g *GeminiClient) GenerateTopicStrategy(ctx context.Context, topic string) (*vocab.AnalysisResult, error) {
	prompt := topicPrompt(topic)
	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(raw)
}

func (g *GeminiClient) GeneratePractice(ctx context.Context, items []vocab.VocabularyItem) (*vocab.GeneratedPractice, error) {
	prompt := practicePrompt(items)
	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodePractice(raw)
}

func (g *GeminiClient) LookupWord(ctx context.Context, word, wordContext string) (*vocab.WordLookup, error) {
	prompt := lookupPrompt(word, wordContext)
	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodeLookup(raw)
}

// generateJSON issues one generation call constrained to a JSON response
// and returns the raw payload bytes.
func (g *GeminiClient) generateJSON(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.4),
		})
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrNoResult
	}
	return []byte(text), nil
}

// decodeAnalysis parses a generation payload into an AnalysisResult. Items
// with a category outside the five fixed tags are folded into
// topic_specific so the closed enum holds downstream.
func decodeAnalysis(raw []byte) (*vocab.AnalysisResult, error) {
	var result vocab.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed analysis payload: %w", err)
	}
	if len(result.Vocabulary) == 0 {
		return nil, ErrNoResult
	}
	for i := range result.Vocabulary {
		if !result.Vocabulary[i].Category.Valid() {
			result.Vocabulary[i].Category = vocab.CategoryTopicSpecific
		}
	}
	return &result, nil
}

func decodePractice(raw []byte) (*vocab.GeneratedPractice, error) {
	var practice vocab.GeneratedPractice
	if err := json.Unmarshal(raw, &practice); err != nil {
		return nil, fmt.Errorf("malformed practice payload: %w", err)
	}
	if len(practice.Sentences) == 0 {
		return nil, ErrNoResult
	}
	return &practice, nil
}

func decodeLookup(raw []byte) (*vocab.WordLookup, error) {
	var lookup vocab.WordLookup
	if err := json.Unmarshal(raw, &lookup); err != nil {
		return nil, fmt.Errorf("malformed lookup payload: %w", err)
	}
	if lookup.Definition == "" {
		return nil, ErrNoResult
	}
	return &lookup, nil
}
