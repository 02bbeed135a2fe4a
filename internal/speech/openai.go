package speech

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"
)

// openAIProvider synthesizes speech through the OpenAI TTS API.
type openAIProvider struct {
	client *openai.Client
	config *Config
}

func newOpenAIProvider(config *Config) *openAIProvider {
	return &openAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}
}

func (p *openAIProvider) Name() string {
	return "openai"
}

// Synthesize generates an mp3 for the text, reusing a cached file when the
// same text was spoken before with the same settings.
func (p *openAIProvider) Synthesize(ctx context.Context, text string) (string, error) {
	outputFile := p.cacheFilePath(text)
	if _, err := os.Stat(outputFile); err == nil {
		return outputFile, nil
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          text,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return "", fmt.Errorf("no audio data received from OpenAI")
	}

	return outputFile, nil
}

// cacheFilePath derives a stable cache path from the text and settings.
func (p *openAIProvider) cacheFilePath(text string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(p.config.OpenAIModel))
	h.Write([]byte(p.config.OpenAIVoice))
	h.Write([]byte(fmt.Sprintf("%.2f", p.config.OpenAISpeed)))
	hash := hex.EncodeToString(h.Sum(nil))

	// First 2 chars as subdirectory keeps cache directories small.
	return filepath.Join(p.config.CacheDir, hash[:2], hash[2:]+".mp3")
}
