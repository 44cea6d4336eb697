package speech

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pemistahl/lingua-go"
	openai "github.com/sashabaranov/go-openai"
)

// ErrTranscriptionFailed wraps transport or API failures from the
// speech-to-text service.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Transcriber sends an audio artifact to OpenAI Whisper and returns the
// recognized text. Source language is assumed English.
type Transcriber struct {
	client   *openai.Client
	detector lingua.LanguageDetector
}

func NewTranscriber(apiKey string) *Transcriber {
	return &Transcriber{
		client:   openai.NewClient(apiKey),
		detector: lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
	}
}

// Transcribe performs a single transcription request, no retries. Empty
// transcribed text is valid output and propagates downstream.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Language: "en",
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	if resp.Text == "" {
		log.Printf("transcription returned empty text for %s", audioPath)
		return "", nil
	}

	if language, ok := t.detector.DetectLanguageOf(resp.Text); ok {
		log.Printf("detected transcription language: %s", language.String())
	}

	return resp.Text, nil
}
