package speech

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrTranslationFailed wraps transport or API failures from the text
// translation service.
var ErrTranslationFailed = errors.New("translation failed")

// Translator sends recognized text to a chat model with a fixed translation
// instruction. Sampling is non-deterministic; repeated calls with identical
// input may produce different wordings.
type Translator struct {
	client *openai.Client
}

func NewTranslator(apiKey string) *Translator {
	return &Translator{client: openai.NewClient(apiKey)}
}

// Translate issues one chat completion asking for a translation into the
// given target language display name (e.g. "Spanish").
func (t *Translator) Translate(ctx context.Context, text, targetLanguageName string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a translator. Translate the following text to %s. Keep the same tone and style.", targetLanguageName),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.7,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrTranslationFailed)
	}

	return resp.Choices[0].Message.Content, nil
}
