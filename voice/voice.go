// Package voice talks to the ElevenLabs voice catalog and text-to-speech
// endpoints, and picks a voice for a target language.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNoVoicesAvailable means the provider returned an empty voice list.
	ErrNoVoicesAvailable = errors.New("no voices available")
	// ErrSynthesisFailed wraps transport or API failures from text-to-speech.
	ErrSynthesisFailed = errors.New("speech synthesis failed")
)

const (
	synthesisModel  = "eleven_multilingual_v2"
	stability       = 0.5
	similarityBoost = 0.75
)

// Voice is one entry of the provider's voice catalog.
type Voice struct {
	ID       string
	Name     string
	Language string
	Gender   string
}

type catalogVoice struct {
	VoiceID string            `json:"voice_id"`
	Name    string            `json:"name"`
	Labels  map[string]string `json:"labels"`
}

type catalogResponse struct {
	Voices []catalogVoice `json:"voices"`
}

// Client calls the ElevenLabs HTTP API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{BaseURL: baseURL, APIKey: apiKey, HTTPClient: http.DefaultClient}
}

// Catalog lists the provider's voices. The list is fetched fresh on every
// run; nothing is cached across sessions.
func (c *Client) Catalog(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: voice list returned status %d", ErrSynthesisFailed, resp.StatusCode)
	}

	var decoded catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	voices := make([]Voice, 0, len(decoded.Voices))
	for _, v := range decoded.Voices {
		voices = append(voices, Voice{
			ID:       v.VoiceID,
			Name:     v.Name,
			Language: v.Labels["language"],
			Gender:   v.Labels["gender"],
		})
	}
	return voices, nil
}

// Synthesize converts text to speech with the selected voice and returns the
// raw audio bytes. The whole text goes out as one request; there is no
// chunking for long input.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": synthesisModel,
		"voice_settings": map[string]float64{
			"stability":        stability,
			"similarity_boost": similarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/text-to-speech/"+voiceID, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	req.Header.Set("xi-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: synthesis returned status %d", ErrSynthesisFailed, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	return audio, nil
}
