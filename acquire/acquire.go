// Package acquire obtains the raw input video bytes, either handed to us
// inline or resolved from a shareable reel URL through a lookup service.
package acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	// ErrNoMediaFound means the lookup service returned no candidate with a
	// usable URL for the given reel.
	ErrNoMediaFound = errors.New("no media found for URL")
	// ErrDownloadFailed wraps transport or status failures from the lookup
	// call or the media byte fetch.
	ErrDownloadFailed = errors.New("download failed")
)

// MediaEntry is one candidate media descriptor from the lookup response.
type MediaEntry struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type lookupResponse struct {
	Media []MediaEntry `json:"media"`
}

// UploadSource carries video bytes supplied inline with the request.
type UploadSource struct {
	Data []byte
}

func (s *UploadSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.Data, nil
}

// ReelSource resolves a shareable reel URL into video bytes via a remote
// lookup service.
type ReelSource struct {
	URL      string
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func (s *ReelSource) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// Fetch asks the lookup service for candidate media entries, picks the
// first one with a non-empty URL, and downloads its bytes. The scan order
// is part of the contract: entries are tried in the order the service
// returned them.
func (s *ReelSource) Fetch(ctx context.Context) ([]byte, error) {
	entries, err := s.lookup(ctx)
	if err != nil {
		return nil, err
	}

	var mediaURL string
	for _, entry := range entries {
		if entry.URL != "" {
			mediaURL = entry.URL
			break
		}
	}
	if mediaURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoMediaFound, s.URL)
	}

	data, err := s.download(ctx, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	return data, nil
}

func (s *ReelSource) lookup(ctx context.Context) ([]MediaEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint+"?url="+url.QueryEscape(s.URL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	req.Header.Set("x-api-key", s.APIKey)

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned status %d", ErrDownloadFailed, resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	return decoded.Media, nil
}

func (s *ReelSource) download(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
