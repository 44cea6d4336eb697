// Package lipsync drives one remote lip-sync job: upload the two input
// artifacts to the service's storage, submit a queue job referencing them,
// poll it to completion, and download the resulting video.
package lipsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var (
	// ErrLipSyncFailed wraps any failure during upload, submission, polling,
	// or result fetch. There is never partial output.
	ErrLipSyncFailed = errors.New("lip-sync failed")
	// ErrLipSyncTimeout means the caller-supplied deadline expired before the
	// remote job finished.
	ErrLipSyncTimeout = errors.New("lip-sync timed out")
)

// Client submits lip-sync jobs to a fal-style queue API.
type Client struct {
	StorageURL   string
	QueueURL     string
	APIKey       string
	Model        string
	PollInterval time.Duration
	HTTPClient   *http.Client
}

func NewClient(storageURL, queueURL, apiKey, model string, pollInterval time.Duration) *Client {
	return &Client{
		StorageURL:   storageURL,
		QueueURL:     queueURL,
		APIKey:       apiKey,
		Model:        model,
		PollInterval: pollInterval,
		HTTPClient:   http.DefaultClient,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

type submitRequest struct {
	VideoURL string `json:"video_url"`
	AudioURL string `json:"audio_url"`
}

type submitResponse struct {
	RequestID   string `json:"request_id"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

type statusResponse struct {
	Status string `json:"status"`
	Logs   []struct {
		Message string `json:"message"`
	} `json:"logs"`
}

type resultResponse struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

// Sync runs the whole job and returns the final video bytes. Both uploads
// must succeed before anything is submitted; either failing aborts the job.
// Progress log lines from the remote service are forwarded to the progress
// callback for observability only, they never affect control flow. The wait
// is bounded by ctx; pass a deadline to cap the remote job duration.
func (c *Client) Sync(ctx context.Context, videoPath, audioPath string, progress func(string)) ([]byte, error) {
	videoURL, err := c.upload(ctx, videoPath, "video/mp4")
	if err != nil {
		return nil, fmt.Errorf("%w: video upload: %w", ErrLipSyncFailed, err)
	}
	audioURL, err := c.upload(ctx, audioPath, "audio/mpeg")
	if err != nil {
		return nil, fmt.Errorf("%w: audio upload: %w", ErrLipSyncFailed, err)
	}

	job, err := c.submit(ctx, videoURL, audioURL)
	if err != nil {
		return nil, fmt.Errorf("%w: submit: %w", ErrLipSyncFailed, err)
	}

	if err := c.await(ctx, job, progress); err != nil {
		return nil, err
	}

	resultURL, err := c.result(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("%w: result fetch: %w", ErrLipSyncFailed, err)
	}

	video, err := c.download(ctx, resultURL)
	if err != nil {
		return nil, fmt.Errorf("%w: result download: %w", ErrLipSyncFailed, err)
	}
	return video, nil
}

func (c *Client) upload(ctx context.Context, path, contentType string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.StorageURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage upload returned status %d", resp.StatusCode)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.URL == "" {
		return "", errors.New("storage upload returned no URL")
	}
	return decoded.URL, nil
}

func (c *Client) submit(ctx context.Context, videoURL, audioURL string) (*submitResponse, error) {
	payload, err := json.Marshal(submitRequest{VideoURL: videoURL, AudioURL: audioURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.QueueURL+"/"+c.Model, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("job submission returned status %d", resp.StatusCode)
	}

	var decoded submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

// await polls the job's status endpoint until it reaches a terminal state.
// Log lines are forwarded once each, in the order the service reports them.
func (c *Client) await(ctx context.Context, job *submitResponse, progress func(string)) error {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	seenLogs := 0
	for {
		status, err := c.status(ctx, job)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w: %w", ErrLipSyncTimeout, err)
			}
			return fmt.Errorf("%w: status poll: %w", ErrLipSyncFailed, err)
		}

		if progress != nil {
			for ; seenLogs < len(status.Logs); seenLogs++ {
				progress(status.Logs[seenLogs].Message)
			}
		}

		switch status.Status {
		case "COMPLETED":
			return nil
		case "FAILED", "ERROR":
			return fmt.Errorf("%w: remote job reported status %s", ErrLipSyncFailed, status.Status)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %w", ErrLipSyncTimeout, ctx.Err())
			}
			return fmt.Errorf("%w: %w", ErrLipSyncFailed, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) status(ctx context.Context, job *submitResponse) (*statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.StatusURL+"?logs=1", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status poll returned status %d", resp.StatusCode)
	}

	var decoded statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

func (c *Client) result(ctx context.Context, job *submitResponse) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.ResponseURL, nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("result fetch returned status %d", resp.StatusCode)
	}

	var decoded resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Video.URL == "" {
		return "", errors.New("result contained no video URL")
	}
	return decoded.Video.URL, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Key "+c.APIKey)
}
