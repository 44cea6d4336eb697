package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func lookupServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "" {
			t.Error("lookup request missing url parameter")
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestReelSourcePicksFirstNonEmptyURL(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a.mp4" {
			t.Errorf("fetched %s, expected /a.mp4", r.URL.Path)
		}
		w.Write([]byte("video-bytes"))
	}))
	defer media.Close()

	lookup := lookupServer(t, fmt.Sprintf(`{"media":[{"url":"","type":"image"},{"url":"%s/a.mp4","type":"video"}]}`, media.URL))

	src := &ReelSource{URL: "https://reel/x", Endpoint: lookup.URL, APIKey: "k"}
	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("unexpected media bytes: %q", data)
	}
}

func TestReelSourceNoMediaFound(t *testing.T) {
	for _, body := range []string{
		`{"media":[]}`,
		`{"media":[{"url":"","type":"video"},{"url":"","type":"image"}]}`,
		`{}`,
	} {
		lookup := lookupServer(t, body)
		src := &ReelSource{URL: "https://reel/x", Endpoint: lookup.URL, APIKey: "k"}

		_, err := src.Fetch(context.Background())
		if !errors.Is(err, ErrNoMediaFound) {
			t.Errorf("body %s: expected ErrNoMediaFound, got %v", body, err)
		}
	}
}

func TestReelSourceLookupFailure(t *testing.T) {
	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer lookup.Close()

	src := &ReelSource{URL: "https://reel/x", Endpoint: lookup.URL, APIKey: "k"}
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
}

func TestReelSourceMediaFetchFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer media.Close()

	lookup := lookupServer(t, fmt.Sprintf(`{"media":[{"url":"%s/gone.mp4","type":"video"}]}`, media.URL))

	src := &ReelSource{URL: "https://reel/x", Endpoint: lookup.URL, APIKey: "k"}
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrDownloadFailed) {
		t.Fatalf("expected ErrDownloadFailed, got %v", err)
	}
}

func TestUploadSourceReturnsInlineBytes(t *testing.T) {
	src := &UploadSource{Data: []byte("inline")}
	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "inline" {
		t.Errorf("unexpected bytes: %q", data)
	}
}
