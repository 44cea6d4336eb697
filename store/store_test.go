package store

import (
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s := New(filepath.Join(dir, "tmp"), filepath.Join(dir, "output"))
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	return s
}

func TestAllocateNamespacesBySession(t *testing.T) {
	s := newTestStore(t)

	for _, kind := range []Kind{RawVideo, ExtractedAudio, DownscaledVideo, TranslatedAudio, FinalVideo} {
		a := s.Allocate("session-a", kind)
		b := s.Allocate("session-b", kind)
		if a == b {
			t.Errorf("kind %s: sessions share path %s", kind, a)
		}
		if !strings.Contains(filepath.Base(a), "session-a") {
			t.Errorf("kind %s: path %s not namespaced by session ID", kind, a)
		}
	}
}

func TestIntermediatesLiveInTmpFinalsInOutput(t *testing.T) {
	s := newTestStore(t)

	for _, kind := range []Kind{RawVideo, ExtractedAudio, DownscaledVideo} {
		if filepath.Dir(s.Allocate("id", kind)) != s.TmpDir {
			t.Errorf("kind %s should be allocated under tmp", kind)
		}
	}
	for _, kind := range []Kind{TranslatedAudio, FinalVideo} {
		if filepath.Dir(s.Allocate("id", kind)) != s.OutputDir {
			t.Errorf("kind %s should be allocated under output", kind)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	path := s.Allocate("id", RawVideo)

	if err := s.Save(path, []byte("data")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists(path) {
		t.Fatal("artifact should exist after Save")
	}

	if err := s.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if s.Exists(path) {
		t.Fatal("artifact should be gone after Delete")
	}

	// Deleting an already-absent artifact is not an error
	if err := s.Delete(path); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestEnsureDirsToleratesExistingDirs(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs on existing directories failed: %v", err)
	}
}
