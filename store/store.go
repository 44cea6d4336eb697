package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Kind names one artifact produced or consumed by a pipeline stage.
type Kind string

const (
	RawVideo        Kind = "raw_video"
	ExtractedAudio  Kind = "extracted_audio"
	DownscaledVideo Kind = "downscaled_video"
	TranslatedAudio Kind = "translated_audio"
	FinalVideo      Kind = "final_video"
)

// Store maps (session, artifact kind) pairs to paths on disk. Intermediates
// live under the tmp directory, retained artifacts under the output
// directory. Paths are namespaced by session ID, so concurrent sessions
// never collide and no locking is needed for the files themselves.
type Store struct {
	TmpDir    string
	OutputDir string
}

func New(tmpDir, outputDir string) *Store {
	return &Store{TmpDir: tmpDir, OutputDir: outputDir}
}

// EnsureDirs creates the working directories if they do not exist yet.
// MkdirAll tolerates concurrent creation attempts from parallel sessions.
func (s *Store) EnsureDirs() error {
	if err := os.MkdirAll(s.TmpDir, 0o755); err != nil {
		return fmt.Errorf("failed to create tmp directory: %w", err)
	}
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Allocate returns the path for one artifact of the given session. It does
// not touch the filesystem; stages create the file when they produce it.
func (s *Store) Allocate(sessionID string, kind Kind) string {
	switch kind {
	case RawVideo:
		return filepath.Join(s.TmpDir, sessionID+"_input.mp4")
	case ExtractedAudio:
		return filepath.Join(s.TmpDir, sessionID+"_audio.mp3")
	case DownscaledVideo:
		return filepath.Join(s.TmpDir, sessionID+"_downscaled.mp4")
	case TranslatedAudio:
		return filepath.Join(s.OutputDir, sessionID+"_translated.mp3")
	case FinalVideo:
		return filepath.Join(s.OutputDir, sessionID+"_final.mp4")
	}
	return filepath.Join(s.TmpDir, sessionID+"_"+string(kind))
}

func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes an artifact. Already-absent paths are not an error, so
// cleanup can run on any terminal state without bookkeeping.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func (s *Store) Save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
