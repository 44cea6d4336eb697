// Package pipeline sequences the translation pipeline: acquire the source
// video, extract its audio, transcribe, translate, synthesize speech in a
// selected voice, downscale the video, and lip-sync it to the new audio.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lipdub/lipdub/voice"
)

// Stage names one step of the fixed-order pipeline.
type Stage string

const (
	StageAcquire      Stage = "acquire"
	StageExtractAudio Stage = "extract_audio"
	StageTranscribe   Stage = "transcribe"
	StageTranslate    Stage = "translate"
	StageSelectVoice  Stage = "select_voice"
	StageSynthesize   Stage = "synthesize"
	StageDownscale    Stage = "downscale"
	StageLipSync      Stage = "lip_sync"
	StageCollect      Stage = "collect"
)

// Status is a session's terminal state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Session is the unit of work for one pipeline run. The orchestrator owns it
// exclusively for the run's lifetime; its ID namespaces every artifact the
// run creates and is never reused.
type Session struct {
	ID        string
	CreatedAt time.Time
	Stage     Stage
	Status    Status
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Status:    StatusPending,
	}
}

// StageError tags a stage failure with the stage that produced it. The
// underlying adapter error stays reachable through Unwrap for errors.Is.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Source supplies the raw input video bytes, either inline or by resolving
// a remote reel URL.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Transcoder performs the two local ffmpeg operations.
type Transcoder interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	Downscale(ctx context.Context, videoPath, outPath string, targetHeight, targetFPS int) error
}

// Transcriber converts an audio artifact to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Translator converts text to the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguageName string) (string, error)
}

// VoiceProvider lists available voices and synthesizes speech with one.
type VoiceProvider interface {
	Catalog(ctx context.Context) ([]voice.Voice, error)
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// LipSyncer runs the remote lip-sync job over a (video, audio) pair and
// returns the resulting video bytes.
type LipSyncer interface {
	Sync(ctx context.Context, videoPath, audioPath string, progress func(string)) ([]byte, error)
}

// Hooks surface run progress to the caller. Both are advisory; neither
// affects control flow. Nil hooks are ignored.
type Hooks struct {
	OnStage    func(Stage)
	OnProgress func(string)
}
