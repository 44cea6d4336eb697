package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/lipdub/lipdub/languages"
	"github.com/lipdub/lipdub/store"
	"github.com/lipdub/lipdub/voice"
)

// Orchestrator runs the stages in fixed order for one session, threading
// each stage's output into the next. No stage is retried here; retry policy,
// if any, belongs inside an adapter.
type Orchestrator struct {
	Store       *store.Store
	Transcoder  Transcoder
	Transcriber Transcriber
	Translator  Translator
	Voices      VoiceProvider
	LipSync     LipSyncer

	DownscaleHeight int
	DownscaleFPS    int
	VoiceGender     string
	LipSyncTimeout  time.Duration

	Hooks Hooks
}

// Run executes one session end to end and returns the final artifact path.
// The first stage failure aborts the run; later stages are never invoked.
// Intermediate artifacts (raw input, extracted audio, downscaled video) are
// deleted on both terminal states; the translated audio and the final video
// are retained.
func (o *Orchestrator) Run(ctx context.Context, src Source, targetLanguageCode string) (string, error) {
	session := NewSession()

	rawPath := o.Store.Allocate(session.ID, store.RawVideo)
	audioPath := o.Store.Allocate(session.ID, store.ExtractedAudio)
	downscaledPath := o.Store.Allocate(session.ID, store.DownscaledVideo)
	translatedPath := o.Store.Allocate(session.ID, store.TranslatedAudio)
	finalPath := o.Store.Allocate(session.ID, store.FinalVideo)

	defer o.cleanup(rawPath, audioPath, downscaledPath)

	targetLanguageName, ok := languages.Name(targetLanguageCode)
	if !ok {
		targetLanguageName = targetLanguageCode
	}

	o.enterStage(session, StageAcquire)
	raw, err := src.Fetch(ctx)
	if err != nil {
		return "", o.fail(session, err)
	}
	if err := o.Store.Save(rawPath, raw); err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageExtractAudio)
	if err := o.Transcoder.ExtractAudio(ctx, rawPath, audioPath); err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageTranscribe)
	transcription, err := o.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageTranslate)
	translated, err := o.Translator.Translate(ctx, transcription, targetLanguageName)
	if err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageSelectVoice)
	voices, err := o.Voices.Catalog(ctx)
	if err != nil {
		return "", o.fail(session, err)
	}
	selected, err := voice.SelectVoice(voices, targetLanguageCode, o.VoiceGender)
	if err != nil {
		return "", o.fail(session, err)
	}
	log.Printf("session %s: selected voice %q", session.ID, selected.Name)

	o.enterStage(session, StageSynthesize)
	audio, err := o.Voices.Synthesize(ctx, translated, selected.ID)
	if err != nil {
		return "", o.fail(session, err)
	}
	if err := o.Store.Save(translatedPath, audio); err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageDownscale)
	if err := o.Transcoder.Downscale(ctx, rawPath, downscaledPath, o.DownscaleHeight, o.DownscaleFPS); err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageLipSync)
	syncCtx := ctx
	if o.LipSyncTimeout > 0 {
		var cancel context.CancelFunc
		syncCtx, cancel = context.WithTimeout(ctx, o.LipSyncTimeout)
		defer cancel()
	}
	video, err := o.LipSync.Sync(syncCtx, downscaledPath, translatedPath, o.Hooks.OnProgress)
	if err != nil {
		return "", o.fail(session, err)
	}

	o.enterStage(session, StageCollect)
	if err := o.Store.Save(finalPath, video); err != nil {
		return "", o.fail(session, err)
	}

	session.Status = StatusSucceeded
	return finalPath, nil
}

func (o *Orchestrator) enterStage(session *Session, stage Stage) {
	session.Stage = stage
	if o.Hooks.OnStage != nil {
		o.Hooks.OnStage(stage)
	}
}

func (o *Orchestrator) fail(session *Session, err error) error {
	session.Status = StatusFailed
	return &StageError{Stage: session.Stage, Err: err}
}

// cleanup deletes intermediate artifacts on any terminal state, success or
// failure, to bound local disk usage. Delete is idempotent, so artifacts a
// failed run never produced are fine to pass.
func (o *Orchestrator) cleanup(paths ...string) {
	for _, p := range paths {
		if err := o.Store.Delete(p); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}
}
