package pipeline

import (
	"context"

	"github.com/lipdub/lipdub/voice"
)

type MockSource struct {
	FetchFunc func(ctx context.Context) ([]byte, error)
}

func (m *MockSource) Fetch(ctx context.Context) ([]byte, error) {
	return m.FetchFunc(ctx)
}

type MockTranscoder struct {
	ExtractAudioFunc func(ctx context.Context, videoPath, audioPath string) error
	DownscaleFunc    func(ctx context.Context, videoPath, outPath string, targetHeight, targetFPS int) error
}

func (m *MockTranscoder) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	return m.ExtractAudioFunc(ctx, videoPath, audioPath)
}

func (m *MockTranscoder) Downscale(ctx context.Context, videoPath, outPath string, targetHeight, targetFPS int) error {
	return m.DownscaleFunc(ctx, videoPath, outPath, targetHeight, targetFPS)
}

type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audioPath string) (string, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return m.TranscribeFunc(ctx, audioPath)
}

type MockTranslator struct {
	TranslateFunc func(ctx context.Context, text, targetLanguageName string) (string, error)
}

func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguageName string) (string, error) {
	return m.TranslateFunc(ctx, text, targetLanguageName)
}

type MockVoiceProvider struct {
	CatalogFunc    func(ctx context.Context) ([]voice.Voice, error)
	SynthesizeFunc func(ctx context.Context, text, voiceID string) ([]byte, error)
}

func (m *MockVoiceProvider) Catalog(ctx context.Context) ([]voice.Voice, error) {
	return m.CatalogFunc(ctx)
}

func (m *MockVoiceProvider) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	return m.SynthesizeFunc(ctx, text, voiceID)
}

type MockLipSyncer struct {
	SyncFunc func(ctx context.Context, videoPath, audioPath string, progress func(string)) ([]byte, error)
}

func (m *MockLipSyncer) Sync(ctx context.Context, videoPath, audioPath string, progress func(string)) ([]byte, error) {
	return m.SyncFunc(ctx, videoPath, audioPath, progress)
}
