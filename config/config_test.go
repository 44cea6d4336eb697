package config

import (
	"errors"
	"testing"
	"time"
)

func setAllKeys(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "oa")
	t.Setenv("ELEVENLABS_API_KEY", "el")
	t.Setenv("FAL_API_KEY", "fal")
	t.Setenv("REEL_LOOKUP_API_KEY", "reel")
}

func TestValidatePassesWithAllCredentials(t *testing.T) {
	setAllKeys(t)
	if err := Load().Validate(true); err != nil {
		t.Fatalf("Validate failed with all credentials set: %v", err)
	}
}

func TestValidateNamesTheMissingCredential(t *testing.T) {
	cases := []struct {
		unset string
	}{
		{"OPENAI_API_KEY"},
		{"ELEVENLABS_API_KEY"},
		{"FAL_API_KEY"},
		{"REEL_LOOKUP_API_KEY"},
	}

	for _, tc := range cases {
		setAllKeys(t)
		t.Setenv(tc.unset, "")

		err := Load().Validate(true)
		var missing *MissingConfigurationError
		if !errors.As(err, &missing) {
			t.Fatalf("unset %s: expected MissingConfigurationError, got %v", tc.unset, err)
		}
		if missing.Name != tc.unset {
			t.Errorf("unset %s: error names %s", tc.unset, missing.Name)
		}
	}
}

func TestValidateSkipsLookupKeyForDirectUploads(t *testing.T) {
	setAllKeys(t)
	t.Setenv("REEL_LOOKUP_API_KEY", "")

	if err := Load().Validate(false); err != nil {
		t.Fatalf("direct uploads must not require the lookup key: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	setAllKeys(t)
	cfg := Load()

	if cfg.DownscaleHeight != 720 || cfg.DownscaleFPS != 25 {
		t.Errorf("unexpected downscale defaults: %dx@%d", cfg.DownscaleHeight, cfg.DownscaleFPS)
	}
	if cfg.VoiceGender != "male" {
		t.Errorf("unexpected default voice gender: %s", cfg.VoiceGender)
	}
	if cfg.LipSyncTimeout != 10*time.Minute {
		t.Errorf("unexpected lip-sync timeout default: %s", cfg.LipSyncTimeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	setAllKeys(t)
	t.Setenv("DOWNSCALE_HEIGHT", "480")
	t.Setenv("VOICE_GENDER", "female")
	t.Setenv("LIPSYNC_TIMEOUT", "2m")

	cfg := Load()
	if cfg.DownscaleHeight != 480 {
		t.Errorf("DOWNSCALE_HEIGHT override ignored: %d", cfg.DownscaleHeight)
	}
	if cfg.VoiceGender != "female" {
		t.Errorf("VOICE_GENDER override ignored: %s", cfg.VoiceGender)
	}
	if cfg.LipSyncTimeout != 2*time.Minute {
		t.Errorf("LIPSYNC_TIMEOUT override ignored: %s", cfg.LipSyncTimeout)
	}
}
