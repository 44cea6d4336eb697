package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every credential and tunable the pipeline needs. It is built
// once in main and passed by reference into the adapters; no stage reads the
// environment on its own.
type Config struct {
	OpenAIKey     string
	ElevenLabsKey string
	FalKey        string
	ReelLookupKey string

	ReelLookupEndpoint string
	ElevenLabsBaseURL  string
	FalStorageURL      string
	FalQueueURL        string
	LipSyncModel       string

	TmpDir    string
	OutputDir string

	DownscaleHeight int
	DownscaleFPS    int
	VoiceGender     string

	LipSyncTimeout      time.Duration
	LipSyncPollInterval time.Duration
}

// MissingConfigurationError reports an absent credential by its environment
// variable name.
type MissingConfigurationError struct {
	Name string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set", e.Name)
}

// Load reads the configuration from the environment. Call godotenv.Load
// before this if a .env file should be honored.
func Load() *Config {
	return &Config{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		ElevenLabsKey: os.Getenv("ELEVENLABS_API_KEY"),
		FalKey:        os.Getenv("FAL_API_KEY"),
		ReelLookupKey: os.Getenv("REEL_LOOKUP_API_KEY"),

		ReelLookupEndpoint: getEnv("REEL_LOOKUP_ENDPOINT", "https://api.reel-lookup.io/v1/resolve"),
		ElevenLabsBaseURL:  getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		FalStorageURL:      getEnv("FAL_STORAGE_URL", "https://rest.alpha.fal.ai/storage/upload"),
		FalQueueURL:        getEnv("FAL_QUEUE_URL", "https://queue.fal.run"),
		LipSyncModel:       getEnv("LIPSYNC_MODEL", "fal-ai/tavus/hummingbird-lipsync/v0"),

		TmpDir:    getEnv("TMP_DIR", "tmp"),
		OutputDir: getEnv("OUTPUT_DIR", "output"),

		DownscaleHeight: getEnvAsInt("DOWNSCALE_HEIGHT", 720),
		DownscaleFPS:    getEnvAsInt("DOWNSCALE_FPS", 25),
		VoiceGender:     getEnv("VOICE_GENDER", "male"),

		LipSyncTimeout:      getEnvAsDuration("LIPSYNC_TIMEOUT", 10*time.Minute),
		LipSyncPollInterval: getEnvAsDuration("LIPSYNC_POLL_INTERVAL", 3*time.Second),
	}
}

// Validate fails fast on the first absent credential, before any pipeline
// stage executes. needsLookup is false for direct uploads, which never touch
// the reel lookup service.
func (c *Config) Validate(needsLookup bool) error {
	if c.OpenAIKey == "" {
		return &MissingConfigurationError{Name: "OPENAI_API_KEY"}
	}
	if c.ElevenLabsKey == "" {
		return &MissingConfigurationError{Name: "ELEVENLABS_API_KEY"}
	}
	if c.FalKey == "" {
		return &MissingConfigurationError{Name: "FAL_API_KEY"}
	}
	if needsLookup && c.ReelLookupKey == "" {
		return &MissingConfigurationError{Name: "REEL_LOOKUP_API_KEY"}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
