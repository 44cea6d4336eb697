package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lipdub/lipdub/acquire"
	"github.com/lipdub/lipdub/config"
	"github.com/lipdub/lipdub/languages"
	"github.com/lipdub/lipdub/lipsync"
	"github.com/lipdub/lipdub/media"
	"github.com/lipdub/lipdub/pipeline"
	"github.com/lipdub/lipdub/speech"
	"github.com/lipdub/lipdub/store"
	"github.com/lipdub/lipdub/voice"
)

func main() {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	lang := flag.String("lang", "es", "target language code")
	reelURL := flag.String("url", "", "shareable reel URL to translate instead of a local file")
	flag.Parse()

	if _, ok := languages.Name(*lang); !ok {
		log.Printf("unsupported language code %q, supported codes:", *lang)
		for _, l := range languages.Supported() {
			log.Printf("  %s  %s", l.Code, l.Name)
		}
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(*reelURL != ""); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	src, err := buildSource(cfg, *reelURL, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	artifacts := store.New(cfg.TmpDir, cfg.OutputDir)
	if err := artifacts.EnsureDirs(); err != nil {
		log.Fatalf("Failed to prepare working directories: %v", err)
	}

	// Cancel the run on interrupt so child processes and remote calls stop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\nReceived interrupt signal, aborting...")
		cancel()
	}()

	orch := &pipeline.Orchestrator{
		Store:       artifacts,
		Transcoder:  media.NewTranscoder(),
		Transcriber: speech.NewTranscriber(cfg.OpenAIKey),
		Translator:  speech.NewTranslator(cfg.OpenAIKey),
		Voices:      voice.NewClient(cfg.ElevenLabsBaseURL, cfg.ElevenLabsKey),
		LipSync: lipsync.NewClient(
			cfg.FalStorageURL, cfg.FalQueueURL, cfg.FalKey,
			cfg.LipSyncModel, cfg.LipSyncPollInterval,
		),
		DownscaleHeight: cfg.DownscaleHeight,
		DownscaleFPS:    cfg.DownscaleFPS,
		VoiceGender:     cfg.VoiceGender,
		LipSyncTimeout:  cfg.LipSyncTimeout,
		Hooks: pipeline.Hooks{
			OnStage:    func(s pipeline.Stage) { log.Printf("stage: %s", s) },
			OnProgress: func(line string) { log.Printf("lip-sync: %s", line) },
		},
	}

	finalPath, err := orch.Run(ctx, src, *lang)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Println("Translated video:", finalPath)
}

func buildSource(cfg *config.Config, reelURL string, args []string) (pipeline.Source, error) {
	if reelURL != "" {
		return &acquire.ReelSource{
			URL:      reelURL,
			Endpoint: cfg.ReelLookupEndpoint,
			APIKey:   cfg.ReelLookupKey,
		}, nil
	}

	if len(args) < 1 {
		return nil, fmt.Errorf("usage: lipdub [-lang code] [-url reelURL] [video.mp4]")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}
	return &acquire.UploadSource{Data: data}, nil
}
