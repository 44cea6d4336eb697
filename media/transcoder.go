// Package media wraps the local ffmpeg binary for the two transcode
// operations the pipeline needs: pulling the audio track out of a video and
// shrinking a video before it is shipped to the lip-sync service.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrTranscodeFailed wraps any ffmpeg failure, with its stderr attached.
var ErrTranscodeFailed = errors.New("transcode failed")

type Transcoder struct {
	FFmpegPath string
}

func NewTranscoder() *Transcoder {
	return &Transcoder{FFmpegPath: "ffmpeg"}
}

// ExtractAudio writes the video's audio track as mp3. Blocks until ffmpeg
// exits; ctx cancellation kills the child process.
func (t *Transcoder) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	return t.run(ctx,
		"-hide_banner", "-nostdin", "-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "libmp3lame",
		audioPath,
	)
}

// Downscale reduces resolution and frame rate to cut upload payload size.
// Width follows from the target height, keeping the aspect ratio; the audio
// track is copied through untouched.
func (t *Transcoder) Downscale(ctx context.Context, videoPath, outPath string, targetHeight, targetFPS int) error {
	return t.run(ctx,
		"-hide_banner", "-nostdin", "-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf("scale=-2:%d", targetHeight),
		"-r", strconv.Itoa(targetFPS),
		"-c:a", "copy",
		outPath,
	)
}

func (t *Transcoder) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, t.FFmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: ffmpeg: %w\nstderr: %s", ErrTranscodeFailed, err, stderr.String())
	}
	return nil
}
