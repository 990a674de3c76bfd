package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Transcoder converts a recorded voice note into the WAV payload the
// transcription stage requires. One deterministic conversion, no retry.
type Transcoder interface {
	ToWAV(ctx context.Context, data []byte, sourceFormat string) ([]byte, error)
}

// FFmpegTranscoder shells out to ffmpeg, reading from stdin and writing WAV
// to stdout so no temp files are needed.
type FFmpegTranscoder struct {
	Path string
}

func (f FFmpegTranscoder) ToWAV(ctx context.Context, data []byte, sourceFormat string) ([]byte, error) {
	path := f.Path
	if path == "" {
		path = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, path,
		"-f", sourceFormat,
		"-i", "pipe:0",
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
