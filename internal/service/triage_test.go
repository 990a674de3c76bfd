package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/ai"
	"github.com/civicpulse/backend/internal/models"
)

type fakeTranscoder struct{ fail bool }

func (f fakeTranscoder) ToWAV(ctx context.Context, data []byte, sourceFormat string) ([]byte, error) {
	if f.fail {
		return nil, errors.New("ffmpeg exited 1")
	}
	return data, nil
}

func TestTriageRejectsIrrelevantImages(t *testing.T) {
	tr := Triage{Pipeline: ai.MockPipeline{}, Logger: zerolog.Nop()}
	_, err := tr.Run(context.Background(), TriageInput{
		Category:  models.CategoryPothole,
		ImageURLs: []string{"/uploads/unrelated-selfie.jpg"},
	})
	var rejected RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Reason == "" {
		t.Fatalf("expected a rejection reason for the citizen")
	}
}

func TestTriageImageCheckOutageAborts(t *testing.T) {
	tr := Triage{Pipeline: failingPipeline{check: true}, Logger: zerolog.Nop()}
	_, err := tr.Run(context.Background(), TriageInput{
		Category:  models.CategoryPothole,
		ImageURLs: []string{"/uploads/road.jpg"},
	})
	if !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestTriagePriorityOutageAborts(t *testing.T) {
	tr := Triage{Pipeline: failingPipeline{priority: true}, Logger: zerolog.Nop()}
	_, err := tr.Run(context.Background(), TriageInput{
		Category:  models.CategoryPothole,
		ImageURLs: []string{"/uploads/road.jpg"},
	})
	if !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestTriageTranscodeFailureDropsTranscriptionOnly(t *testing.T) {
	tr := Triage{
		Pipeline:   ai.MockPipeline{},
		Transcoder: fakeTranscoder{fail: true},
		Logger:     zerolog.Nop(),
	}
	res, err := tr.Run(context.Background(), TriageInput{
		Category:    models.CategoryPothole,
		Notes:       "large pothole",
		ImageURLs:   []string{"/uploads/road.jpg"},
		Audio:       []byte{1, 2, 3},
		AudioFormat: "webm",
	})
	if err != nil {
		t.Fatalf("transcode failure must not abort triage: %v", err)
	}
	if res.Transcription != "" {
		t.Fatalf("expected empty transcription, got %q", res.Transcription)
	}
	if res.Title == "" || res.SeverityScore < 1 {
		t.Fatalf("expected the rest of the pipeline to run, got %+v", res)
	}
}

func TestTriageTranscriptionOutageTolerated(t *testing.T) {
	tr := Triage{
		Pipeline:   failingPipeline{transcribe: true},
		Transcoder: fakeTranscoder{},
		Logger:     zerolog.Nop(),
	}
	res, err := tr.Run(context.Background(), TriageInput{
		Category:    models.CategoryPothole,
		ImageURLs:   []string{"/uploads/road.jpg"},
		Audio:       []byte{1, 2, 3},
		AudioFormat: "webm",
	})
	if err != nil {
		t.Fatalf("transcription outage must not abort triage: %v", err)
	}
	if res.Transcription != "" {
		t.Fatalf("expected empty transcription, got %q", res.Transcription)
	}
}

func TestTriageTitleOutageFallsBack(t *testing.T) {
	tr := Triage{Pipeline: failingPipeline{title: true}, Logger: zerolog.Nop()}
	res, err := tr.Run(context.Background(), TriageInput{
		Category:  models.CategoryStreetlight,
		ImageURLs: []string{"/uploads/lamp.jpg"},
	})
	if err != nil {
		t.Fatalf("title outage must not abort triage: %v", err)
	}
	if res.Title != "Streetlight issue" {
		t.Fatalf("expected fallback title, got %q", res.Title)
	}
}

func TestTriageTranscriptionFeedsPriority(t *testing.T) {
	tr := Triage{
		Pipeline:   recordingPipeline{inner: ai.MockPipeline{}, seen: &ai.PriorityInput{}},
		Transcoder: fakeTranscoder{},
		Logger:     zerolog.Nop(),
	}
	rec := tr.Pipeline.(recordingPipeline)
	_, err := tr.Run(context.Background(), TriageInput{
		Category:    models.CategoryPothole,
		ImageURLs:   []string{"/uploads/road.jpg"},
		Audio:       []byte{1, 2, 3},
		AudioFormat: "webm",
	})
	if err != nil {
		t.Fatalf("triage failed: %v", err)
	}
	if rec.seen.Transcription == "" {
		t.Fatalf("expected transcription to reach the priority classifier")
	}
}

func TestNormalizePriorityOffSchema(t *testing.T) {
	if got := normalizePriority("Critical"); got != models.PriorityMedium {
		t.Fatalf("expected off-schema priority to normalize to Medium, got %s", got)
	}
	if got := normalizePriority("High"); got != models.PriorityHigh {
		t.Fatalf("expected High to pass through, got %s", got)
	}
}

// recordingPipeline captures the priority classifier input.
type recordingPipeline struct {
	inner ai.Pipeline
	seen  *ai.PriorityInput
}

func (r recordingPipeline) CheckImages(ctx context.Context, imageURLs []string, category string) (ai.ImageCheck, error) {
	return r.inner.CheckImages(ctx, imageURLs, category)
}

func (r recordingPipeline) Transcribe(ctx context.Context, wavAudio []byte) (string, error) {
	return r.inner.Transcribe(ctx, wavAudio)
}

func (r recordingPipeline) ClassifyPriority(ctx context.Context, in ai.PriorityInput) (string, error) {
	*r.seen = in
	return r.inner.ClassifyPriority(ctx, in)
}

func (r recordingPipeline) SuggestTitle(ctx context.Context, in ai.TitleInput) (string, error) {
	return r.inner.SuggestTitle(ctx, in)
}

func (r recordingPipeline) VerifyCompletion(ctx context.Context, in ai.VerificationInput) (ai.Verification, error) {
	return r.inner.VerifyCompletion(ctx, in)
}
