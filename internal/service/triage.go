package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/ai"
	"github.com/civicpulse/backend/internal/audio"
	"github.com/civicpulse/backend/internal/models"
)

// Triage orchestrates the pre-submission AI pipeline: relevance gate,
// optional transcription, priority classification, title generation.
type Triage struct {
	Pipeline   ai.Pipeline
	Transcoder audio.Transcoder
	Logger     zerolog.Logger
}

type TriageInput struct {
	Category    models.Category
	Notes       string
	ImageURLs   []string
	Audio       []byte
	AudioFormat string
}

type TriageResult struct {
	SeverityScore     int
	SeverityReasoning string
	Priority          models.Priority
	Title             string
	Transcription     string
}

// Run walks the pipeline in order. The relevance gate short-circuits
// everything; transcription and title failures degrade; a failed relevance
// or priority call aborts with ErrAIUnavailable so the citizen can retry.
func (t Triage) Run(ctx context.Context, in TriageInput) (TriageResult, error) {
	check, err := t.Pipeline.CheckImages(ctx, in.ImageURLs, string(in.Category))
	if err != nil {
		t.Logger.Error().Err(err).Msg("image check failed")
		return TriageResult{}, fmt.Errorf("%w: image check: %v", ErrAIUnavailable, err)
	}
	if !check.IsRelevant {
		return TriageResult{}, RejectedError{Reason: check.RejectionReason}
	}

	result := TriageResult{
		SeverityScore:     check.SeverityScore,
		SeverityReasoning: check.Reasoning,
	}

	if len(in.Audio) > 0 {
		result.Transcription = t.transcribe(ctx, in.Audio, in.AudioFormat)
	}

	priority, err := t.Pipeline.ClassifyPriority(ctx, ai.PriorityInput{
		SeverityScore: result.SeverityScore,
		Category:      string(in.Category),
		Notes:         in.Notes,
		Transcription: result.Transcription,
	})
	if err != nil {
		t.Logger.Error().Err(err).Msg("priority classification failed")
		return TriageResult{}, fmt.Errorf("%w: priority: %v", ErrAIUnavailable, err)
	}
	result.Priority = normalizePriority(priority)

	title, err := t.Pipeline.SuggestTitle(ctx, ai.TitleInput{
		Category:          string(in.Category),
		Notes:             in.Notes,
		Transcription:     result.Transcription,
		SeverityReasoning: result.SeverityReasoning,
	})
	if err != nil || title == "" {
		if err != nil {
			t.Logger.Warn().Err(err).Msg("title generation failed, using default")
		}
		title = fmt.Sprintf("%s issue", in.Category)
	}
	result.Title = title

	return result, nil
}

// transcribe converts the voice note to WAV and sends it to the
// transcription stage. Transcription is optional, so failure at either step
// drops the transcription and nothing else.
func (t Triage) transcribe(ctx context.Context, data []byte, format string) string {
	wav, err := t.Transcoder.ToWAV(ctx, data, format)
	if err != nil {
		t.Logger.Warn().Err(err).Msg("audio transcode failed, skipping transcription")
		return ""
	}
	text, err := t.Pipeline.Transcribe(ctx, wav)
	if err != nil {
		t.Logger.Warn().Err(err).Msg("transcription failed, skipping")
		return ""
	}
	return text
}

// Verify runs the completion-verification stage. Unavailability is reported
// to the caller so the report can be stored with analysis deferred.
func (t Triage) Verify(ctx context.Context, in ai.VerificationInput) (ai.Verification, error) {
	v, err := t.Pipeline.VerifyCompletion(ctx, in)
	if err != nil {
		t.Logger.Warn().Err(err).Msg("completion verification unavailable")
		return ai.Verification{}, err
	}
	return v, nil
}

func normalizePriority(raw string) models.Priority {
	switch models.Priority(raw) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return models.Priority(raw)
	}
	// advisory classifier returned something off-schema
	return models.PriorityMedium
}
