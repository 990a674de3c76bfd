package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/civicpulse/backend/internal/utils"
)

// MockPipeline stands in for the hosted prompt service when AI_URL is not
// configured. Outputs are derived deterministically from FNV hashes so local
// runs are reproducible. An image URL containing "unrelated" is judged
// irrelevant, which gives demos a way to exercise the rejection path.
type MockPipeline struct {
	ModelVersion string
}

func (m MockPipeline) CheckImages(ctx context.Context, imageURLs []string, category string) (ImageCheck, error) {
	for _, u := range imageURLs {
		if strings.Contains(strings.ToLower(u), "unrelated") {
			return ImageCheck{
				IsRelevant:      false,
				RejectionReason: "The photo does not appear to show a civic issue.",
			}, nil
		}
	}

	h := utils.HashStringToUint64(strings.Join(imageURLs, "|") + category)
	severity := int(h%10) + 1
	return ImageCheck{
		IsRelevant:    true,
		SeverityScore: severity,
		Reasoning:     fmt.Sprintf("Photo evidence consistent with a %s issue, severity %d/10.", category, severity),
	}, nil
}

func (m MockPipeline) Transcribe(ctx context.Context, wavAudio []byte) (string, error) {
	if len(wavAudio) == 0 {
		return "", nil
	}
	return "Voice note describing the reported issue.", nil
}

func (m MockPipeline) ClassifyPriority(ctx context.Context, in PriorityInput) (string, error) {
	text := strings.ToLower(in.Notes + " " + in.Transcription)
	urgent := strings.Contains(text, "dangerous") || strings.Contains(text, "urgent") || strings.Contains(text, "injur")

	switch {
	case in.SeverityScore >= 8:
		return "High", nil
	case in.Category == "Safety Hazard" && urgent:
		return "High", nil
	case in.SeverityScore >= 5 || urgent:
		return "Medium", nil
	default:
		return "Low", nil
	}
}

func (m MockPipeline) SuggestTitle(ctx context.Context, in TitleInput) (string, error) {
	words := strings.Fields(in.Notes)
	if len(words) > 7 {
		words = words[:7]
	}
	if len(words) == 0 {
		return fmt.Sprintf("%s issue", in.Category), nil
	}
	return fmt.Sprintf("%s: %s", in.Category, strings.Join(words, " ")), nil
}

func (m MockPipeline) VerifyCompletion(ctx context.Context, in VerificationInput) (Verification, error) {
	suspected := false
	for _, u := range in.CompletionImages {
		if strings.Contains(strings.ToLower(u), "generated") {
			suspected = true
		}
	}
	return Verification{
		Analysis:         "Completion photos show the reported condition addressed; surfaces match the original scene.",
		SuspectedAIImage: suspected,
	}, nil
}
