package ai

import "context"

// ImageCheck is the relevance and severity verdict for submitted photos.
type ImageCheck struct {
	IsRelevant      bool   `json:"is_relevant"`
	SeverityScore   int    `json:"severity_score"`
	Reasoning       string `json:"reasoning"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// PriorityInput carries everything the priority classifier sees.
type PriorityInput struct {
	SeverityScore int    `json:"severity_score"`
	Category      string `json:"category"`
	Notes         string `json:"notes"`
	Transcription string `json:"transcription,omitempty"`
}

// TitleInput carries the title generation context.
type TitleInput struct {
	Category          string `json:"category"`
	Notes             string `json:"notes"`
	Transcription     string `json:"transcription,omitempty"`
	SeverityReasoning string `json:"severity_reasoning,omitempty"`
}

// VerificationInput pairs the original evidence with the completion report.
type VerificationInput struct {
	OriginalImages    []string `json:"original_images"`
	OriginalNotes     string   `json:"original_notes"`
	Transcription     string   `json:"transcription,omitempty"`
	CompletionImages  []string `json:"completion_images"`
	CompletionNotes   string   `json:"completion_notes"`
}

// Verification is the before/after comparison assisting the staff decision.
type Verification struct {
	Analysis         string `json:"analysis"`
	SuspectedAIImage bool   `json:"suspected_ai_image"`
}

// Pipeline is the hosted prompt service boundary. Each call is a single
// request/response with no retry; outputs are advisory and not guaranteed
// deterministic for identical inputs.
type Pipeline interface {
	CheckImages(ctx context.Context, imageURLs []string, category string) (ImageCheck, error)
	Transcribe(ctx context.Context, wavAudio []byte) (string, error)
	ClassifyPriority(ctx context.Context, in PriorityInput) (string, error)
	SuggestTitle(ctx context.Context, in TitleInput) (string, error)
	VerifyCompletion(ctx context.Context, in VerificationInput) (Verification, error)
}
