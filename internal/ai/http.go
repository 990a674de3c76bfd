package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// HTTPPipeline talks to the hosted prompt service. Each stage is its own
// endpoint taking and returning JSON.
type HTTPPipeline struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func (h HTTPPipeline) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (h HTTPPipeline) post(ctx context.Context, path string, payload any, out any) error {
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.APIKey)
	}

	resp, err := h.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("ai service error: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h HTTPPipeline) CheckImages(ctx context.Context, imageURLs []string, category string) (ImageCheck, error) {
	var out ImageCheck
	err := h.post(ctx, "/v1/image-check", map[string]any{
		"image_urls": imageURLs,
		"category":   category,
	}, &out)
	return out, err
}

func (h HTTPPipeline) Transcribe(ctx context.Context, wavAudio []byte) (string, error) {
	var out struct {
		Transcription string `json:"transcription"`
	}
	err := h.post(ctx, "/v1/transcribe", map[string]any{
		"audio_wav_base64": base64.StdEncoding.EncodeToString(wavAudio),
	}, &out)
	return out.Transcription, err
}

func (h HTTPPipeline) ClassifyPriority(ctx context.Context, in PriorityInput) (string, error) {
	var out struct {
		Priority string `json:"priority"`
	}
	err := h.post(ctx, "/v1/priority", in, &out)
	return out.Priority, err
}

func (h HTTPPipeline) SuggestTitle(ctx context.Context, in TitleInput) (string, error) {
	var out struct {
		Title string `json:"title"`
	}
	err := h.post(ctx, "/v1/title", in, &out)
	return out.Title, err
}

func (h HTTPPipeline) VerifyCompletion(ctx context.Context, in VerificationInput) (Verification, error) {
	var out Verification
	err := h.post(ctx, "/v1/verify-completion", in, &out)
	return out, err
}
