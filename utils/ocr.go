package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OCRResult is the best-effort extraction from an uploaded identity
// document. Either field may be empty; nothing here is verified.
type OCRResult struct {
	FullName  string `json:"full_name"`
	NinNumber string `json:"nin_number"`
}

// OCRClient auto-fills registration fields by sending document images to an
// OpenAI-compatible vision endpoint. It is strictly optional: any failure
// surfaces as "could not auto-fill" and never blocks registration.
type OCRClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOCRClient(apiURL, apiKey, model string) *OCRClient {
	return &OCRClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the provider is configured at all.
func (c *OCRClient) Enabled() bool {
	return c != nil && c.apiURL != "" && c.apiKey != ""
}

type visionImageURL struct {
	URL string `json:"url"`
}

type visionContent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

type visionRequest struct {
	Model    string          `json:"model"`
	Messages []visionMessage `json:"messages"`
}

type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const ocrPrompt = `Extract the full name and the 11-digit NIN number from this identity document. Respond with only a JSON object: {"full_name": "...", "nin_number": "..."}. Use an empty string for anything you cannot read.`

// ExtractIdentity sends the image and parses the model's JSON reply.
func (c *OCRClient) ExtractIdentity(ctx context.Context, image []byte, mimeType string) (OCRResult, error) {
	if !c.Enabled() {
		return OCRResult{}, fmt.Errorf("OCR provider not configured")
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	reqBody := visionRequest{
		Model: c.model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionContent{
					{Type: "text", Text: ocrPrompt},
					{Type: "image_url", ImageURL: &visionImageURL{URL: dataURL}},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return OCRResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return OCRResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return OCRResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return OCRResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return OCRResult{}, fmt.Errorf("OCR API error (status %d): %s", resp.StatusCode, string(body))
	}

	var vr visionResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return OCRResult{}, err
	}
	if len(vr.Choices) == 0 {
		return OCRResult{}, fmt.Errorf("empty OCR response")
	}

	return parseOCRReply(vr.Choices[0].Message.Content)
}

// parseOCRReply tolerates markdown fences around the model's JSON.
func parseOCRReply(reply string) (OCRResult, error) {
	reply = strings.TrimSpace(reply)
	if start := strings.Index(reply, "{"); start >= 0 {
		if end := strings.LastIndex(reply, "}"); end > start {
			reply = reply[start : end+1]
		}
	}

	var result OCRResult
	if err := json.Unmarshal([]byte(reply), &result); err != nil {
		return OCRResult{}, fmt.Errorf("unparseable OCR reply: %v", err)
	}
	return result, nil
}
