package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type (
	// Client wraps the Gemini generateContent endpoint. Both the fridge
	// scanner and the recipe generator go through it; each is responsible
	// for its own prompt and for parsing the returned text.
	Client interface {
		GenerateText(ctx context.Context, prompt string) (string, error)
		GenerateFromImage(ctx context.Context, base64Image string, mimeType string, prompt string) (string, error)
	}

	client struct {
		apiKey     string
		model      string
		baseURL    string
		httpClient *http.Client
	}

	request struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text       string      `json:"text,omitempty"`
		InlineData *inlineData `json:"inline_data,omitempty"`
	}

	inlineData struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}

	generationConfig struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"topP"`
		TopK        int     `json:"topK"`
	}

	response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func NewClient(apiKey, model string) Client {
	return NewClientWithBaseURL(apiKey, model, defaultBaseURL)
}

// NewClientWithBaseURL exists so tests can point the client at a local
// httptest server.
func NewClientWithBaseURL(apiKey, model, baseURL string) Client {
	return &client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{Text: prompt}})
}

func (c *client) GenerateFromImage(ctx context.Context, base64Image string, mimeType string, prompt string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return c.generate(ctx, []part{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64Image}},
		{Text: prompt},
	})
}

func (c *client) generate(ctx context.Context, parts []part) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not configured")
	}
	if c.model == "" {
		return "", fmt.Errorf("GEMINI_MODEL not configured")
	}

	body := request{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature: 0.7,
			TopP:        0.8,
			TopK:        40,
		},
	}

	requestJSON, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp response
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return StripFences(geminiResp.Candidates[0].Content.Parts[0].Text), nil
}

// StripFences removes the markdown code fences Gemini often wraps JSON in.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// ExtractJSONArray trims anything around the outermost JSON array. Returns
// false when no array is present.
func ExtractJSONArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || start > end {
		return "", false
	}
	return text[start : end+1], true
}
