package genai

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type (
	// GenaiClient talks to the Gemini generateContent API. Text prompts go
	// to the text model, coloring pages to the image model.
	GenaiClient interface {
		GenerateText(ctx context.Context, prompt string) (string, error)
		// GenerateImage returns the generated picture as a data URI.
		GenerateImage(ctx context.Context, prompt string) (string, error)
	}

	genaiClient struct {
		httpClient *http.Client
	}

	generateContentResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func NewGenaiClient() GenaiClient {
	return &genaiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *genaiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.generateContent(ctx, utils.GetConfig("GEMINI_MODEL"), map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	})
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return strings.TrimSpace(part.Text), nil
		}
	}
	return "", domain.ErrGeminiAPIFailed
}

func (c *genaiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.generateContent(ctx, utils.GetConfig("GEMINI_IMAGE_MODEL"), map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseModalities": []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return fmt.Sprintf("data:%s;base64,%s", part.InlineData.MimeType, part.InlineData.Data), nil
		}
	}
	return "", domain.ErrGeminiAPIFailed
}

func (c *genaiClient) generateContent(ctx context.Context, model string, body map[string]interface{}) (*generateContentResponse, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model not configured")
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey)

	requestJSON, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrGeminiAPIFailed
	}

	return &parsed, nil
}
