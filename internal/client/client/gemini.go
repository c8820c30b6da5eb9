package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-pro"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512
)

// SystemPrompt scopes the assistant to sign language topics. It is sent in
// front of every question.
const SystemPrompt = `You are a helpful assistant that ONLY answers questions related to sign language, deaf culture, accessibility, and communication for people with hearing or speech impairments.

Your expertise includes:
- American Sign Language (ASL), International Sign Language (ISL), British Sign Language (BSL), and other sign languages
- Deaf culture and community
- Accessibility tools and technologies
- Communication strategies for deaf and mute individuals
- Sign language learning resources and techniques
- History and linguistics of sign languages

If someone asks about topics unrelated to sign language, deaf culture, or accessibility, politely respond: "I'm only able to assist with questions related to sign language, deaf culture, and accessibility. How can I help you with these topics?"

Always be encouraging, inclusive, and supportive. Provide practical, helpful information that empowers users in their sign language journey.`

// Assistant answers a single free-text question.
type Assistant interface {
	Ask(ctx context.Context, question string) (string, error)
}

type GeminiClient struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// NewGeminiClient returns a client for endpoint (the API base URL, without
// the models path). Empty endpoint or model fall back to the defaults.
func NewGeminiClient(endpoint, model, apiKey string, timeout time.Duration) *GeminiClient {
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiSafety struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig"`
	SafetySettings   []geminiSafety  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Prompt builds the text sent for question.
func Prompt(question string) string {
	return SystemPrompt + "\n\nUser question: " + question
}

func (g *GeminiClient) url() string {
	q := url.Values{"key": {g.apiKey}}
	return fmt.Sprintf("%s/models/%s:generateContent?%s", g.endpoint, url.PathEscape(g.model), q.Encode())
}

// Ask sends question to the model and returns the first candidate's text.
func (g *GeminiClient) Ask(ctx context.Context, question string) (string, error) {
	if g.apiKey == "" {
		return "", &ChatServiceError{Err: ErrNotConfigured}
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: Prompt(question)}}}},
		GenerationConfig: map[string]any{
			"temperature":     0.7,
			"topK":            40,
			"topP":            0.95,
			"maxOutputTokens": 1024,
		},
		SafetySettings: []geminiSafety{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ChatServiceError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url(), bytes.NewReader(body))
	if err != nil {
		return "", &ChatServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", &ChatServiceError{Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &ChatServiceError{StatusCode: resp.StatusCode, Err: mapStatus(resp.StatusCode, string(raw))}
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ChatServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &ChatServiceError{StatusCode: resp.StatusCode, Err: ErrEmptyResponse}
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
