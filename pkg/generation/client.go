package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is the boundary to the external text-generation service. Two call
// shapes: free-form text and a schema-constrained JSON array of strings.
// Neither retries; a failed attempt is terminal for that sub-request.
type Client interface {
	// GenerateText requests a free-form completion guided by a system instruction.
	GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error)

	// GenerateStringArray requests a completion constrained to a JSON array
	// of strings. itemDescription documents the array element for the model.
	// The returned value is still the raw response text; callers parse it.
	GenerateStringArray(ctx context.Context, prompt, itemDescription string) (string, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiSchema struct {
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Items       *geminiSchema `json:"items,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient calls the Gemini generateContent REST endpoint. Constructed
// explicitly and injected into the orchestrator so tests can swap in a double.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*GeminiClient)

// WithBaseURL overrides the service endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GeminiClient) { c.httpClient = hc }
}

func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}, Role: "user"},
		},
	}
	if systemInstruction != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}}
	}
	return c.call(ctx, payload)
}

func (c *GeminiClient) GenerateStringArray(ctx context.Context, prompt, itemDescription string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}, Role: "user"},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &geminiSchema{
				Type: "ARRAY",
				Items: &geminiSchema{
					Type:        "STRING",
					Description: itemDescription,
				},
			},
		},
	}
	return c.call(ctx, payload)
}

func (c *GeminiClient) call(ctx context.Context, payload geminiRequest) (string, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: err.Error()}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: err.Error()}
	}

	if res.StatusCode != http.StatusOK {
		return "", classifyStatus(res.StatusCode, resBody)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", &Error{Kind: KindService, Status: res.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}
	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Kind: KindService, Status: res.StatusCode, Message: "response contains no candidates"}
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
