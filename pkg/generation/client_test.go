package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateResponse(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func TestGenerateText(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse("生成された回答")))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-2.5-flash", WithBaseURL(server.URL))
	got, err := client.GenerateText(context.Background(), "質問", "システム指示")
	require.NoError(t, err)
	assert.Equal(t, "生成された回答", got)

	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "質問", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "システム指示", captured.SystemInstruction.Parts[0].Text)
	assert.Nil(t, captured.GenerationConfig)
}

func TestGenerateTextWithoutSystemInstruction(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse("ok")))
	}))
	defer server.Close()

	client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
	_, err := client.GenerateText(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Nil(t, captured.SystemInstruction)
}

func TestGenerateStringArraySendsSchema(t *testing.T) {
	var captured geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse(`["a","b"]`)))
	}))
	defer server.Close()

	client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
	got, err := client.GenerateStringArray(context.Background(), "p", "項目の説明")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, got)

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
	require.NotNil(t, captured.GenerationConfig.ResponseSchema)
	assert.Equal(t, "ARRAY", captured.GenerationConfig.ResponseSchema.Type)
	require.NotNil(t, captured.GenerationConfig.ResponseSchema.Items)
	assert.Equal(t, "STRING", captured.GenerationConfig.ResponseSchema.Items.Type)
	assert.Equal(t, "項目の説明", captured.GenerationConfig.ResponseSchema.Items.Description)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"unauthorized 401", http.StatusUnauthorized, "unauthorized", KindUnauthorized},
		{"forbidden 403", http.StatusForbidden, "forbidden", KindUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "quota exceeded", KindRateLimited},
		{"bad key as 400", http.StatusBadRequest, `{"error":{"message":"API key not valid. Please pass a valid API key."}}`, KindUnauthorized},
		{"plain 500", http.StatusInternalServerError, "boom", KindService},
		{"plain 400", http.StatusBadRequest, "bad request", KindService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
			_, err := client.GenerateText(context.Background(), "p", "s")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
	_, err := client.GenerateText(context.Background(), "p", "s")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
	_, err := client.GenerateText(context.Background(), "p", "s")
	require.Error(t, err)
	assert.Equal(t, KindService, KindOf(err))
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewGeminiClient("k", "m", WithBaseURL(server.URL))
	_, err := client.GenerateText(ctx, "p", "s")
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
}
