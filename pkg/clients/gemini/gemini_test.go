package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSummarySuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A strong "},{"text":"week."}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "test-model")
	text, err := client.GenerateSummary(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, "A strong week.", text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "the prompt", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.7, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 0.9, gotBody.GenerationConfig.TopP)
}

func TestGenerateSummaryAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "test-model")
	_, err := client.GenerateSummary(context.Background(), "the prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=429")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestGenerateSummaryEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "test-model")
	_, err := client.GenerateSummary(context.Background(), "the prompt")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGenerateSummaryEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "test-model")
	_, err := client.GenerateSummary(context.Background(), "the prompt")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGenerateSummaryConnectionError(t *testing.T) {
	client := NewClient("secret", "http://127.0.0.1:1", "test-model")
	_, err := client.GenerateSummary(context.Background(), "the prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini api call")
}
