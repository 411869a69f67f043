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

func candidateReply(text string) string {
	reply := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	out, _ := json.Marshal(reply)
	return string(out)
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		w.Write([]byte(candidateReply("world")))
	}))
	defer server.Close()

	c := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)
	text, err := c.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestGenerateFromImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents[0].Parts, 2)
		require.NotNil(t, req.Contents[0].Parts[0].InlineData)
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[0].InlineData.MimeType)
		assert.Equal(t, "aW1hZ2U=", req.Contents[0].Parts[0].InlineData.Data)
		assert.NotEmpty(t, req.Contents[0].Parts[1].Text)

		w.Write([]byte(candidateReply("```json\n[]\n```")))
	}))
	defer server.Close()

	c := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)
	text, err := c.GenerateFromImage(context.Background(), "aW1hZ2U=", "", "describe")
	require.NoError(t, err)
	// fences come off before the caller sees the text
	assert.Equal(t, "[]", text)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		c := NewClient("", "gemini-2.0-flash")
		_, err := c.GenerateText(context.Background(), "hello")
		assert.Error(t, err)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)
		_, err := c.GenerateText(context.Background(), "hello")
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		c := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)
		_, err := c.GenerateText(context.Background(), "hello")
		assert.ErrorContains(t, err, "no candidates")
	})
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, StripFences("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[{"a":1}]`, StripFences("```\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[{"a":1}]`, StripFences(`[{"a":1}]`))
}

func TestExtractJSONArray(t *testing.T) {
	text, ok := ExtractJSONArray("Here you go: [1, 2, 3] enjoy!")
	assert.True(t, ok)
	assert.Equal(t, "[1, 2, 3]", text)

	_, ok = ExtractJSONArray("no array here")
	assert.False(t, ok)

	_, ok = ExtractJSONArray("] backwards [")
	assert.False(t, ok)
}
