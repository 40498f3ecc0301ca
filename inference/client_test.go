package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": "Hello, how can I help?"},
		})
	}))
	defer server.Close()

	c := New(server.URL, "test-chat", "test-vision", 5*time.Second)
	reply, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "User information:\nallergic to penicillin"},
		{Role: RoleUser, Content: "Hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello, how can I help?", reply)
	assert.Equal(t, "test-chat", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
}

func TestOCR(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": "Rx: amoxicillin 500mg"},
		})
	}))
	defer server.Close()

	c := New(server.URL, "test-chat", "test-vision", 5*time.Second)
	text, err := c.OCR(context.Background(), "aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "Rx: amoxicillin 500mg", text)
	assert.Equal(t, "test-vision", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, []string{"aGVsbG8="}, got.Messages[0].Images)
	assert.Contains(t, got.Messages[0].Content, "OCR assistant")
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "m", "v", 5*time.Second)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestEmptyContentIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"content": ""},
		})
	}))
	defer server.Close()

	c := New(server.URL, "m", "v", 5*time.Second)
	_, err := c.OCR(context.Background(), "aGVsbG8=")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, "m", "v", 50*time.Millisecond)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	c := New("", "chat", "vision", 0)
	assert.Equal(t, "http://localhost:11434", c.baseURL)
	assert.Equal(t, 10*time.Second, c.client.Timeout)
}
