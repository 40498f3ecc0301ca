// Package inference is the HTTP client for the external chat and vision
// inference service. The transport is the Ollama /api/chat shape; any
// compatible service satisfies it. The client is constructed once in main
// and injected into services, never held as package state.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Role values in chat transcripts
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ocrPrompt is the fixed instruction sent with every OCR request.
const ocrPrompt = "Act as an OCR assistant. Analyze the provided image and:\n" +
	"1. Recognize all visible text in the image as accurately as possible.\n" +
	"2. Maintain the original structure and formatting of the text.\n" +
	"3. If any words or phrases are unclear, indicate this with [unclear] in your transcription.\n" +
	"Provide only the transcription without any additional comments."

// Message is a single chat turn sent to the inference endpoint
type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Client calls an Ollama-compatible inference service
type Client struct {
	baseURL     string
	chatModel   string
	visionModel string
	client      *http.Client
}

// New creates an inference client. The timeout bounds every call; on
// timeout the call fails hard, it is never retried.
func New(baseURL, chatModel, visionModel string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		chatModel:   chatModel,
		visionModel: visionModel,
		client:      &http.Client{Timeout: timeout},
	}
}

// Chat sends a full message transcript and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.call(ctx, chatRequest{
		Model:    c.chatModel,
		Messages: messages,
		Stream:   false,
	})
}

// OCR sends a base64-encoded image with the fixed transcription prompt and
// returns the extracted text.
func (c *Client) OCR(ctx context.Context, base64Image string) (string, error) {
	return c.call(ctx, chatRequest{
		Model: c.visionModel,
		Messages: []Message{
			{
				Role:    RoleUser,
				Content: ocrPrompt,
				Images:  []string{base64Image},
			},
		},
		Stream: false,
	})
}

func (c *Client) call(ctx context.Context, reqBody chatRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// A response without content is a failure, not an empty result. The
	// pipeline must never persist a row backed by a blank transcription.
	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("inference service returned empty content")
	}

	return chatResp.Message.Content, nil
}
