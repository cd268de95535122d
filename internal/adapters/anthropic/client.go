// Package anthropic implements the model transport against the
// Anthropic Messages API, streaming replies over SSE.
package anthropic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/sketch/internal/core/stream"
	"github.com/example/sketch/internal/ports/secondary"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// Client talks to the Anthropic Messages API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

var _ secondary.ModelTransport = (*Client)(nil)

// NewClient creates a new API client. baseURL may be empty for the
// production endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
	Stream    bool         `json:"stream,omitempty"`
}

func (c *Client) newHTTPRequest(ctx context.Context, req secondary.ModelRequest, streaming bool) (*http.Request, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	body := apiRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Stream:    streaming,
	}
	for _, turn := range req.Turns {
		body.Messages = append(body.Messages, apiMessage{Role: turn.Role, Content: turn.Content})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)
	return httpReq, nil
}

// Stream sends a streaming request and returns a channel of events. The
// channel is closed after the final event; an API or transport failure
// mid-stream surfaces as one Err event before the close.
func (c *Client) Stream(ctx context.Context, req secondary.ModelRequest) (<-chan stream.Event, error) {
	httpReq, err := c.newHTTPRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, apiError(resp)
	}

	events := make(chan stream.Event)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				continue
			}
			ev, done, ok := decodeEvent([]byte(data))
			if ok {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
				if ev.Err != nil {
					return
				}
			}
			if done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case events <- stream.Event{Err: fmt.Errorf("stream read failed: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()
	return events, nil
}

// sseEvent covers every wire event shape we care about; unknown types
// are skipped.
type sseEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Message struct {
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	} `json:"message"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeEvent maps one SSE data payload onto a stream event. The second
// return reports end of stream, the third whether an event should be
// emitted at all.
func decodeEvent(data []byte) (stream.Event, bool, bool) {
	var ev sseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		// Malformed wire frames are skipped, not fatal.
		return stream.Event{}, false, false
	}
	switch ev.Type {
	case "content_block_delta":
		if ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
			return stream.Event{TextDelta: ev.Delta.Text}, false, true
		}
		return stream.Event{}, false, false
	case "message_start":
		u := stream.Usage{
			InputTokens:  ev.Message.Usage.InputTokens,
			OutputTokens: ev.Message.Usage.OutputTokens,
		}
		return stream.Event{Usage: &u}, false, true
	case "message_delta":
		u := stream.Usage{
			InputTokens:  ev.Usage.InputTokens,
			OutputTokens: ev.Usage.OutputTokens,
		}
		return stream.Event{Usage: &u}, false, true
	case "message_stop":
		return stream.Event{}, true, false
	case "error":
		return stream.Event{Err: fmt.Errorf("api error (%s): %s", ev.Error.Type, ev.Error.Message)}, true, true
	default:
		return stream.Event{}, false, false
	}
}

type completeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete sends a non-streaming request and returns the full reply.
func (c *Client) Complete(ctx context.Context, req secondary.ModelRequest) (string, stream.Usage, error) {
	httpReq, err := c.newHTTPRequest(ctx, req, false)
	if err != nil {
		return "", stream.Usage{}, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", stream.Usage{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", stream.Usage{}, apiError(resp)
	}

	var out completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", stream.Usage{}, fmt.Errorf("failed to decode response: %w", err)
	}
	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	usage := stream.Usage{
		InputTokens:  out.Usage.InputTokens,
		OutputTokens: out.Usage.OutputTokens,
	}
	return text.String(), usage, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, msg)
}
