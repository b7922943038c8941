package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds each request when no custom HTTP client is supplied.
const defaultTimeout = 30 * time.Second

// Client is an HTTP client for the bridge API.
//
// All methods report failure through the Error field of their result
// instead of a Go error return, so callers handle transport failures,
// bridge rejections, and hub problems through one channel.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add
// custom transports or tighter timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a bridge client for the given base URL
// (e.g. "http://localhost:8124").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Control sends a natural-language command for execution.
func (c *Client) Control(ctx context.Context, command string) CommandResult {
	var out CommandResult
	if msg := c.post(ctx, "/api/control", map[string]string{"command": command}, &out); msg != "" {
		return CommandResult{Error: msg}
	}
	return out
}

// AnalyzeImage requests analysis of a camera entity's image.
func (c *Client) AnalyzeImage(ctx context.Context, entityID, prompt string) Analysis {
	var out Analysis
	body := map[string]string{"entity_id": entityID, "prompt": prompt}
	if msg := c.post(ctx, "/api/analyze", body, &out); msg != "" {
		return Analysis{Error: msg}
	}
	return out
}

// GetDevices fetches the bridge's device inventory.
func (c *Client) GetDevices(ctx context.Context) DeviceList {
	var raw struct {
		Devices map[string]struct {
			State      string         `json:"state"`
			Attributes map[string]any `json:"attributes"`
		} `json:"devices"`
		Count int `json:"count"`
	}
	if msg := c.get(ctx, "/api/devices", &raw); msg != "" {
		return DeviceList{Error: msg}
	}

	devices := make([]Device, 0, len(raw.Devices))
	for entityID, d := range raw.Devices {
		state := d.State
		if state == "" {
			state = "unknown"
		}
		devices = append(devices, Device{
			EntityID:   entityID,
			State:      state,
			Attributes: d.Attributes,
		})
	}
	return DeviceList{Devices: devices, Count: raw.Count}
}

// SuggestAutomation requests an automation scaffold for a trigger/action pair.
func (c *Client) SuggestAutomation(ctx context.Context, trigger, action string) SuggestionResult {
	var out SuggestionResult
	body := map[string]string{"trigger": trigger, "action": action}
	if msg := c.post(ctx, "/api/automation-suggest", body, &out); msg != "" {
		return SuggestionResult{Error: msg}
	}
	return out
}

// GetStatus fetches the bridge's status report.
func (c *Client) GetStatus(ctx context.Context) Status {
	var out Status
	if msg := c.get(ctx, "/api/status", &out); msg != "" {
		return Status{Error: msg}
	}
	return out
}

// SendMessage runs one conversational exchange with the bridge.
func (c *Client) SendMessage(ctx context.Context, message string) ConversationResult {
	var out ConversationResult
	if msg := c.post(ctx, "/api/conversation", map[string]string{"message": message}, &out); msg != "" {
		return ConversationResult{Error: msg}
	}
	return out
}

// post sends a JSON body and decodes the response into out.
// It returns a non-empty message on any failure.
func (c *Client) post(ctx context.Context, path string, body, out any) string {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("encoding request: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Sprintf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// get fetches a path and decodes the response into out.
// It returns a non-empty message on any failure.
func (c *Client) get(ctx context.Context, path string, out any) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Sprintf("building request: %v", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) string {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Sprintf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on read path

	if resp.StatusCode != http.StatusOK {
		var bridgeErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&bridgeErr) == nil && bridgeErr.Error != "" {
			return bridgeErr.Error
		}
		return fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Sprintf("decoding response: %v", err)
	}
	return ""
}
