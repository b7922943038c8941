package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
)

// Client talks to the smart-home hub's REST API.
//
// Both operations are stateless per-call HTTP requests carrying a bearer
// token. Failures are soft: a failed states fetch yields an empty snapshot
// and a failed service call yields false — logged, never escalated. This
// matches the bridge's best-effort fan-out contract, where one bad hub call
// must not abort the remaining device/action pairs.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *logging.Logger
}

// New creates a hub client from configuration.
//
// Parameters:
//   - cfg: Hub connection settings (base URL, bearer token, timeout)
//   - logger: Logger for soft-failure reporting
//
// Returns:
//   - *Client: Ready-to-use client (no connection is opened up front)
func New(cfg config.HubConfig, logger *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
	}
}

// FetchStates retrieves the full entity list from GET {hub}/api/states.
//
// The snapshot replaces any previous view of the hub wholesale — there is
// no diffing or merging across fetches. On transport failure or a non-200
// response the error is logged and an empty snapshot is returned.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - *Snapshot: Devices keyed by entity ID, in hub return order; empty on failure
func (c *Client) FetchStates(ctx context.Context) *Snapshot {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/states", nil)
	if err != nil {
		c.logger.Error("building states request", "error", err)
		return EmptySnapshot()
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("fetching states", "error", err)
		return EmptySnapshot()
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on read path

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("states fetch failed", "status", resp.StatusCode)
		return EmptySnapshot()
	}

	var devices []Device
	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		c.logger.Error("decoding states response", "error", err)
		return EmptySnapshot()
	}

	snap := NewSnapshot(devices)
	c.logger.Info("fetched devices from hub", "count", snap.Len())
	return snap
}

// CallService invokes POST {hub}/api/services/{domain}/{service} for one entity.
//
// The entity ID is sent in the JSON body along with any extra parameters.
// Non-200 responses and transport errors are logged and reported as false;
// they never abort the caller's fan-out.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - domain: Service domain (e.g., "light")
//   - service: Service name (e.g., "turn_on")
//   - entityID: Target entity (e.g., "light.kitchen")
//   - extra: Additional service parameters (may be nil)
//
// Returns:
//   - bool: true if the hub accepted the call with 200
func (c *Client) CallService(ctx context.Context, domain, service, entityID string, extra map[string]any) bool {
	payload := map[string]any{
		"entity_id": entityID,
	}
	for k, v := range extra {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("encoding service payload", "error", err)
		return false
	}

	url := fmt.Sprintf("%s/api/services/%s/%s", c.baseURL, domain, service)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("building service request", "error", err)
		return false
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("calling service", "action", domain+"."+service, "entity_id", entityID, "error", err)
		return false
	}
	defer resp.Body.Close() //nolint:errcheck // Response body is unused

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("service call failed",
			"action", domain+"."+service,
			"entity_id", entityID,
			"status", resp.StatusCode,
		)
		return false
	}

	c.logger.Info("called service", "action", domain+"."+service, "entity_id", entityID)
	return true
}

// HealthCheck verifies the hub API is reachable and the token is accepted.
//
// It calls GET {hub}/api/, the hub's lightweight liveness endpoint.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if the hub responds 200, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/", nil)
	if err != nil {
		return fmt.Errorf("hub health check: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body is unused

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return nil
}

// setHeaders applies the bearer token and content type to a hub request.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
}
