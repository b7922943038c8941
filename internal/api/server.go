// Package api provides the HTTP REST API server for Hearth Bridge.
//
// It exposes the bridge's six endpoints: natural-language control, image
// analysis, device listing, automation suggestions, status, and
// conversation.
//
// The server follows the same lifecycle pattern as the infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rfallows/hearth-bridge/internal/conversation"
	"github.com/rfallows/hearth-bridge/internal/dispatch"
	"github.com/rfallows/hearth-bridge/internal/hub"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
	"github.com/rfallows/hearth-bridge/internal/intent"
	"github.com/rfallows/hearth-bridge/internal/suggest"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// HubClient fetches the device inventory from the hub.
// *hub.Client satisfies this; tests substitute fakes.
type HubClient interface {
	FetchStates(ctx context.Context) *hub.Snapshot
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config       config.APIConfig
	Features     config.FeatureConfig
	Logger       *logging.Logger
	Hub          HubClient
	Classifier   intent.Classifier
	Dispatcher   *dispatch.Dispatcher
	Conversation *conversation.History
	Suggester    *suggest.Builder
	Version      string
}

// Server is the HTTP API server for Hearth Bridge.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg          config.APIConfig
	features     config.FeatureConfig
	logger       *logging.Logger
	hub          HubClient
	classifier   intent.Classifier
	dispatcher   *dispatch.Dispatcher
	conversation *conversation.History
	suggester    *suggest.Builder
	version      string
	server       *http.Server

	// deviceCount is the entity count from the most recent hub fetch,
	// reported by /api/status without another hub round trip.
	deviceCount atomic.Int64
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, hub client, classifier, dispatcher)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Hub == nil {
		return nil, fmt.Errorf("hub client is required")
	}
	if deps.Classifier == nil {
		return nil, fmt.Errorf("intent classifier is required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if deps.Conversation == nil {
		return nil, fmt.Errorf("conversation history is required")
	}
	if deps.Suggester == nil {
		return nil, fmt.Errorf("suggestion builder is required")
	}

	return &Server{
		cfg:          deps.Config,
		features:     deps.Features,
		logger:       deps.Logger,
		hub:          deps.Hub,
		classifier:   deps.Classifier,
		dispatcher:   deps.Dispatcher,
		conversation: deps.Conversation,
		suggester:    deps.Suggester,
		version:      deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation (not used for listener lifetime)
//
// Returns:
//   - error: If the server fails to start
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server started", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}

// fetchSnapshot fetches device states and records the count for /api/status.
func (s *Server) fetchSnapshot(ctx context.Context) *hub.Snapshot {
	snap := s.hub.FetchStates(ctx)
	s.deviceCount.Store(int64(snap.Len()))
	return snap
}
