package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rfallows/hearth-bridge/internal/suggest"
)

// automationRequest is the body of POST /api/automation-suggest.
type automationRequest struct {
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
}

// automationResponse is the body of a successful POST /api/automation-suggest.
type automationResponse struct {
	Trigger    string             `json:"trigger"`
	Action     string             `json:"action"`
	Suggestion suggest.Suggestion `json:"suggestion"`
	Timestamp  time.Time          `json:"timestamp"`
}

// handleAutomationSuggest renders an automation scaffold for a
// trigger/action pair. Validation runs before the feature gate.
func (s *Server) handleAutomationSuggest(w http.ResponseWriter, r *http.Request) {
	var req automationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Trigger == "" || req.Action == "" {
		writeBadRequest(w, "Missing trigger or action")
		return
	}

	if !s.features.Automations {
		writeForbidden(w, "Automation suggestions are disabled")
		return
	}

	s.logger.Info("generating automation suggestion", "trigger", req.Trigger, "action", req.Action)

	suggestion, err := s.suggester.Suggest(req.Trigger, req.Action)
	if err != nil {
		s.logger.Error("building automation suggestion", "error", err)
		writeInternalError(w, "failed to generate suggestion")
		return
	}

	writeJSON(w, http.StatusOK, automationResponse{
		Trigger:    req.Trigger,
		Action:     req.Action,
		Suggestion: suggestion,
		Timestamp:  time.Now().UTC(),
	})
}
