package api

import (
	"encoding/json"
	"net/http"
)

// controlRequest is the body of POST /api/control.
type controlRequest struct {
	Command string `json:"command"`
}

// handleControl executes a natural-language command against the hub.
//
// The flow is fetch, classify, dispatch: a fresh device snapshot is taken
// per command so the fan-out never acts on stale entities. A command that
// classifies to nothing, or matches no devices, still succeeds with an
// empty results list.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Command == "" {
		writeBadRequest(w, "No command provided")
		return
	}

	s.logger.Info("processing command", "command", req.Command)

	snap := s.fetchSnapshot(r.Context())
	actions := s.classifier.Classify(req.Command)
	result := s.dispatcher.Execute(r.Context(), req.Command, actions, snap)

	writeJSON(w, http.StatusOK, result)
}
