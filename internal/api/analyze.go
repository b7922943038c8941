package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// analyzeRequest is the body of POST /api/analyze.
type analyzeRequest struct {
	EntityID string `json:"entity_id"`
	Prompt   string `json:"prompt"`
}

// analyzeResponse is the body of a successful POST /api/analyze.
type analyzeResponse struct {
	EntityID  string    `json:"entity_id"`
	Prompt    string    `json:"prompt"`
	Analysis  string    `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
}

// handleAnalyze accepts an image analysis request for a camera entity.
//
// Validation runs before the feature gate, so a malformed request is 400
// even when image recognition is disabled. No vision backend is wired up
// yet; the endpoint acknowledges the request with a placeholder analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.EntityID == "" || req.Prompt == "" {
		writeBadRequest(w, "Missing entity_id or prompt")
		return
	}

	if !s.features.ImageRecognition {
		writeForbidden(w, "Image recognition is disabled")
		return
	}

	s.logger.Info("analyzing image", "entity_id", req.EntityID, "prompt", req.Prompt)

	writeJSON(w, http.StatusOK, analyzeResponse{
		EntityID:  req.EntityID,
		Prompt:    req.Prompt,
		Analysis:  "Image analysis is not yet connected to a vision backend",
		Timestamp: time.Now().UTC(),
	})
}
