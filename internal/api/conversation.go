package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// conversationRequest is the body of POST /api/conversation.
type conversationRequest struct {
	Message string `json:"message"`
}

// conversationResponse is the body of a successful POST /api/conversation.
type conversationResponse struct {
	Message       string    `json:"message"`
	Response      string    `json:"response"`
	HistoryLength int       `json:"history_length"`
	Timestamp     time.Time `json:"timestamp"`
}

// handleConversation runs one conversational exchange.
//
// The voice feature flag gates this endpoint. Validation runs before the
// gate, so an empty message is 400 even with voice disabled.
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	var req conversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeBadRequest(w, "No message provided")
		return
	}

	if !s.features.Voice {
		writeForbidden(w, "Voice control is disabled")
		return
	}

	reply, length := s.conversation.Exchange(r.Context(), req.Message)

	writeJSON(w, http.StatusOK, conversationResponse{
		Message:       req.Message,
		Response:      reply,
		HistoryLength: length,
		Timestamp:     time.Now().UTC(),
	})
}
