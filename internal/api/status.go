package api

import (
	"net/http"
	"time"
)

// statusFeatures reports the feature flags in GET /api/status.
type statusFeatures struct {
	VoiceControl     bool `json:"voice_control"`
	Automations      bool `json:"automations"`
	ImageRecognition bool `json:"image_recognition"`
}

// statusResponse is the body of GET /api/status.
type statusResponse struct {
	Status       string         `json:"status"`
	Version      string         `json:"version"`
	Features     statusFeatures `json:"features"`
	DevicesCount int            `json:"devices_count"`
	Timestamp    time.Time      `json:"timestamp"`
}

// handleStatus reports bridge liveness, feature flags, and the device
// count from the most recent hub fetch. It never calls the hub itself.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "running",
		Version: s.version,
		Features: statusFeatures{
			VoiceControl:     s.features.Voice,
			Automations:      s.features.Automations,
			ImageRecognition: s.features.ImageRecognition,
		},
		DevicesCount: int(s.deviceCount.Load()),
		Timestamp:    time.Now().UTC(),
	})
}
