package api

import (
	"net/http"
	"time"
)

// deviceView is the wire shape of one device in GET /api/devices.
type deviceView struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// devicesResponse is the body of GET /api/devices.
type devicesResponse struct {
	Devices   map[string]deviceView `json:"devices"`
	Count     int                   `json:"count"`
	Timestamp time.Time             `json:"timestamp"`
}

// handleDevices returns the hub's full device inventory.
//
// Each call fetches fresh state from the hub. A hub failure surfaces as
// an empty inventory with count zero, not an error status.
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	snap := s.fetchSnapshot(r.Context())

	devices := make(map[string]deviceView, snap.Len())
	for _, d := range snap.Devices() {
		attrs := d.Attributes
		if attrs == nil {
			attrs = map[string]any{}
		}
		devices[d.EntityID] = deviceView{State: d.State, Attributes: attrs}
	}

	writeJSON(w, http.StatusOK, devicesResponse{
		Devices:   devices,
		Count:     snap.Len(),
		Timestamp: time.Now().UTC(),
	})
}
