package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCommandMetric records the outcome of one command dispatch.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - commandID: Unique identifier for the dispatch (e.g., "cmd-1a2b3c4d")
//   - durationMs: Total dispatch duration in milliseconds
//   - total: Number of (action, device) pairs attempted
//   - failed: Number of pairs whose hub service call failed
//
// Example:
//
//	client.WriteCommandMetric("cmd-1a2b3c4d", 184.2, 3, 0)
func (c *Client) WriteCommandMetric(commandID string, durationMs float64, total, failed int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"command_result",
		map[string]string{
			"command_id": commandID,
		},
		map[string]interface{}{
			"duration_ms": durationMs,
			"total":       total,
			"failed":      failed,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDeviceSnapshot records the size of a hub device snapshot.
//
// Written after each states fetch; tracks hub reachability and inventory
// drift over time.
//
// Parameters:
//   - count: Number of entities in the snapshot (0 on a soft-failed fetch)
func (c *Client) WriteDeviceSnapshot(count int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_snapshot",
		map[string]string{},
		map[string]interface{}{
			"count": count,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
