// Package influxdb provides optional telemetry recording for Hearth Bridge.
//
// This package manages:
//   - Connection to InfluxDB v2 with token authentication
//   - Non-blocking batched writes of command dispatch metrics
//   - Device snapshot size tracking
//   - Connection health monitoring
//
// Measurements written:
//   - command_result: duration_ms, total, failed per dispatch
//   - device_snapshot: entity count per hub states fetch
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteCommandMetric("cmd-1a2b3c4d", 184.2, 3, 0)
package influxdb
