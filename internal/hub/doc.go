// Package hub provides the REST client for the smart-home hub.
//
// This package manages:
//   - Device state fetches via GET {hub}/api/states
//   - Service invocations via POST {hub}/api/services/{domain}/{service}
//   - Bearer-token authentication on every request
//   - Liveness checking against GET {hub}/api/
//
// Data-path operations soft-fail: a failed states fetch returns an empty
// Snapshot and a failed service call returns false. Both are logged.
// Callers never see transport errors on these paths, which keeps a flaky
// hub from aborting a multi-device command fan-out.
//
// # Usage
//
//	client := hub.New(cfg.Hub, logger)
//	snap := client.FetchStates(ctx)
//	for _, id := range snap.MatchPrefix("light.") {
//	    client.CallService(ctx, "light", "turn_on", id, nil)
//	}
package hub
