// Package client is the embeddable Go client for the Hearth Bridge API.
//
// It wraps the bridge's six endpoints in typed methods. Failures are
// reported as data: every result struct carries an Error field that is
// non-empty on transport errors and bridge rejections alike, so calling
// code checks one place regardless of where the failure happened.
//
// # Usage
//
//	bridge := client.New("http://localhost:8124")
//
//	result := bridge.Control(ctx, "turn on the living room lights")
//	if result.Error != "" {
//	    log.Printf("command failed: %s", result.Error)
//	}
package client
