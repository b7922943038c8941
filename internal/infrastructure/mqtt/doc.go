// Package mqtt provides optional MQTT event publishing for Hearth Bridge.
//
// This package manages:
//   - Connection to an MQTT broker with auto-reconnect
//   - Publishing command results and device snapshot summaries
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// The bridge is publish-only: other home-automation services subscribe to
// hearth/event/# to observe what the bridge did, but nothing commands the
// bridge over MQTT.
//
// # Security Considerations
//
//   - TLS is recommended for non-local brokers (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.CommandResult()
//	client.Publish(topic, payload, byte(cfg.MQTT.QoS), false)
package mqtt
