// Package mqtt provides MQTT client connectivity for Comfort Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Comfort Core uses MQTT as the outbound relay connecting the feedback
// service to the building-management system. Accepted feedback and slot
// completion events are published per zone; air handling units and BMS
// services subscribe through the broker rather than polling the service.
//
//	Comfort Core → MQTT Broker → BMS / AHU controllers
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to every AHU's status reports
//	err = client.Subscribe(mqtt.Topics{}.AllAHUStatus(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish accepted feedback
//	topic := mqtt.Topics{}.Feedback("store-central-rama9", "zone-a")
//	client.Publish(topic, []byte(`{"feedback":"too_hot"}`), 1, false)
package mqtt
