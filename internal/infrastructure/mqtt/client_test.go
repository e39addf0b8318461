package mqtt

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

// newDisconnectedClient returns a client that has never connected. Input
// validation and connection-state checks run before any broker traffic, so
// these paths are testable without a broker. End-to-end pub/sub coverage
// lives in integration_test.go behind the integration build tag.
func newDisconnectedClient() *Client {
	return &Client{
		subscriptions: make(map[string]subscription),
	}
}

func TestPublish_Validation(t *testing.T) {
	client := newDisconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 1, ErrInvalidTopic},
		{"invalid qos", "comfort/feedback/s1/z1", []byte("x"), 3, ErrInvalidQoS},
		{"oversized payload", "comfort/feedback/s1/z1", bytes.Repeat([]byte("a"), maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "comfort/feedback/s1/z1", []byte("x"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscribe_Validation(t *testing.T) {
	client := newDisconnectedClient()
	handler := func(topic string, payload []byte) error { return nil }

	if err := client.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe() empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := client.Subscribe("comfort/#", 3, handler); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("Subscribe() qos 3 error = %v, want ErrInvalidQoS", err)
	}
	if err := client.Subscribe("comfort/#", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("Subscribe() nil handler error = %v, want ErrSubscribeFailed", err)
	}
	if err := client.Subscribe("comfort/#", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Subscribe() disconnected error = %v, want ErrNotConnected", err)
	}

	// Failed subscriptions must not be tracked.
	if client.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", client.SubscriptionCount())
	}
}

func TestUnsubscribe_Validation(t *testing.T) {
	client := newDisconnectedClient()

	if err := client.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Unsubscribe() empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := client.Unsubscribe("comfort/#"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Unsubscribe() disconnected error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheck_Disconnected(t *testing.T) {
	client := newDisconnectedClient()

	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() cancelled ctx error = %v, want context.Canceled", err)
	}
}

func TestSubscriptionTracking(t *testing.T) {
	client := newDisconnectedClient()

	if client.HasSubscription("comfort/feedback/+/+") {
		t.Error("HasSubscription() = true on fresh client")
	}
	if client.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", client.SubscriptionCount())
	}
}

func TestTopics(t *testing.T) {
	tests := []struct {
		name     string
		build    func() string
		expected string
	}{
		{
			name:     "feedback",
			build:    func() string { return Topics{}.Feedback("store-central-rama9", "zone-a") },
			expected: "comfort/feedback/store-central-rama9/zone-a",
		},
		{
			name:     "slot completed",
			build:    func() string { return Topics{}.SlotCompleted("store-central-rama9", "zone-a") },
			expected: "comfort/slot/store-central-rama9/zone-a",
		},
		{
			name:     "zone state",
			build:    func() string { return Topics{}.ZoneState("store-central-rama9", "zone-a") },
			expected: "comfort/state/store-central-rama9/zone-a",
		},
		{
			name:     "ahu command",
			build:    func() string { return Topics{}.AHUCommand("ahu-03") },
			expected: "comfort/ahu/ahu-03/command",
		},
		{
			name:     "ahu status",
			build:    func() string { return Topics{}.AHUStatus("ahu-03") },
			expected: "comfort/ahu/ahu-03/status",
		},
		{
			name:     "system status",
			build:    func() string { return Topics{}.SystemStatus() },
			expected: "comfort/system/status",
		},
		{
			name:     "all feedback",
			build:    func() string { return Topics{}.AllFeedback() },
			expected: "comfort/feedback/+/+",
		},
		{
			name:     "store feedback",
			build:    func() string { return Topics{}.StoreFeedback("store-central-rama9") },
			expected: "comfort/feedback/store-central-rama9/+",
		},
		{
			name:     "all slot completions",
			build:    func() string { return Topics{}.AllSlotCompletions() },
			expected: "comfort/slot/+/+",
		},
		{
			name:     "all ahu status",
			build:    func() string { return Topics{}.AllAHUStatus() },
			expected: "comfort/ahu/+/status",
		},
		{
			name:     "all topics",
			build:    func() string { return Topics{}.AllTopics() },
			expected: "comfort/#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(); got != tt.expected {
				t.Errorf("topic = %q, want %q", got, tt.expected)
			}
		})
	}
}
