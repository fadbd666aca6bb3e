// Package announce publishes watch events to MQTT with an abstraction
// for testing. Ring and acknowledge pulses become broker events so an
// external annunciator (buzzer, home automation) can sound the alarm;
// the display itself stays out of scope.
package announce

import (
	"encoding/json"
	"time"

	"quartzwatch/internal/watch"
)

// TopicEvents carries watch events (ring, acknowledge, arm, disarm).
const TopicEvents = "home/quartzwatch/events"

// TopicSystem carries daemon lifecycle events.
const TopicSystem = "home/quartzwatch/system"

// Kinds of watch events.
const (
	KindRing     = "RING"
	KindAck      = "ACK"
	KindArmed    = "ARMED"
	KindDisarmed = "DISARMED"
)

// Event is a watch occurrence worth telling the outside world about.
type Event struct {
	Timestamp time.Time
	Kind      string
	Time      watch.TimeOfDay
	Alarm     watch.AlarmSetting
}

// SystemEvent is a daemon lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP" or "SHUTDOWN"
	Reason    string // signal name, shutdown only
	BootID    string // random id identifying this daemon run
	Retained  bool
}

// Publisher publishes events to the broker.
type Publisher interface {
	// Publish sends a watch event. Failures are returned, never fatal:
	// the watch keeps running without its annunciator.
	Publish(Event) error

	// PublishSystem sends a lifecycle event.
	PublishSystem(SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// Payload is the wire shape of a watch event.
type Payload struct {
	Watch EventPayload `json:"watch"`
}

// EventPayload contains the event details.
type EventPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Time      string `json:"time"`
	Alarm     string `json:"alarm"`
	Armed     bool   `json:"armed"`
}

// FormatPayload creates the JSON payload for a watch event.
func FormatPayload(event Event) ([]byte, error) {
	return json.Marshal(Payload{
		Watch: EventPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Kind,
			Time:      event.Time.String(),
			Alarm:     event.Alarm.String(),
			Armed:     event.Alarm.Armed,
		},
	})
}

// SystemPayload is the wire shape of a lifecycle event.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	BootID    string `json:"boot_id"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	return json.Marshal(SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			BootID:    event.BootID,
		},
	})
}
