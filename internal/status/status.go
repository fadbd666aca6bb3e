// Package status tracks the last committed watch outputs and daemon
// counters for HTTP consumers. The run loop owns the watch; the tracker
// is the one piece shared with the HTTP handlers, so it carries the
// lock the core deliberately does not have.
package status

import (
	"sync"
	"time"

	"quartzwatch/internal/watch"
)

// Tracker holds the latest snapshot of the running watch.
type Tracker struct {
	mu      sync.RWMutex
	out     watch.Outputs
	steps   uint64
	rings   uint64
	started time.Time
	bootID  string
	mqttUp  bool
}

// NewTracker creates a tracker for a daemon run.
func NewTracker(started time.Time, bootID string) *Tracker {
	return &Tracker{started: started, bootID: bootID}
}

// Update records the outputs committed at the last step and the running
// step count.
func (t *Tracker) Update(out watch.Outputs, steps uint64) {
	t.mu.Lock()
	t.out = out
	t.steps = steps
	t.mu.Unlock()
}

// RecordRing counts an alarm ring.
func (t *Tracker) RecordRing() {
	t.mu.Lock()
	t.rings++
	t.mu.Unlock()
}

// SetMQTTConnected records the broker connection state.
func (t *Tracker) SetMQTTConnected(up bool) {
	t.mu.Lock()
	t.mqttUp = up
	t.mu.Unlock()
}

// Snapshot is the JSON shape served on /status.
type Snapshot struct {
	Time          string `json:"time"`
	State         string `json:"state"`
	StateCode     uint8  `json:"state_code"`
	EditFocus     string `json:"edit_focus"`
	EditActive    bool   `json:"edit_active"`
	Alarm         string `json:"alarm"`
	Armed         bool   `json:"armed"`
	Ringing       bool   `json:"ringing"`
	Steps         uint64 `json:"steps"`
	Rings         uint64 `json:"rings"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	BootID        string `json:"boot_id"`
	MQTTConnected bool   `json:"mqtt_connected"`
}

// Snapshot returns the current state for serving.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Time:          t.out.Time.String(),
		State:         t.out.State.String(),
		StateCode:     t.out.StateCode,
		EditFocus:     t.out.Focus.String(),
		EditActive:    t.out.EditActive,
		Alarm:         t.out.Alarm.String(),
		Armed:         t.out.Alarm.Armed,
		Ringing:       t.out.Ringing,
		Steps:         t.steps,
		Rings:         t.rings,
		UptimeSeconds: int64(time.Since(t.started).Seconds()),
		BootID:        t.bootID,
		MQTTConnected: t.mqttUp,
	}
}
