// Package watchtest provides utility functions for testing the watch
// core: single-button step helpers and menu-driving helpers that load a
// time or alarm value through the controller the way a user would.
package watchtest

import (
	"testing"

	"quartzwatch/internal/watch"
)

// Mode steps w once with the mode pulse asserted.
func Mode(w *watch.Watch) watch.Outputs {
	return w.Step(watch.Buttons{Mode: true})
}

// Select steps w once with the select pulse asserted.
func Select(w *watch.Watch) watch.Outputs {
	return w.Step(watch.Buttons{Select: true})
}

// Increment steps w once with the increment pulse asserted.
func Increment(w *watch.Watch) watch.Outputs {
	return w.Step(watch.Buttons{Increment: true})
}

// ResetPulse steps w once with the reset request asserted.
func ResetPulse(w *watch.Watch) watch.Outputs {
	return w.Step(watch.Buttons{Reset: true})
}

// Idle steps w n times with no buttons and returns the last outputs.
func Idle(w *watch.Watch, n int) watch.Outputs {
	var out watch.Outputs
	for i := 0; i < n; i++ {
		out = w.Step(watch.Buttons{})
	}
	return out
}

// SetTime drives the menu from Idle to load the given time and returns
// to Idle. Navigation consumes a handful of steps, so callers that need
// exact seconds should build the watch with a timekeeping divisor larger
// than the number of steps spent navigating.
func SetTime(t *testing.T, w *watch.Watch, want watch.TimeOfDay) {
	t.Helper()

	out := w.Snapshot()
	if out.State != watch.StateIdle {
		t.Fatalf("SetTime: watch in %s, want Idle", out.State)
	}

	out = Mode(w)
	if out.State != watch.StateSetTimeHours {
		t.Fatalf("SetTime: got %s after mode, want SetTimeHours", out.State)
	}
	out = bumpUntil(t, w, func(o watch.Outputs) bool { return o.Time.Hours == want.Hours }, 24)

	out = Select(w)
	if out.State != watch.StateSetTimeMinutes {
		t.Fatalf("SetTime: got %s after select, want SetTimeMinutes", out.State)
	}
	out = bumpUntil(t, w, func(o watch.Outputs) bool { return o.Time.Minutes == want.Minutes }, 60)

	out = Select(w)
	if out.State != watch.StateSetTimeSeconds {
		t.Fatalf("SetTime: got %s after select, want SetTimeSeconds", out.State)
	}
	bumpUntil(t, w, func(o watch.Outputs) bool { return o.Time.Seconds == want.Seconds }, 60)

	leaveMenu(t, w)
}

// SetAlarm drives the menu from Idle to load the alarm registers and
// leave the armed flag in the requested position, then returns to Idle.
func SetAlarm(t *testing.T, w *watch.Watch, hours, minutes int, arm bool) {
	t.Helper()

	out := w.Snapshot()
	if out.State != watch.StateIdle {
		t.Fatalf("SetAlarm: watch in %s, want Idle", out.State)
	}

	Mode(w) // SetTimeHours
	out = Mode(w)
	if out.State != watch.StateSetAlarmHours {
		t.Fatalf("SetAlarm: got %s, want SetAlarmHours", out.State)
	}
	out = bumpUntil(t, w, func(o watch.Outputs) bool { return o.Alarm.Hours == hours }, 24)

	out = Select(w)
	if out.State != watch.StateSetAlarmMinutes {
		t.Fatalf("SetAlarm: got %s after select, want SetAlarmMinutes", out.State)
	}
	out = bumpUntil(t, w, func(o watch.Outputs) bool { return o.Alarm.Minutes == minutes }, 60)

	out = Mode(w)
	if out.State != watch.StateActivateAlarm {
		t.Fatalf("SetAlarm: got %s after mode, want ActivateAlarm", out.State)
	}
	if out.Alarm.Armed != arm {
		out = Increment(w)
		if out.Alarm.Armed != arm {
			t.Fatalf("SetAlarm: armed=%v after toggle, want %v", out.Alarm.Armed, arm)
		}
	}

	out = Mode(w)
	if out.State != watch.StateIdle {
		t.Fatalf("SetAlarm: got %s after mode, want Idle", out.State)
	}
}

// CountMatches steps w n times with no buttons and returns the number
// of matched pulses seen, together with the outputs at the last match.
func CountMatches(w *watch.Watch, n int) (int, watch.Outputs) {
	var (
		count int
		last  watch.Outputs
	)
	for i := 0; i < n; i++ {
		out := w.Step(watch.Buttons{})
		if out.Matched {
			count++
			last = out
		}
	}
	return count, last
}

func bumpUntil(t *testing.T, w *watch.Watch, done func(watch.Outputs) bool, limit int) watch.Outputs {
	t.Helper()
	out := w.Snapshot()
	for i := 0; !done(out); i++ {
		if i > limit {
			t.Fatalf("bumpUntil: field did not reach target in %d increments", limit)
		}
		out = Increment(w)
	}
	return out
}

// leaveMenu walks from any SetTime state back to Idle through the alarm
// branch without editing anything.
func leaveMenu(t *testing.T, w *watch.Watch) {
	t.Helper()
	out := Mode(w) // SetAlarmHours
	if out.State != watch.StateSetAlarmHours {
		t.Fatalf("leaveMenu: got %s, want SetAlarmHours", out.State)
	}
	out = Mode(w) // ActivateAlarm
	if out.State != watch.StateActivateAlarm {
		t.Fatalf("leaveMenu: got %s, want ActivateAlarm", out.State)
	}
	out = Mode(w) // Idle
	if out.State != watch.StateIdle {
		t.Fatalf("leaveMenu: got %s, want Idle", out.State)
	}
}
