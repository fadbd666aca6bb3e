package watch_test

import (
	"testing"

	"quartzwatch/internal/watch"
	"quartzwatch/internal/watchtest"
)

// slow has a timekeeping period far longer than any menu navigation, so
// scenario tests see no second rollover while pressing buttons.
var slow = watch.Divisors{Timekeeping: 1000, Sample: 100, Scan: 1}

// fast advances the time on every step.
var fast = watch.Divisors{Timekeeping: 1, Sample: 1, Scan: 1}

func newWatch(t *testing.T, d watch.Divisors) *watch.Watch {
	t.Helper()
	w, err := watch.New(d)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestNew_rejectsZeroDivisors(t *testing.T) {
	for _, d := range []watch.Divisors{
		{Timekeeping: 0, Sample: 1, Scan: 1},
		{Timekeeping: 1, Sample: 0, Scan: 1},
		{Timekeeping: 1, Sample: 1, Scan: 0},
	} {
		if _, err := watch.New(d); err == nil {
			t.Errorf("New(%+v): expected error", d)
		}
	}
}

func TestNew_zeroState(t *testing.T) {
	w := newWatch(t, slow)
	out := w.Snapshot()
	if out.Time != (watch.TimeOfDay{}) || out.Alarm != (watch.AlarmSetting{}) {
		t.Fatalf("fresh watch not zeroed: %+v", out)
	}
	if out.State != watch.StateIdle || out.Ringing || out.EditActive {
		t.Fatalf("fresh watch not idle: %+v", out)
	}
	if w.Divisors() != slow {
		t.Fatalf("Divisors() = %+v, want %+v", w.Divisors(), slow)
	}
}

// The menu walkthrough from the specification of the controller: set
// hours to 5, minutes to 1, then jump to the alarm branch with mode,
// skipping SetTimeSeconds entirely.
func TestMenuScenario(t *testing.T) {
	w := newWatch(t, slow)

	out := watchtest.Mode(w)
	if out.State != watch.StateSetTimeHours {
		t.Fatalf("after mode: %s, want SetTimeHours", out.State)
	}
	if !out.EditActive || out.Focus != watch.FieldHours {
		t.Fatalf("edit highlight wrong: focus=%s active=%v", out.Focus, out.EditActive)
	}

	for i := 0; i < 5; i++ {
		out = watchtest.Increment(w)
	}
	if out.Time.Hours != 5 {
		t.Fatalf("hours = %d after five increments, want 5", out.Time.Hours)
	}

	out = watchtest.Select(w)
	if out.State != watch.StateSetTimeMinutes || out.Focus != watch.FieldMinutes {
		t.Fatalf("after select: %s focus=%s", out.State, out.Focus)
	}

	out = watchtest.Increment(w)
	if out.Time.Minutes != 1 {
		t.Fatalf("minutes = %d, want 1", out.Time.Minutes)
	}

	out = watchtest.Mode(w)
	if out.State != watch.StateSetAlarmHours {
		t.Fatalf("after mode: %s, want SetAlarmHours (seconds skipped)", out.State)
	}

	want := watch.TimeOfDay{Hours: 5, Minutes: 1, Seconds: 0}
	if out.Time != want {
		t.Fatalf("time = %v, want %v", out.Time, want)
	}
}

func TestSelectWrapsWithinEditGroups(t *testing.T) {
	w := newWatch(t, slow)

	watchtest.Mode(w) // SetTimeHours
	watchtest.Select(w)
	out := watchtest.Select(w)
	if out.State != watch.StateSetTimeSeconds {
		t.Fatalf("got %s, want SetTimeSeconds", out.State)
	}
	out = watchtest.Select(w)
	if out.State != watch.StateSetTimeHours {
		t.Fatalf("select in SetTimeSeconds: %s, want wrap to SetTimeHours", out.State)
	}

	out = watchtest.Mode(w) // SetAlarmHours
	out = watchtest.Select(w)
	if out.State != watch.StateSetAlarmMinutes {
		t.Fatalf("got %s, want SetAlarmMinutes", out.State)
	}
	out = watchtest.Select(w)
	if out.State != watch.StateSetAlarmHours {
		t.Fatalf("select in SetAlarmMinutes: %s, want wrap to SetAlarmHours", out.State)
	}
}

func TestAlarmRingsExactlyOnce(t *testing.T) {
	w := newWatch(t, watch.Divisors{Timekeeping: 10, Sample: 1, Scan: 1})

	watchtest.SetAlarm(t, w, 0, 1, true)

	// ten simulated minutes; the ring freezes the clock so only the
	// first minute rollover can match
	count, at := watchtest.CountMatches(w, 6000)
	if count != 1 {
		t.Fatalf("%d matched pulses, want exactly 1", count)
	}
	if at.Time != (watch.TimeOfDay{Minutes: 1}) {
		t.Fatalf("match at %v, want coincident with 00:01:00", at.Time)
	}
	if !at.Ringing || at.State != watch.StateAlarmRinging {
		t.Fatalf("watch not ringing at the match step: %+v", at)
	}
	if !at.TimekeepingPulse {
		t.Fatal("match must coincide with the timekeeping pulse")
	}
}

func TestDisarmedAlarmNeverRings(t *testing.T) {
	w := newWatch(t, watch.Divisors{Timekeeping: 10, Sample: 1, Scan: 1})

	watchtest.SetAlarm(t, w, 0, 1, false)

	count, _ := watchtest.CountMatches(w, 6000)
	if count != 0 {
		t.Fatalf("%d matched pulses while disarmed, want 0", count)
	}
}

func TestRingingFreezesClockUntilAck(t *testing.T) {
	w := newWatch(t, fast)

	watchtest.SetAlarm(t, w, 0, 1, true)
	out := watchtest.Idle(w, 3600)
	if out.State != watch.StateAlarmRinging {
		t.Fatalf("state = %s after an hour of steps, want AlarmRinging", out.State)
	}
	frozen := out.Time
	if frozen.Minutes != 1 || frozen.Seconds != 0 {
		t.Fatalf("clock frozen at %v, want 00:01:00", frozen)
	}

	out = watchtest.Idle(w, 100)
	if out.Time != frozen {
		t.Fatalf("time advanced to %v while ringing", out.Time)
	}

	// mode acknowledges: one-step pulse, then the clock resumes
	out = watchtest.Mode(w)
	if out.State != watch.StateIdle || !out.Acknowledged || out.Ringing {
		t.Fatalf("ack step wrong: %+v", out)
	}
	out = watchtest.Idle(w, 1)
	if out.Acknowledged {
		t.Fatal("acknowledged must pulse for exactly one step")
	}
	out = watchtest.Idle(w, 9)
	if out.Time.Seconds != 10 {
		t.Fatalf("clock did not resume after ack: %v", out.Time)
	}
}

func TestActivateAlarmKeepsCounting(t *testing.T) {
	w := newWatch(t, fast)

	// one idle step advances the clock before the edit states freeze it
	watchtest.Mode(w) // Idle -> SetTimeHours, counting during the step
	watchtest.Mode(w) // -> SetAlarmHours, frozen
	out := watchtest.Mode(w)
	if out.State != watch.StateActivateAlarm {
		t.Fatalf("got %s, want ActivateAlarm", out.State)
	}
	if out.Time.Seconds != 1 {
		t.Fatalf("seconds = %d entering ActivateAlarm, want 1", out.Time.Seconds)
	}

	out = watchtest.Idle(w, 5)
	if out.Time.Seconds != 6 {
		t.Fatalf("seconds = %d, want 6: the clock keeps running while toggling the alarm", out.Time.Seconds)
	}
}

func TestEditStatesFreezeClock(t *testing.T) {
	w := newWatch(t, fast)

	out := watchtest.Mode(w) // counting during this step, then SetTimeHours
	secs := out.Time.Seconds
	out = watchtest.Idle(w, 50)
	if out.Time.Seconds != secs {
		t.Fatalf("time advanced in SetTimeHours: %v", out.Time)
	}
}

func TestResetFromEveryState(t *testing.T) {
	sequences := map[watch.State][]watch.Buttons{
		watch.StateIdle:           {},
		watch.StateSetTimeHours:   {{Mode: true}},
		watch.StateSetTimeMinutes: {{Mode: true}, {Select: true}},
		watch.StateSetTimeSeconds: {{Mode: true}, {Select: true}, {Select: true}},
		watch.StateSetAlarmHours:  {{Mode: true}, {Mode: true}},
		watch.StateSetAlarmMinutes: {
			{Mode: true}, {Mode: true}, {Select: true},
		},
		watch.StateActivateAlarm: {
			{Mode: true}, {Mode: true}, {Mode: true},
		},
	}

	for target, seq := range sequences {
		w := newWatch(t, fast)
		// dirty the registers first
		watchtest.SetAlarm(t, w, 13, 37, true)
		watchtest.Idle(w, 42)

		out := w.Snapshot()
		for _, b := range seq {
			out = w.Step(b)
		}
		if out.State != target {
			t.Fatalf("navigation reached %s, want %s", out.State, target)
		}

		out = watchtest.ResetPulse(w)
		if out.State != watch.StateIdle {
			t.Errorf("reset from %s: state = %s", target, out.State)
		}
		if out.Time != (watch.TimeOfDay{}) {
			t.Errorf("reset from %s: time = %v, want 00:00:00", target, out.Time)
		}
		if out.Alarm != (watch.AlarmSetting{}) {
			t.Errorf("reset from %s: alarm = %v, want zero disarmed", target, out.Alarm)
		}
		if out.TimekeepingPulse || out.SamplePulse || out.ScanPulse || out.Matched {
			t.Errorf("reset from %s: pulse outputs not cleared: %+v", target, out)
		}
	}
}

func TestResetAcknowledgesRinging(t *testing.T) {
	w := newWatch(t, fast)
	watchtest.SetAlarm(t, w, 0, 1, true)
	out := watchtest.Idle(w, 3600)
	if out.State != watch.StateAlarmRinging {
		t.Fatalf("state = %s, want AlarmRinging", out.State)
	}

	out = watchtest.ResetPulse(w)
	if out.State != watch.StateIdle || !out.Acknowledged {
		t.Fatalf("reset from ringing: %+v, want idle with ack pulse", out)
	}
	if out.Time != (watch.TimeOfDay{}) || out.Alarm != (watch.AlarmSetting{}) {
		t.Fatalf("reset from ringing did not zero registers: %+v", out)
	}
}

func TestSetTimeHelperRoundTrip(t *testing.T) {
	w := newWatch(t, slow)
	want := watch.TimeOfDay{Hours: 23, Minutes: 59, Seconds: 58}
	watchtest.SetTime(t, w, want)
	if got := w.Snapshot().Time; got != want {
		t.Fatalf("time = %v, want %v", got, want)
	}
	if w.Snapshot().State != watch.StateIdle {
		t.Fatalf("not back in idle: %s", w.Snapshot().State)
	}
}

func TestArmedFlagSurvivesMenu(t *testing.T) {
	w := newWatch(t, slow)
	watchtest.SetAlarm(t, w, 6, 30, true)
	out := w.Snapshot()
	if !out.Alarm.Armed || out.Alarm.Hours != 6 || out.Alarm.Minutes != 30 {
		t.Fatalf("alarm = %v, want 06:30 armed", out.Alarm)
	}

	// walking through the menu without touching increment leaves it armed
	watchtest.SetTime(t, w, watch.TimeOfDay{Hours: 1})
	if out = w.Snapshot(); !out.Alarm.Armed {
		t.Fatal("alarm disarmed by unrelated menu navigation")
	}

	watchtest.SetAlarm(t, w, 6, 30, false)
	if out = w.Snapshot(); out.Alarm.Armed {
		t.Fatal("alarm still armed after disarm")
	}
}
