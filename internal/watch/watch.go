package watch

import "github.com/pkg/errors"

// Divisors configures the tick source: steps per pulse for each of the
// three outputs. All three must be >= 1. Timekeeping is the one-second
// pulse; sample and scan are the nominal 10 Hz and 1 kHz pulses for the
// button sampler and the display scanner.
type Divisors struct {
	Timekeeping uint
	Sample      uint
	Scan        uint
}

// Outputs is the committed output bus after a step.
type Outputs struct {
	Time  TimeOfDay
	Alarm AlarmSetting

	State      State
	StateCode  uint8
	Focus      Field
	EditActive bool

	// Ringing is the alarmActive level: up while in AlarmRinging.
	Ringing bool
	// Matched pulses on the step the comparator fires.
	Matched bool
	// Acknowledged pulses on the step the controller leaves AlarmRinging.
	Acknowledged bool

	TimekeepingPulse bool
	SamplePulse      bool
	ScanPulse        bool
}

// A Watch wires the tick source, the time and alarm registers, the mode
// controller and the alarm comparator behind a single step barrier.
//
// Step performs bounded, constant work and never blocks. The zero-value
// outputs of a freshly built or reset watch are 00:00:00, alarm
// disarmed, state Idle.
type Watch struct {
	timekeeping *PulseGen
	sample      *PulseGen
	scan        *PulseGen

	time  TimeRegister
	alarm AlarmRegister
	cmp   Comparator

	state State
	out   Outputs
}

// New builds a watch with the given tick divisors.
func New(d Divisors) (*Watch, error) {
	tk, err := NewPulseGen(d.Timekeeping)
	if err != nil {
		return nil, errors.Wrap(err, "timekeeping pulse")
	}
	sm, err := NewPulseGen(d.Sample)
	if err != nil {
		return nil, errors.Wrap(err, "sample pulse")
	}
	sc, err := NewPulseGen(d.Scan)
	if err != nil {
		return nil, errors.Wrap(err, "scan pulse")
	}
	w := &Watch{timekeeping: tk, sample: sm, scan: sc}
	w.Reset()
	return w, nil
}

// Step advances the simulation by one discrete step. Every component
// computes its next value from the previously committed state; the
// registers, the comparator and the controller state then commit
// together before the outputs become visible.
//
// Evaluation order within the step follows the combinational dependency
// chain: tick pulses, enable lines from the committed state, the
// register advance, the comparator (which reads the register's pending
// bus), the controller decision, then the commit barrier.
func (w *Watch) Step(in Buttons) Outputs {
	if in.Reset {
		// reset takes priority over every other transition and
		// completes within this step, with all pulse outputs cleared.
		ack := w.state == StateAlarmRinging
		w.Reset()
		w.out.Acknowledged = ack
		return w.out
	}

	tick := w.timekeeping.step()
	sample := w.sample.step()
	scan := w.scan.step()

	ctl := controlsFor(w.state)

	w.time.begin()
	w.alarm.begin()

	if ctl.TimeCountEnabled && tick {
		w.time.Advance()
	}

	matched := w.cmp.step(w.time.Pending(), w.alarm.Value(), tick)

	d := decide(w.state, Buttons{Mode: in.Mode, Select: in.Select, Increment: in.Increment}, matched)

	// user edits apply only in states where the timekeeping advance is
	// disabled, so Advance and the edit never race within a step.
	if ctl.TimeEditEnabled && d.bumpTime != FieldNone {
		w.time.Bump(d.bumpTime)
	}
	if ctl.AlarmEditEnabled && d.bumpAlarm != FieldNone {
		w.alarm.Bump(d.bumpAlarm)
	}
	if d.toggleArmed {
		w.alarm.ToggleArmed()
	}

	// step barrier: commit everything at once
	w.time.commit()
	w.alarm.commit()
	w.state = d.next

	nctl := controlsFor(w.state)
	w.out = Outputs{
		Time:             w.time.Value(),
		Alarm:            w.alarm.Value(),
		State:            w.state,
		StateCode:        w.state.Code(),
		Focus:            nctl.Focus,
		EditActive:       nctl.TimeEditEnabled || nctl.AlarmEditEnabled,
		Ringing:          w.state == StateAlarmRinging,
		Matched:          matched,
		Acknowledged:     d.acknowledged,
		TimekeepingPulse: tick,
		SamplePulse:      sample,
		ScanPulse:        scan,
	}
	return w.out
}

// Reset synchronously forces state Idle, time 00:00:00, alarm 00:00
// disarmed and zeroed tick counters. It completes within one step and
// clears every single-step pulse output.
func (w *Watch) Reset() {
	w.timekeeping.Reset()
	w.sample.Reset()
	w.scan.Reset()
	w.time.Reset()
	w.time.commit()
	w.alarm.Reset()
	w.alarm.commit()
	w.cmp.Reset()
	w.state = StateIdle
	w.out = Outputs{
		State:     StateIdle,
		StateCode: StateIdle.Code(),
	}
}

// Snapshot returns the output bus committed at the last step.
func (w *Watch) Snapshot() Outputs { return w.out }

// Divisors returns the configured tick divisors.
func (w *Watch) Divisors() Divisors {
	return Divisors{
		Timekeeping: w.timekeeping.Divisor(),
		Sample:      w.sample.Divisor(),
		Scan:        w.scan.Divisor(),
	}
}
