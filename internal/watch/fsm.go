package watch

// A State is one of the closed set of controller modes. Exactly one
// state is active at any step; the successor is a total function of
// (state, button pulses, comparator signal). Any value outside the set
// recovers to StateIdle on the next step.
type State int

// Controller states. The numeric values are the codes exposed on the
// 4-bit debug bus.
const (
	StateIdle State = iota
	StateSetTimeHours
	StateSetTimeMinutes
	StateSetTimeSeconds
	StateSetAlarmHours
	StateSetAlarmMinutes
	StateActivateAlarm
	StateAlarmRinging
)

// Code returns the 4-bit state identifier. Unknown states report the
// idle code, matching the self-healing default transition.
func (s State) Code() uint8 {
	if s < StateIdle || s > StateAlarmRinging {
		return uint8(StateIdle)
	}
	return uint8(s) & 0x0f
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSetTimeHours:
		return "SetTimeHours"
	case StateSetTimeMinutes:
		return "SetTimeMinutes"
	case StateSetTimeSeconds:
		return "SetTimeSeconds"
	case StateSetAlarmHours:
		return "SetAlarmHours"
	case StateSetAlarmMinutes:
		return "SetAlarmMinutes"
	case StateActivateAlarm:
		return "ActivateAlarm"
	case StateAlarmRinging:
		return "AlarmRinging"
	}
	return "Unknown"
}

// Buttons is the set of one-step button pulses sampled for a step.
type Buttons struct {
	Mode      bool
	Select    bool
	Increment bool
	Reset     bool
}

// Controls are the level outputs derived from the active state. They
// drive the register enable lines and the edit highlight.
type Controls struct {
	// TimeCountEnabled gates the timekeeping advance. It stays up in
	// ActivateAlarm so the clock keeps running while the user toggles
	// the alarm, and is down in every edit state and while ringing.
	TimeCountEnabled bool
	TimeEditEnabled  bool
	AlarmEditEnabled bool
	Focus            Field
}

// controlsFor maps a state to its enable lines. Unknown states take the
// idle lines.
func controlsFor(s State) Controls {
	switch s {
	case StateSetTimeHours:
		return Controls{TimeEditEnabled: true, Focus: FieldHours}
	case StateSetTimeMinutes:
		return Controls{TimeEditEnabled: true, Focus: FieldMinutes}
	case StateSetTimeSeconds:
		return Controls{TimeEditEnabled: true, Focus: FieldSeconds}
	case StateSetAlarmHours:
		return Controls{AlarmEditEnabled: true, Focus: FieldHours}
	case StateSetAlarmMinutes:
		return Controls{AlarmEditEnabled: true, Focus: FieldMinutes}
	case StateActivateAlarm:
		return Controls{TimeCountEnabled: true}
	case StateAlarmRinging:
		return Controls{}
	}
	return Controls{TimeCountEnabled: true}
}

// A decision is the controller's verdict for one step: the successor
// state plus the register edit that fires with it, if any.
type decision struct {
	next         State
	bumpTime     Field
	bumpAlarm    Field
	toggleArmed  bool
	resetAll     bool
	acknowledged bool
}

// decide computes the single transition firing for a step. Reset takes
// priority over every other pulse, then mode over select over
// increment. The comparator signal is consumed in Idle only.
func decide(s State, b Buttons, alarmMatched bool) decision {
	if b.Reset {
		return decision{
			next:         StateIdle,
			resetAll:     true,
			acknowledged: s == StateAlarmRinging,
		}
	}

	d := decision{next: s}
	switch s {
	case StateIdle:
		switch {
		case b.Mode:
			d.next = StateSetTimeHours
		case alarmMatched:
			d.next = StateAlarmRinging
		}
	case StateSetTimeHours:
		switch {
		case b.Mode:
			d.next = StateSetAlarmHours
		case b.Select:
			d.next = StateSetTimeMinutes
		case b.Increment:
			d.bumpTime = FieldHours
		}
	case StateSetTimeMinutes:
		switch {
		case b.Mode:
			d.next = StateSetAlarmHours
		case b.Select:
			d.next = StateSetTimeSeconds
		case b.Increment:
			d.bumpTime = FieldMinutes
		}
	case StateSetTimeSeconds:
		switch {
		case b.Mode:
			d.next = StateSetAlarmHours
		case b.Select:
			d.next = StateSetTimeHours
		case b.Increment:
			d.bumpTime = FieldSeconds
		}
	case StateSetAlarmHours:
		switch {
		case b.Mode:
			d.next = StateActivateAlarm
		case b.Select:
			d.next = StateSetAlarmMinutes
		case b.Increment:
			d.bumpAlarm = FieldHours
		}
	case StateSetAlarmMinutes:
		switch {
		case b.Mode:
			d.next = StateActivateAlarm
		case b.Select:
			d.next = StateSetAlarmHours
		case b.Increment:
			d.bumpAlarm = FieldMinutes
		}
	case StateActivateAlarm:
		switch {
		case b.Mode:
			d.next = StateIdle
		case b.Increment:
			d.toggleArmed = true
		}
	case StateAlarmRinging:
		if b.Mode {
			d.next = StateIdle
			d.acknowledged = true
		}
	default:
		// unreachable in normal operation: self-heal to idle
		d.next = StateIdle
	}
	return d
}
