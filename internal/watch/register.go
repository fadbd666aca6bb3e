package watch

import (
	"fmt"

	"github.com/pkg/errors"
)

// A Field identifies the register slot a user edit applies to.
type Field int

// Register fields.
const (
	FieldNone Field = iota
	FieldHours
	FieldMinutes
	FieldSeconds
)

func (f Field) String() string {
	switch f {
	case FieldNone:
		return "none"
	case FieldHours:
		return "hours"
	case FieldMinutes:
		return "minutes"
	case FieldSeconds:
		return "seconds"
	}
	return "invalid"
}

// TimeOfDay is a wall-clock value. All fields are always within range:
// overflow is resolved by cascading carry at the moment of increment and
// is never left in an invalid intermediate state.
type TimeOfDay struct {
	Hours   int `json:"hours"`   // 0..23
	Minutes int `json:"minutes"` // 0..59
	Seconds int `json:"seconds"` // 0..59
}

// Next returns t advanced by one second with the carry chain applied
// (seconds into minutes into hours, wrapping to zero).
func (t TimeOfDay) Next() TimeOfDay {
	t.Seconds++
	if t.Seconds == 60 {
		t.Seconds = 0
		t.Minutes++
		if t.Minutes == 60 {
			t.Minutes = 0
			t.Hours++
			if t.Hours == 24 {
				t.Hours = 0
			}
		}
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// AlarmSetting is the alarm register value. The alarm is minute
// granular: there is no seconds field.
type AlarmSetting struct {
	Hours   int  `json:"hours"`   // 0..23
	Minutes int  `json:"minutes"` // 0..59
	Armed   bool `json:"armed"`
}

func (a AlarmSetting) String() string {
	s := "off"
	if a.Armed {
		s = "armed"
	}
	return fmt.Sprintf("%02d:%02d (%s)", a.Hours, a.Minutes, s)
}

// fieldLimit returns the exclusive upper bound for a register field.
func fieldLimit(f Field) int {
	if f == FieldHours {
		return 24
	}
	return 60
}

// A TimeRegister keeps the current time of day. It is a latched
// register: Advance, SetField and Reset stage a pending value computed
// from the committed one, and commit makes it visible at the step
// barrier. Advance and SetField never both apply within one step; the
// controller's enable lines are mutually exclusive by construction.
type TimeRegister struct {
	cur  TimeOfDay
	next TimeOfDay
}

// Value returns the committed register value.
func (r *TimeRegister) Value() TimeOfDay { return r.cur }

// Pending returns the value that will commit at the end of the current
// step. The alarm comparator reads this bus so that a match coincides
// with the advance entering the alarm minute.
func (r *TimeRegister) Pending() TimeOfDay { return r.next }

// begin opens a new step with the register holding its value.
func (r *TimeRegister) begin() { r.next = r.cur }

// commit latches the pending value at the step barrier.
func (r *TimeRegister) commit() { r.cur = r.next }

// Advance stages the cascading one-second increment, computed from the
// previously committed value.
func (r *TimeRegister) Advance() { r.next = r.cur.Next() }

// SetField stages a direct overwrite of a single field. The value is
// bounds-checked; staging the current value is a no-op.
func (r *TimeRegister) SetField(f Field, v int) error {
	if f == FieldNone {
		return errors.New("no field selected")
	}
	if v < 0 || v >= fieldLimit(f) {
		return errors.Errorf("value %d out of range for %s", v, f)
	}
	switch f {
	case FieldHours:
		r.next.Hours = v
	case FieldMinutes:
		r.next.Minutes = v
	case FieldSeconds:
		r.next.Seconds = v
	}
	return nil
}

// Bump stages a wrap-around increment of a single field, leaving the
// other fields untouched. No carry propagates on a user edit.
func (r *TimeRegister) Bump(f Field) {
	switch f {
	case FieldHours:
		r.next.Hours = (r.cur.Hours + 1) % 24
	case FieldMinutes:
		r.next.Minutes = (r.cur.Minutes + 1) % 60
	case FieldSeconds:
		r.next.Seconds = (r.cur.Seconds + 1) % 60
	}
}

// Reset stages the zero value.
func (r *TimeRegister) Reset() { r.next = TimeOfDay{} }

// An AlarmRegister keeps the alarm setting. Same latch discipline as
// TimeRegister but it never auto-advances.
type AlarmRegister struct {
	cur  AlarmSetting
	next AlarmSetting
}

// Value returns the committed register value.
func (r *AlarmRegister) Value() AlarmSetting { return r.cur }

func (r *AlarmRegister) begin()  { r.next = r.cur }
func (r *AlarmRegister) commit() { r.cur = r.next }

// SetField stages a direct overwrite of the hours or minutes field. The
// alarm has no seconds field.
func (r *AlarmRegister) SetField(f Field, v int) error {
	switch f {
	case FieldHours, FieldMinutes:
	default:
		return errors.Errorf("alarm register has no %s field", f)
	}
	if v < 0 || v >= fieldLimit(f) {
		return errors.Errorf("value %d out of range for %s", v, f)
	}
	if f == FieldHours {
		r.next.Hours = v
	} else {
		r.next.Minutes = v
	}
	return nil
}

// Bump stages a wrap-around increment of the hours or minutes field.
func (r *AlarmRegister) Bump(f Field) {
	switch f {
	case FieldHours:
		r.next.Hours = (r.cur.Hours + 1) % 24
	case FieldMinutes:
		r.next.Minutes = (r.cur.Minutes + 1) % 60
	}
}

// ToggleArmed stages a flip of the armed flag.
func (r *AlarmRegister) ToggleArmed() { r.next.Armed = !r.cur.Armed }

// Reset stages the zero, disarmed value.
func (r *AlarmRegister) Reset() { r.next = AlarmSetting{} }
