package watch

// A Comparator raises the alarm matched pulse when the armed alarm
// equals the current time. Seconds are ignored: the alarm is minute
// granular. The match is edge qualified on the minute equality so that
// one arming rings at most once per entry into the alarm minute, even
// though equality holds for sixty timekeeping pulses.
type Comparator struct {
	wasEqual bool
	out      bool
}

// step evaluates the comparator for one simulation step. t is the time
// value committing this step, so the match pulse coincides with the
// advance that enters the alarm minute. The comparator only samples on
// the timekeeping pulse and its output is a single-step pulse.
func (c *Comparator) step(t TimeOfDay, a AlarmSetting, tick bool) bool {
	c.out = false
	if !tick {
		return false
	}
	eq := t.Hours == a.Hours && t.Minutes == a.Minutes
	c.out = a.Armed && eq && !c.wasEqual
	c.wasEqual = eq
	return c.out
}

// Matched returns the pulse committed at the last step.
func (c *Comparator) Matched() bool { return c.out }

// Reset clears the edge tracking and the output.
func (c *Comparator) Reset() {
	c.wasEqual = false
	c.out = false
}
