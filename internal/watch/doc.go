/*
Package watch implements the synchronous core of the digital-watch
controller: a tick source, the time and alarm registers, the mode
controller and the alarm comparator, all advancing in lock-step on a
single discrete simulation step.

Every component computes its next value from the previously committed
state and everything commits together at the step barrier, so a run of
the same stimulus is reproducible bit for bit.
*/
package watch
