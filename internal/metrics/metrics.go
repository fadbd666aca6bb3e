// Package metrics registers the daemon's Prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const prefix = "quartzwatch_"

var (
	registerOnce sync.Once

	stepsTotal   prometheus.Counter
	buttonPulses *prometheus.CounterVec
	ringsTotal   prometheus.Counter
	acksTotal    prometheus.Counter
	resetsTotal  prometheus.Counter

	stateCode  prometheus.Gauge
	alarmArmed prometheus.Gauge
)

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		stepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "steps_total",
			Help: "Simulation steps executed",
		})
		buttonPulses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "button_pulses_total",
			Help: "Button pulses delivered to the controller",
		}, []string{"button"})
		ringsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "rings_total",
			Help: "Alarm rings",
		})
		acksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "acks_total",
			Help: "Alarm acknowledgements",
		})
		resetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "resets_total",
			Help: "Reset requests",
		})
		stateCode = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "state_code",
			Help: "Current controller state code",
		})
		alarmArmed = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "alarm_armed",
			Help: "Whether the alarm is armed",
		})

		prometheus.MustRegister(
			stepsTotal, buttonPulses, ringsTotal, acksTotal, resetsTotal,
			stateCode, alarmArmed,
		)
	})
}

// AddSteps counts executed simulation steps.
func AddSteps(n uint64) {
	if stepsTotal != nil {
		stepsTotal.Add(float64(n))
	}
}

// IncButton counts a delivered button pulse.
func IncButton(name string) {
	if buttonPulses != nil {
		buttonPulses.WithLabelValues(name).Inc()
	}
}

// IncRing counts an alarm ring.
func IncRing() {
	if ringsTotal != nil {
		ringsTotal.Inc()
	}
}

// IncAck counts an alarm acknowledgement.
func IncAck() {
	if acksTotal != nil {
		acksTotal.Inc()
	}
}

// IncReset counts a reset request.
func IncReset() {
	if resetsTotal != nil {
		resetsTotal.Inc()
	}
}

// SetState exposes the controller state code.
func SetState(code uint8) {
	if stateCode != nil {
		stateCode.Set(float64(code))
	}
}

// SetArmed exposes the armed flag.
func SetArmed(armed bool) {
	if alarmArmed == nil {
		return
	}
	if armed {
		alarmArmed.Set(1)
	} else {
		alarmArmed.Set(0)
	}
}
