// Package config loads the daemon configuration from an optional YAML
// file with environment fallbacks. Tick divisors are validated here, at
// configuration time: the core treats a zero divisor as a caller
// contract violation.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"quartzwatch/internal/watch"
)

// Pin defaults, BCM numbering.
const (
	DefaultPinMode      = 5
	DefaultPinSelect    = 6
	DefaultPinIncrement = 13
	DefaultPinReset     = 19
)

// Pins maps the four front-panel buttons to GPIO lines.
type Pins struct {
	Mode      int `yaml:"mode"`
	Select    int `yaml:"select"`
	Increment int `yaml:"increment"`
	Reset     int `yaml:"reset"`
}

// Config is the daemon configuration.
type Config struct {
	// StepsPerSecond is the number of simulation steps per timekeeping
	// pulse. Small values suit tests and simulation, large values
	// real-time operation.
	StepsPerSecond uint `yaml:"steps_per_second"`
	// SampleDivisor and ScanDivisor override the derived button-sample
	// and display-scan divisors. Zero means derive from StepsPerSecond
	// (nominal 10 Hz and 1 kHz).
	SampleDivisor uint `yaml:"sample_divisor"`
	ScanDivisor   uint `yaml:"scan_divisor"`

	Panel    string `yaml:"panel"` // "terminal", "gpio" or "none"
	Pins     Pins   `yaml:"pins"`
	Broker   string `yaml:"broker"` // MQTT broker URL, empty disables
	HTTPAddr string `yaml:"http_addr"`
}

// Load builds the configuration from defaults, then the YAML file at
// path (if non-empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		StepsPerSecond: 1000,
		Panel:          "terminal",
		Pins: Pins{
			Mode:      DefaultPinMode,
			Select:    DefaultPinSelect,
			Increment: DefaultPinIncrement,
			Reset:     DefaultPinReset,
		},
		Broker:   os.Getenv("QUARTZWATCH_BROKER"),
		HTTPAddr: getenvDefault("QUARTZWATCH_HTTP", ":8080"),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(err, "parse config")
		}
	}

	if v := os.Getenv("QUARTZWATCH_STEPS_PER_SECOND"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, errors.Wrap(err, "QUARTZWATCH_STEPS_PER_SECOND")
		}
		cfg.StepsPerSecond = uint(n)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StepsPerSecond == 0 {
		return errors.New("steps_per_second must be >= 1")
	}
	switch c.Panel {
	case "terminal", "gpio", "none":
	default:
		return errors.Errorf("unknown panel %q", c.Panel)
	}
	return nil
}

// Divisors derives the watch tick divisors. The sample pulse is nominal
// 10 Hz and the scan pulse nominal 1 kHz, clamped to at least one step.
func (c Config) Divisors() watch.Divisors {
	d := watch.Divisors{
		Timekeeping: c.StepsPerSecond,
		Sample:      c.SampleDivisor,
		Scan:        c.ScanDivisor,
	}
	if d.Sample == 0 {
		d.Sample = clamp(c.StepsPerSecond / 10)
	}
	if d.Scan == 0 {
		d.Scan = clamp(c.StepsPerSecond / 1000)
	}
	return d
}

func clamp(v uint) uint {
	if v == 0 {
		return 1
	}
	return v
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
