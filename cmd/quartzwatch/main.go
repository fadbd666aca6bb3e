// Command quartzwatch runs the digital watch controller in real time:
// it steps the synchronous core from a wall-clock ticker, polls a front
// panel for button input, serves status over HTTP and announces alarm
// events over MQTT.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"quartzwatch/internal/announce"
	"quartzwatch/internal/config"
	"quartzwatch/internal/metrics"
	"quartzwatch/internal/panel"
	"quartzwatch/internal/status"
	"quartzwatch/internal/watch"
	"quartzwatch/internal/web"
)

const gpioChip = "gpiochip0"

func main() {
	var (
		configPath     = flag.String("config", "", "path to YAML config file")
		broker         = flag.String("broker", "", "MQTT broker URL (overrides config)")
		httpAddr       = flag.String("http", "", "HTTP listen address (overrides config)")
		panelKind      = flag.String("panel", "", "panel source: terminal, gpio or none (overrides config)")
		stepsPerSecond = flag.Uint("steps-per-second", 0, "simulation steps per second (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *broker != "" {
		cfg.Broker = *broker
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *panelKind != "" {
		cfg.Panel = *panelKind
	}
	if *stepsPerSecond != 0 {
		cfg.StepsPerSecond = *stepsPerSecond
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	bootID := uuid.NewString()
	log.Printf("quartzwatch starting, boot id %s", bootID)

	metrics.Init()

	core, err := watch.New(cfg.Divisors())
	if err != nil {
		return err
	}

	src, err := newPanel(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	pub, err := newPublisher(cfg.Broker)
	if err != nil {
		// The watch is useful without its annunciator.
		log.Printf("mqtt: %v, continuing without broker", err)
		pub = nopPublisher{}
	}
	defer pub.Close()

	tracker := status.NewTracker(time.Now(), bootID)

	if err := pub.PublishSystem(announce.SystemEvent{
		Timestamp: time.Now(),
		Event:     "STARTUP",
		BootID:    bootID,
		Retained:  true,
	}); err != nil {
		log.Printf("mqtt: publish startup: %v", err)
	}

	srv := web.New(cfg.HTTPAddr, tracker)
	go func() {
		log.Printf("http: listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("http: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := &daemon{
		core:    core,
		panel:   src,
		pub:     pub,
		tracker: tracker,
		perWake: cfg.Divisors().Sample,
	}
	if rp, ok := pub.(*announce.RealPublisher); ok {
		d.connected = rp.IsConnected
	}

	interval := time.Duration(d.perWake) * time.Second / time.Duration(cfg.StepsPerSecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("stepping %d steps every %v", d.perWake, interval)
	err = d.runLoop(ctx, ticker.C)

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutCtx); serr != nil {
		log.Printf("http: shutdown: %v", serr)
	}

	if perr := pub.PublishSystem(announce.SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "signal",
		BootID:    bootID,
		Retained:  true,
	}); perr != nil {
		log.Printf("mqtt: publish shutdown: %v", perr)
	}

	if err == context.Canceled {
		log.Print("quartzwatch stopped")
		return nil
	}
	return err
}

func newPanel(cfg config.Config) (panel.Source, error) {
	switch cfg.Panel {
	case "terminal":
		return panel.NewTerminal(os.Stdin)
	case "gpio":
		return panel.NewGPIO(gpioChip,
			cfg.Pins.Mode, cfg.Pins.Select, cfg.Pins.Increment, cfg.Pins.Reset)
	default:
		return nopSource{}, nil
	}
}

func newPublisher(broker string) (announce.Publisher, error) {
	if broker == "" {
		return nopPublisher{}, nil
	}
	return announce.NewRealPublisher(broker)
}

// daemon drives the synchronous core from wall-clock wakeups. Each
// wakeup polls the panel once, applies the buttons on the first step of
// the batch and steps the core through one sample period.
type daemon struct {
	core    *watch.Watch
	panel   panel.Source
	pub     announce.Publisher
	tracker *status.Tracker

	perWake uint
	steps   uint64
	armed   bool

	// connected reports the broker connection, nil when no broker is
	// configured.
	connected func() bool
}

func (d *daemon) runLoop(ctx context.Context, wake <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
			d.stepBatch()
		}
	}
}

func (d *daemon) stepBatch() {
	buttons, err := d.panel.Poll()
	if err != nil {
		log.Printf("panel: %v", err)
		buttons = watch.Buttons{}
	}
	countButtons(buttons)

	var out watch.Outputs
	for i := uint(0); i < d.perWake; i++ {
		in := watch.Buttons{}
		if i == 0 {
			in = buttons
		}
		d.core.Step(in)
		d.steps++
		out = d.core.Snapshot()
		d.observe(out)
	}

	metrics.AddSteps(uint64(d.perWake))
	metrics.SetState(out.StateCode)
	metrics.SetArmed(out.Alarm.Armed)
	if d.connected != nil {
		d.tracker.SetMQTTConnected(d.connected())
	}
	d.tracker.Update(out, d.steps)
}

// observe publishes the event pulses of a single step. Pulses last one
// step, so this runs inside the batch, not after it.
func (d *daemon) observe(out watch.Outputs) {
	now := time.Now()

	// The controller ignores a match pulse in edit states; only a match
	// that latched the ringing state is a ring.
	if out.Matched && out.Ringing {
		metrics.IncRing()
		d.tracker.RecordRing()
		d.publish(announce.Event{
			Timestamp: now,
			Kind:      announce.KindRing,
			Time:      out.Time,
			Alarm:     out.Alarm,
		})
	}
	if out.Acknowledged {
		metrics.IncAck()
		d.publish(announce.Event{
			Timestamp: now,
			Kind:      announce.KindAck,
			Time:      out.Time,
			Alarm:     out.Alarm,
		})
	}
	if out.Alarm.Armed != d.armed {
		d.armed = out.Alarm.Armed
		kind := announce.KindDisarmed
		if d.armed {
			kind = announce.KindArmed
		}
		d.publish(announce.Event{
			Timestamp: now,
			Kind:      kind,
			Time:      out.Time,
			Alarm:     out.Alarm,
		})
	}
}

func (d *daemon) publish(e announce.Event) {
	if err := d.pub.Publish(e); err != nil {
		log.Printf("mqtt: publish %s: %v", e.Kind, err)
	}
}

func countButtons(b watch.Buttons) {
	if b.Mode {
		metrics.IncButton("mode")
	}
	if b.Select {
		metrics.IncButton("select")
	}
	if b.Increment {
		metrics.IncButton("increment")
	}
	if b.Reset {
		metrics.IncButton("reset")
		metrics.IncReset()
	}
}

// nopSource is the panel for headless runs.
type nopSource struct{}

func (nopSource) Poll() (watch.Buttons, error) { return watch.Buttons{}, nil }
func (nopSource) Close() error                 { return nil }

// nopPublisher drops events when no broker is configured.
type nopPublisher struct{}

func (nopPublisher) Publish(announce.Event) error             { return nil }
func (nopPublisher) PublishSystem(announce.SystemEvent) error { return nil }
func (nopPublisher) Close() error                             { return nil }
