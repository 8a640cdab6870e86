// Package node ties the sensor, display, journal and MQTT legs together
// into the device run loop.
package node

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/airgraph/chart"
	"github.com/rustyeddy/airgraph/comms"
	"github.com/rustyeddy/airgraph/config"
	"github.com/rustyeddy/airgraph/display"
	"github.com/rustyeddy/airgraph/journal"
	"github.com/rustyeddy/airgraph/sensor"
	"github.com/rustyeddy/airgraph/stats"
)

// smootherPeriod is how many readings feed the CO2 average shown in the
// overlay. At the default 30s cadence this is a 10 minute average.
const smootherPeriod = 20

// event carries one sampler outcome to the consumer: either a reading or a
// read failure. Failures still advance the chart timeline via Flush.
type event struct {
	reading sensor.Reading
	err     error
	ts      int64
}

// Faulter is told about the fatal fault before Run returns. Hardware builds
// blink an LED pattern; the default logs at error level.
type Faulter interface {
	Fault(err error)
}

// LogFaulter reports faults through the logger.
type LogFaulter struct {
	Log *slog.Logger
}

func (f LogFaulter) Fault(err error) {
	f.Log.Error("node fault", "error", err)
}

// Node runs one sensor against one display, with optional journaling and
// MQTT publishing. All display work happens on the Run goroutine; the
// sampler only reads the sensor and queues events.
type Node struct {
	disp   *chart.Display
	source sensor.Source
	pub    *comms.Publisher
	jrnl   journal.Journal
	log    *slog.Logger

	interval time.Duration
	budget   time.Duration
	queue    chan event

	// Faulter handles the fatal error before Run returns; defaults to
	// LogFaulter.
	Faulter Faulter

	avg stats.Smoother
	now func() int64
}

// New wires a node from its parts. pub may be nil (publishing disabled) and
// jrnl may be nil (journaling disabled).
func New(cfg config.NodeConfig, disp *chart.Display, src sensor.Source,
	pub *comms.Publisher, jrnl journal.Journal, log *slog.Logger) (*Node, error) {

	interval, err := cfg.ParseSampleInterval()
	if err != nil {
		return nil, fmt.Errorf("sample interval: %w", err)
	}
	budget, err := cfg.ParseRenderBudget()
	if err != nil {
		return nil, fmt.Errorf("render budget: %w", err)
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive, got %d", cfg.QueueSize)
	}
	if jrnl == nil {
		jrnl = journal.Noop{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Node{
		disp:     disp,
		source:   src,
		pub:      pub,
		jrnl:     jrnl,
		log:      log,
		interval: interval,
		budget:   budget,
		queue:    make(chan event, cfg.QueueSize),
		Faulter:  LogFaulter{Log: log},
		avg:      stats.NewEMA(smootherPeriod),
		now:      func() int64 { return time.Now().Unix() },
	}, nil
}

// Run samples until ctx is cancelled. It returns nil on cancellation and an
// error only when the display becomes unreachable, which is fatal for a
// device whose whole job is to show the chart.
func (n *Node) Run(ctx context.Context) error {
	n.log.Info("node starting",
		"sensor", n.source.Name(),
		"interval", n.interval,
		"publish", n.pub != nil)

	go n.sample(ctx)

	for {
		select {
		case <-ctx.Done():
			n.log.Info("node stopping")
			return nil
		case ev := <-n.queue:
			if err := n.handle(ev); err != nil {
				n.Faulter.Fault(err)
				return err
			}
		}
	}
}

// sample reads the sensor on a fixed cadence and queues the outcome. The
// first read happens immediately so the panel is not blank for a whole
// interval after boot.
func (n *Node) sample(ctx context.Context) {
	tick := time.NewTicker(n.interval)
	defer tick.Stop()

	for {
		n.offer(n.readOnce(ctx))

		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

func (n *Node) readOnce(ctx context.Context) event {
	rctx, cancel := context.WithTimeout(ctx, n.interval)
	defer cancel()

	r, err := n.source.Read(rctx)
	if err != nil {
		return event{err: err, ts: n.now()}
	}
	return event{reading: r, ts: r.Time}
}

// offer queues an event, dropping the oldest queued event when the consumer
// has fallen behind. The newest reading always wins.
func (n *Node) offer(ev event) {
	for {
		select {
		case n.queue <- ev:
			return
		default:
		}
		select {
		case old := <-n.queue:
			n.log.Warn("queue full, dropping oldest event", "ts", old.ts)
		default:
		}
	}
}

// handle applies one event to the display and fans it out to the journal and
// the broker. Only display errors are fatal; the journal and broker legs log
// and carry on.
func (n *Node) handle(ev event) error {
	if ev.err != nil {
		n.log.Warn("sensor read failed", "sensor", n.source.Name(), "error", ev.err)
		return n.timed(func() error { return n.disp.Flush(ev.ts) })
	}

	r := ev.reading
	n.log.Debug("reading",
		"co2", r.CO2, "temp", r.TemperatureC, "rh", r.HumidityRH, "ts", r.Time)

	n.avg.Update(r.CO2)
	lines := []string{
		fmt.Sprintf("RH: %4.1f %%", r.HumidityRH),
		fmt.Sprintf("src: %s", n.source.Name()),
	}
	if n.avg.Ready() {
		lines = append(lines, fmt.Sprintf("avg: %4.0f ppm", n.avg.Value()))
	}

	n.disp.SetTemp(r.TemperatureC)
	n.disp.SetSecondText(lines)
	if err := n.timed(func() error { return n.disp.Add(r.CO2, r.Time) }); err != nil {
		return err
	}

	if n.pub != nil {
		if err := n.pub.Publish(r, n.source.Name()); err != nil {
			n.log.Warn("publish failed", "error", err)
		}
	}
	if err := n.jrnl.Record(journal.FromReading(r, n.source.Name())); err != nil {
		n.log.Warn("journal write failed", "error", err)
	}
	return nil
}

// timed runs a display operation and enforces the render budget. E-paper
// refreshes are slow; after an overrun, queued samples are dropped so the
// consumer catches up instead of rendering readings that are already stale.
func (n *Node) timed(op func() error) error {
	start := time.Now()
	err := op()
	if took := time.Since(start); took > n.budget {
		dropped := n.drain()
		n.log.Warn("render over budget",
			"took", took, "budget", n.budget, "dropped", dropped)
	}
	return err
}

// drain discards queued events down to the newest one.
func (n *Node) drain() int {
	dropped := 0
	for len(n.queue) > 1 {
		<-n.queue
		dropped++
	}
	return dropped
}

// FromConfig builds the full node from configuration: surface, display,
// sensor, journal and publisher.
func FromConfig(cfg *config.Config, log *slog.Logger) (*Node, error) {
	var surf display.Surface
	switch cfg.Display.Driver {
	case "image":
		im := display.NewImage(cfg.Display.FullWidth, cfg.Display.FullHeight)
		im.SnapshotPath = cfg.Display.SnapshotPath
		surf = im
	case "null":
		surf = display.NewRecorder(cfg.Display.FullWidth, cfg.Display.FullHeight)
	default:
		return nil, fmt.Errorf("unknown display driver %q", cfg.Display.Driver)
	}

	disp, err := chart.New(cfg.Display.ChartConfig(), surf, log)
	if err != nil {
		return nil, err
	}

	var src sensor.Source
	switch cfg.Sensor.Type {
	case "sim":
		src = sensor.NewSim(cfg.Sensor.Seed)
	case "scd30":
		return nil, fmt.Errorf("scd30 sensor needs an I2C bus; wire sensor.NewSCD30 directly")
	default:
		return nil, fmt.Errorf("unknown sensor type %q", cfg.Sensor.Type)
	}

	jrnl, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, err
	}

	var pub *comms.Publisher
	if cfg.MQTT.Enabled {
		pub = comms.NewPublisher(comms.Config{
			BrokerURL: cfg.MQTT.Broker,
			ClientID:  cfg.MQTT.ClientID,
			Username:  cfg.MQTT.Username,
			Password:  cfg.MQTT.Password,
			Topic:     cfg.MQTT.Topic,
			QoS:       cfg.MQTT.QoS,
			KeepAlive: cfg.MQTT.KeepAlive,
		}, log)
	}

	n, err := New(cfg.Node, disp, src, pub, jrnl, log)
	if err != nil {
		jrnl.Close()
		return nil, err
	}
	return n, nil
}

// openJournal builds the configured journal backend.
func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "none", "":
		return journal.Noop{}, nil
	case "csv":
		return journal.NewCSV(cfg.ReadingsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}

// Close releases the node's journal and broker connections. Call after Run
// returns.
func (n *Node) Close() {
	if n.pub != nil {
		n.pub.Close()
	}
	if err := n.jrnl.Close(); err != nil {
		n.log.Warn("journal close failed", "error", err)
	}
}
