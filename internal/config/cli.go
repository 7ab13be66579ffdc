package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	corelog "github.com/kbfw/corekbd/internal/log"
	"github.com/kbfw/corekbd/dispatch"
	"github.com/kbfw/corekbd/keymap"
	"github.com/kbfw/corekbd/macro"
	"github.com/kbfw/corekbd/scansource"
	"github.com/kbfw/corekbd/sink"
)

// CLI is corekbd's root kong command tree.
type CLI struct {
	Config string    `help:"Path to a config file override" name:"config"`
	Log    LogConfig `embed:"" prefix:"log."`

	Serve      ServeCmd      `cmd:"" help:"Run the dispatcher against a keymap layout on stdin"`
	ConfigInit ConfigCommand `cmd:"" name:"config" help:"Config template tooling"`
}

// LogConfig groups the logging flags shared by every subcommand.
type LogConfig struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error"`
	File    string `help:"Mirror logs to this file in addition to stdout/stderr"`
	RawFile string `help:"Write a hex trace of every outgoing report to this file"`
}

// ServeCmd runs the dispatcher loop: it loads a keymap layout (and
// optionally a macro table), drives a terminal-backed ScanSource, and
// feeds a logging ReportSink.
type ServeCmd struct {
	Layout          string        `arg:"" help:"Path to a TOML or YAML keymap layout document"`
	Macros          string        `help:"Path to a YAML macro table"`
	Rollover        int           `help:"KeyStateTracker slot capacity" default:"16"`
	TappingInterval time.Duration `help:"Tap-vs-hold threshold" default:"200ms"`
	TickPeriod      time.Duration `help:"Duration of one Tick, for the wall-clock TickSource" default:"1ms"`
}

// Run wires scansource/keymap/macro/dispatch/sink into a running
// dispatcher loop until SIGINT/SIGTERM (spec §4.5, §4.7).
func (s *ServeCmd) Run(logger *slog.Logger, trace corelog.ReportTraceLogger) error {
	store, err := loadLayout(s.Layout)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}

	var table macro.Table
	if s.Macros != "" {
		f, err := os.Open(s.Macros)
		if err != nil {
			return fmt.Errorf("opening macro table: %w", err)
		}
		defer f.Close()
		table, err = macro.LoadYAMLTable(f)
		if err != nil {
			return fmt.Errorf("loading macro table: %w", err)
		}
	}

	transport := &loggingTransport{logger: logger, trace: trace}
	reportSink := sink.New(transport, true)

	colOf := map[byte]int{}
	for col := 0; col < store.ColCount() && col < 26; col++ {
		colOf[byte('a'+col)] = col
	}
	scanner := scansource.NewTerminal(colOf, store.ColCount())
	if err := scanner.Setup(); err != nil {
		return fmt.Errorf("entering terminal raw mode: %w", err)
	}
	defer scanner.Restore()

	clock := dispatch.NewRealClock(s.TickPeriod)
	tappingTicks := keysTickOf(s.TappingInterval, s.TickPeriod)

	d := dispatch.New(scanner, reportSink, clock, dispatch.RealSleeper{}, store, s.Rollover, tappingTicks, store.ColCount(), table.Lookup, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinkCtx, stopSink := context.WithCancel(context.Background())
	defer stopSink()
	sinkErrCh := make(chan error, 1)
	go func() { sinkErrCh <- reportSink.Run(sinkCtx) }()

	logger.Info("dispatcher starting", "layout", s.Layout, "rows", store.RowCount(), "cols", store.ColCount(), "layers", store.LayerCount())

	dispatchErrCh := make(chan error, 1)
	go func() { dispatchErrCh <- d.Run(ctx) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		stopSink()
		return nil
	case err := <-dispatchErrCh:
		stopSink()
		return err
	}
}

func keysTickOf(interval, tickPeriod time.Duration) uint32 {
	if tickPeriod <= 0 {
		return uint32(interval.Milliseconds())
	}
	return uint32(interval / tickPeriod)
}

func loadLayout(path string) (*keymap.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return keymap.LoadYAML(f)
	case ".toml":
		return keymap.LoadTOML(f)
	default:
		return nil, fmt.Errorf("unrecognized layout extension %q, want .toml or .yaml", filepath.Ext(path))
	}
}

// loggingTransport is a sink.Transport that logs every outgoing report
// instead of writing to a real USB/BLE endpoint, since the core's
// transport layer is out of scope (spec §1).
type loggingTransport struct {
	logger *slog.Logger
	trace  corelog.ReportTraceLogger
}

func (t *loggingTransport) WriteReport(b []byte) error {
	if t.trace != nil {
		t.trace.Log("report", b)
	}
	t.logger.Debug("report emitted", "bytes", fmt.Sprintf("% x", b))
	return nil
}

var errUnsupportedFormat = errors.New("config: unsupported format")
