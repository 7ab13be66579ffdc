// Package sink implements the ReportSink contract of spec §4.7: a small
// bounded queue feeding a USB/BLE-facing consumer task, with drop-on-full
// backpressure and optional consecutive-duplicate suppression.
package sink

import (
	"context"
	"errors"
	"time"

	"github.com/kbfw/corekbd/report"
)

// QueueDepth is the sink's bounded queue capacity (spec §5 "queue depth
// is small, ≈8").
const QueueDepth = 8

// SendTimeout bounds how long a dispatcher send waits for queue room
// before the command is dropped (spec §5's "bounded timeout").
const SendTimeout = 2 * time.Millisecond

// ErrDropped is returned when a send could not be queued within
// SendTimeout. The dispatcher treats this as non-fatal (spec §7).
var ErrDropped = errors.New("sink: queue full, report dropped")

type command struct {
	basic     *report.Model
	extra     *report.ExtraKey
	queueTime time.Time
}

// ChannelSink is a ReportSink backed by a buffered Go channel, consumed
// by a single background goroutine that hands commands to a Transport.
type ChannelSink struct {
	queue     chan command
	transport Transport
	dedup     bool
	lastBasic *report.Model
}

// Transport is the USB/BLE-facing endpoint a ChannelSink drains into.
// WriteReport receives the already-built wire bytes (report.Model's or
// report.ExtraKey's BuildReport output).
type Transport interface {
	WriteReport(b []byte) error
}

// New returns a ChannelSink writing to transport. dedup, when true,
// suppresses consecutive identical BasicReports before they reach the
// transport (spec §4.7's "sink task may deduplicate").
func New(transport Transport, dedup bool) *ChannelSink {
	return &ChannelSink{
		queue:     make(chan command, QueueDepth),
		transport: transport,
		dedup:     dedup,
	}
}

// SendBasicReport enqueues a boot-keyboard report. It returns ErrDropped,
// never blocking the caller beyond SendTimeout, if the queue is full.
func (s *ChannelSink) SendBasicReport(m report.Model) error {
	cp := m
	return s.enqueue(command{basic: &cp, queueTime: time.Now()})
}

// SendExtraKey enqueues a consumer/system extra-key report.
func (s *ChannelSink) SendExtraKey(e report.ExtraKey) error {
	cp := e
	return s.enqueue(command{extra: &cp, queueTime: time.Now()})
}

func (s *ChannelSink) enqueue(c command) error {
	select {
	case s.queue <- c:
		return nil
	case <-time.After(SendTimeout):
		return ErrDropped
	}
}

// Run drains the queue into the transport until ctx is cancelled. It is
// meant to run in its own goroutine. Go goroutines have no priorities, so
// nothing here places it below the dispatcher (spec §5); it is simply the
// only writer to the transport.
func (s *ChannelSink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-s.queue:
			if err := s.deliver(c); err != nil {
				return err
			}
		}
	}
}

func (s *ChannelSink) deliver(c command) error {
	if c.basic != nil {
		if s.dedup && s.lastBasic != nil && s.lastBasic.Equal(*c.basic) {
			return nil
		}
		if err := s.transport.WriteReport(c.basic.BuildReport()); err != nil {
			return err
		}
		cp := *c.basic
		s.lastBasic = &cp
		return nil
	}
	return s.transport.WriteReport(c.extra.BuildReport())
}
