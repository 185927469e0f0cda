// Package controller wires the line protocol to the scheduler.
//
// The controller owns all scheduler state and mutates it from a single
// run-loop goroutine, the same single-writer discipline as the rest of
// ledd's collaborators expect. Transports feed raw bytes from any
// goroutine via Feed; replies and asynchronous completion notices fan out
// to every attached sink.
//
// Each loop iteration performs two duties, in order: drain and parse any
// fully received input lines (each complete line triggers at most one
// command application and at most one reply), then poll the scheduler
// exactly once to advance timers.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/ledd/internal/proto"
	"github.com/roach88/ledd/internal/sched"
)

// DefaultPollInterval is the run-loop tick. It must stay well under the
// 10 ms duration floor so deadline jitter is negligible.
const DefaultPollInterval = time.Millisecond

// Recorder receives every handled line and its reply, plus asynchronous
// notices (with an empty line). Implemented by journal.Journal.
type Recorder interface {
	Record(tick sched.Ticks, line, reply string)
}

// Controller is the single-writer command loop.
//
// Thread-safety model:
//   - Feed(), AttachSink(): safe from any goroutine
//   - Step(), Run(): must be called from exactly one goroutine
type Controller struct {
	clock sched.Clock
	exec  *sched.Executor
	lines proto.LineBuffer
	rec   Recorder

	inboxMu sync.Mutex
	inbox   []byte

	sinkMu sync.Mutex
	sinks  map[int]func(string)
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder attaches a command journal.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.rec = r }
}

// New creates a Controller driving the given output. The scheduler starts
// Idle with the output off.
func New(clock sched.Clock, out sched.Output, opts ...Option) *Controller {
	c := &Controller{
		clock: clock,
		sinks: make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.exec = sched.NewExecutor(clock, out, c.onNotice)
	return c
}

// Mode returns the scheduler's active program mode.
func (c *Controller) Mode() sched.Mode { return c.exec.Mode() }

// OutputOn returns the scheduler's logical output mirror.
func (c *Controller) OutputOn() bool { return c.exec.OutputOn() }

// Feed appends raw bytes to the inbox. Safe from any goroutine; the bytes
// are parsed on the next Step.
func (c *Controller) Feed(p []byte) {
	c.inboxMu.Lock()
	c.inbox = append(c.inbox, p...)
	c.inboxMu.Unlock()
}

// AttachSink registers a reply/notice receiver and returns its detach
// function. Sinks receive bare lines without terminators.
func (c *Controller) AttachSink(fn func(line string)) (detach func()) {
	c.sinkMu.Lock()
	id := c.nextID
	c.nextID++
	c.sinks[id] = fn
	c.sinkMu.Unlock()
	return func() {
		c.sinkMu.Lock()
		delete(c.sinks, id)
		c.sinkMu.Unlock()
	}
}

// Step performs one loop iteration: drain the inbox, handle each complete
// line, then poll the scheduler once.
func (c *Controller) Step() {
	c.inboxMu.Lock()
	pending := c.inbox
	c.inbox = nil
	c.inboxMu.Unlock()

	if len(pending) > 0 {
		for _, line := range c.lines.Append(pending) {
			c.handleLine(line)
		}
	}
	c.exec.Poll()
}

// Run drives Step on a ticker until ctx is cancelled, then stops the
// scheduler so the output is left off.
func (c *Controller) Run(ctx context.Context) error {
	slog.Info("controller starting", "poll_interval", DefaultPollInterval)
	c.broadcast(proto.ReadyBanner)

	ticker := time.NewTicker(DefaultPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.exec.Stop()
			slog.Info("controller stopped")
			return nil
		case <-ticker.C:
			c.Step()
		}
	}
}

// handleLine validates one line and applies it to the scheduler.
//
// Order matters here. An empty line is ignored outright. An unrecognized
// verb is rejected before the unconditional stop, so it cannot disturb a
// running program. A recognized verb stops the scheduler first; if its
// arguments then fail validation the scheduler stays Idle.
func (c *Controller) handleLine(line string) {
	cmd, err := proto.Parse(line)
	if cmd == nil && err == nil {
		return
	}

	var reply string
	switch {
	case err != nil && proto.IsMalformed(err):
		reply = proto.Err(err.Error())
	case err != nil:
		c.exec.Stop()
		reply = proto.Err(err.Error())
	default:
		c.exec.Stop()
		reply = c.apply(cmd)
	}

	slog.Debug("line handled", "line", line, "reply", reply)
	c.broadcast(reply)
	if c.rec != nil {
		c.rec.Record(c.clock.Now(), line, reply)
	}
}

// apply loads a validated command into the scheduler. The unconditional
// stop has already run.
func (c *Controller) apply(cmd proto.Command) string {
	switch cmd := cmd.(type) {
	case proto.SetCommand:
		c.exec.Set(cmd.On)
		state := 0
		if cmd.On {
			state = 1
		}
		return proto.OK(fmt.Sprintf("SET %d", state))
	case proto.BlinkCommand:
		c.exec.StartBlink(cmd.Count, sched.Ticks(cmd.OnMS), sched.Ticks(cmd.OffMS))
		return proto.OK("BLINK start")
	case proto.HoldCommand:
		c.exec.StartHold(sched.Ticks(cmd.DurationMS))
		return proto.OK("HOLD start")
	case proto.PatternCommand:
		durs := make([]sched.Ticks, len(cmd.Durations))
		for i, d := range cmd.Durations {
			durs[i] = sched.Ticks(d)
		}
		c.exec.StartPattern(cmd.Repeat, durs)
		return proto.OK("PATTERN start")
	case proto.StopCommand:
		return proto.OK("STOP")
	default:
		// Unreachable: Parse only returns the five command types.
		return proto.Err("unknown command")
	}
}

// onNotice broadcasts an asynchronous completion notice from the
// scheduler's poll path.
func (c *Controller) onNotice(msg string) {
	reply := proto.OK(msg)
	c.broadcast(reply)
	if c.rec != nil {
		c.rec.Record(c.clock.Now(), "", reply)
	}
}

func (c *Controller) broadcast(line string) {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	for _, fn := range c.sinks {
		fn(line)
	}
}
