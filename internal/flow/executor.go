package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultMinPeriod is the minimum length of one polling cycle. A cycle
// that finishes its pass faster sleeps for the remainder, so readiness
// checks never hammer the status source.
const DefaultMinPeriod = 250 * time.Millisecond

// SleepFunc pauses between polling cycles. Tests substitute one that
// returns immediately and advances a scripted clock instead.
type SleepFunc func(ctx context.Context, d time.Duration) error

// TraceKind labels one executor trace event.
type TraceKind int

const (
	TraceSeed TraceKind = iota + 1
	TraceResume
	TraceSpawn
	TraceExhaust
	TraceCycle
)

func (k TraceKind) String() string {
	switch k {
	case TraceSeed:
		return "seed"
	case TraceResume:
		return "resume"
	case TraceSpawn:
		return "spawn"
	case TraceExhaust:
		return "exhaust"
	case TraceCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// TraceEvent is one observation of executor progress. Tracked is the
// number of live producers after the event took effect.
type TraceEvent struct {
	Kind    TraceKind
	Cycle   int
	Tracked int
}

// Observer receives trace events as the run progresses.
type Observer func(TraceEvent)

// Executor runs producer trees to exhaustion. All producers are
// resumed from the calling goroutine; the executor itself holds only
// configuration and one Executor may serve many Run calls.
type Executor struct {
	minPeriod time.Duration
	sleep     SleepFunc
	observe   Observer
	log       *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithMinPeriod sets the minimum polling cycle length.
func WithMinPeriod(d time.Duration) Option {
	return func(e *Executor) { e.minPeriod = d }
}

// WithSleep overrides how the executor pauses between cycles.
func WithSleep(sleep SleepFunc) Option {
	return func(e *Executor) { e.sleep = sleep }
}

// WithObserver attaches a trace observer.
func WithObserver(obs Observer) Option {
	return func(e *Executor) { e.observe = obs }
}

// WithLogger overrides the executor's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) { e.log = log }
}

// NewExecutor builds an executor with the default cycle period.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		minPeriod: DefaultMinPeriod,
		sleep:     sleepContext,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// task is the executor's bookkeeping for one tracked producer.
type task struct {
	producer Producer
	parent   *task

	// pending is the unit the producer last yielded, nil once it has
	// been consumed. children counts live spawned producers; while it
	// is positive the producer is parked.
	pending  *YieldUnit
	children int
	done     bool
}

// blocked reports whether the task can be resumed this cycle.
func (t *task) blocked() bool {
	return t.done || t.children > 0
}

// run is the mutable state of one Run call.
type run struct {
	exec    *Executor
	tasks   []*task
	tracked int
	cycle   int
}

// Run executes the producer trees rooted at the given producers until
// every tracked producer is exhausted. The first error from any
// Resume or readiness check aborts the whole run.
func (e *Executor) Run(ctx context.Context, roots ...Producer) error {
	r := &run{exec: e}
	for _, p := range roots {
		r.add(p, nil)
		r.emit(TraceSeed)
	}
	e.log.Debug("flow run starting", "roots", len(roots))

	for r.tracked > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.cycle++
		start := time.Now()

		// Children spawned during this pass join the slice beyond n
		// and get their first resume next cycle.
		n := len(r.tasks)
		for i := 0; i < n; i++ {
			if err := r.step(ctx, r.tasks[i]); err != nil {
				return fmt.Errorf("flow cycle %d: %w", r.cycle, err)
			}
		}
		r.compact()
		r.emit(TraceCycle)

		if r.tracked == 0 {
			break
		}
		if remaining := e.minPeriod - time.Since(start); remaining > 0 {
			if err := e.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	e.log.Debug("flow run finished", "cycles", r.cycle)
	return nil
}

func (r *run) add(p Producer, parent *task) *task {
	t := &task{producer: p, parent: parent}
	r.tasks = append(r.tasks, t)
	r.tracked++
	return t
}

// step advances one task at most one resume. A task parked on a unit
// is resumed only once the unit reports ready; a task parked on
// children stays parked until the last child exhausts.
func (r *run) step(ctx context.Context, t *task) error {
	if t.blocked() {
		return nil
	}
	if t.pending != nil {
		ok, err := t.pending.ready(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		t.pending = nil
	}

	y, err := t.producer.Resume(ctx)
	if errors.Is(err, ErrDone) {
		r.exhaust(t)
		return nil
	}
	if err != nil {
		return err
	}
	r.emit(TraceResume)

	switch y := y.(type) {
	case YieldUnit:
		t.pending = &y
	case Spawn:
		for _, child := range y.Children {
			r.add(child, t)
		}
		t.children += len(y.Children)
		if len(y.Children) > 0 {
			r.emit(TraceSpawn)
		}
	case nil:
		// Side-effect step; resumable next cycle.
	default:
		return fmt.Errorf("producer yielded unsupported %T", y)
	}
	return nil
}

// compact drops exhausted tasks between cycles, keeping the pass over
// r.tasks proportional to live producers rather than everything ever
// tracked. Must not run mid-pass: step iterates by index over the
// cycle's snapshot.
func (r *run) compact() {
	if r.tracked == len(r.tasks) {
		return
	}
	live := r.tasks[:0]
	for _, t := range r.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(r.tasks); i++ {
		r.tasks[i] = nil
	}
	r.tasks = live
}

// exhaust retires a task and unparks its parent once no siblings
// remain.
func (r *run) exhaust(t *task) {
	t.done = true
	r.tracked--
	r.emit(TraceExhaust)
	if t.parent != nil {
		t.parent.children--
	}
}

func (r *run) emit(kind TraceKind) {
	if r.exec.observe == nil {
		return
	}
	r.exec.observe(TraceEvent{Kind: kind, Cycle: r.cycle, Tracked: r.tracked})
}
