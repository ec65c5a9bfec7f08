package flow

import (
	"context"
	"errors"
)

// ErrDone is returned by Resume when a producer has nothing further to
// yield. It is a control signal, not a failure, following the io.EOF
// convention.
var ErrDone = errors.New("producer exhausted")

// Unit is one batch of submitted work whose completion can be polled.
// *handle.ClusterHandle satisfies Unit through its Done method.
type Unit interface {
	Done(ctx context.Context) (bool, error)
}

// ReadyFunc decides when a yielded unit unblocks its producer. The
// default is the unit's own Done.
type ReadyFunc func(ctx context.Context, u Unit) (bool, error)

// Yield is what one Resume hands back to the executor. Exactly two
// things can be yielded: a unit to wait on, or child producers to run.
type Yield interface {
	yield()
}

// YieldUnit blocks the producer until the unit is ready. A nil Ready
// means wait for Unit.Done.
type YieldUnit struct {
	Unit  Unit
	Ready ReadyFunc
}

func (YieldUnit) yield() {}

// ready applies the yield's readiness rule.
func (y YieldUnit) ready(ctx context.Context) (bool, error) {
	if y.Ready != nil {
		return y.Ready(ctx, y.Unit)
	}
	return y.Unit.Done(ctx)
}

// Spawn hands child producers to the executor. The spawning producer
// is not resumed again until every child is exhausted.
type Spawn struct {
	Children []Producer
}

func (Spawn) yield() {}

// Producer is a resumable work script. Resume returns the next yield,
// or ErrDone once the script has run to completion. Any other error
// aborts the whole run.
//
// Producers are resumed from a single goroutine and need no locking.
type Producer interface {
	Resume(ctx context.Context) (Yield, error)
}

// StepFunc is one step of a Sequence. A step may return a nil Yield to
// run purely for its side effects.
type StepFunc func(ctx context.Context) (Yield, error)

// sequence runs a fixed list of steps in order.
type sequence struct {
	steps []StepFunc
	next  int
}

// Sequence builds a producer from a fixed list of steps. Each Resume
// runs the next step; after the last step the producer is exhausted.
func Sequence(steps ...StepFunc) Producer {
	return &sequence{steps: steps}
}

func (s *sequence) Resume(ctx context.Context) (Yield, error) {
	if s.next >= len(s.steps) {
		return nil, ErrDone
	}
	step := s.steps[s.next]
	s.next++
	return step(ctx)
}

// WaitOn yields a unit with the default readiness rule.
func WaitOn(u Unit) Yield { return YieldUnit{Unit: u} }

// WaitOnWhen yields a unit with a custom readiness rule.
func WaitOnWhen(u Unit, ready ReadyFunc) Yield { return YieldUnit{Unit: u, Ready: ready} }

// SpawnAll yields child producers.
func SpawnAll(children ...Producer) Yield { return Spawn{Children: children} }
