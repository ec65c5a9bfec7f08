package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/gridwork/jobflow/internal/flow"
	"github.com/gridwork/jobflow/internal/handle"
	"github.com/gridwork/jobflow/internal/submit"
	"github.com/gridwork/jobflow/internal/testutil"
)

// Result is what one scenario run produced.
type Result struct {
	// Clusters holds every submitted cluster's handle, in submission
	// order, bound to the run's event journal.
	Clusters []*handle.ClusterHandle

	// MaxTracked is the peak number of live producers.
	MaxTracked int

	// Cycles is how many polling cycles the run took.
	Cycles int
}

// runner carries the per-run wiring shared by all node producers.
type runner struct {
	txn    *submit.Transaction
	result *Result
}

// Run executes a scenario against a fresh fake scheduler. One executor
// cycle corresponds to one scheduler tick, so script positions read as
// cycle numbers.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	fake := testutil.NewFakeSchedd()
	scripts, err := s.scripts()
	if err != nil {
		return nil, err
	}
	for batch, script := range scripts {
		fake.ScriptFor(batch, script)
	}

	txn := submit.Begin(fake, handle.Scope{}, fake)
	defer txn.Close()

	r := &runner{txn: txn, result: &Result{}}
	roots := make([]flow.Producer, len(s.Flow))
	for i, n := range s.Flow {
		roots[i] = r.producer(n)
	}

	exec := flow.NewExecutor(
		flow.WithMinPeriod(time.Hour),
		flow.WithSleep(func(ctx context.Context, _ time.Duration) error {
			fake.Tick()
			return ctx.Err()
		}),
		flow.WithObserver(func(ev flow.TraceEvent) {
			if ev.Tracked > r.result.MaxTracked {
				r.result.MaxTracked = ev.Tracked
			}
			if ev.Kind == flow.TraceCycle {
				r.result.Cycles = ev.Cycle
			}
		}),
	)
	if err := exec.Run(ctx, roots...); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return r.result, nil
}

// producer turns one node into its flow producer: submit and wait,
// fan out to children, then run the follow-up nodes.
func (r *runner) producer(n Node) flow.Producer {
	steps := []flow.StepFunc{
		func(ctx context.Context) (flow.Yield, error) {
			desc := submit.Description{"executable": "/bin/true"}
			if n.Batch != "" {
				desc["JobBatchName"] = n.Batch
			}
			h, err := r.txn.Submit(ctx, desc, n.Count, nil)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.Name, err)
			}
			r.result.Clusters = append(r.result.Clusters, h)
			return flow.WaitOn(h), nil
		},
	}
	if len(n.Children) > 0 {
		children := n.Children
		steps = append(steps, func(context.Context) (flow.Yield, error) {
			return flow.SpawnAll(r.producers(children)...), nil
		})
	}
	if len(n.Then) > 0 {
		then := n.Then
		steps = append(steps, func(context.Context) (flow.Yield, error) {
			return flow.SpawnAll(r.producers(then)...), nil
		})
	}
	return flow.Sequence(steps...)
}

func (r *runner) producers(nodes []Node) []flow.Producer {
	out := make([]flow.Producer, len(nodes))
	for i, n := range nodes {
		out[i] = r.producer(n)
	}
	return out
}

// Verify checks the run outcome against the scenario's expectations.
func (r *Result) Verify(ctx context.Context, s *Scenario) error {
	if len(r.Clusters) != s.Expect.Clusters {
		return fmt.Errorf("scenario %q: submitted %d clusters, expected %d",
			s.Name, len(r.Clusters), s.Expect.Clusters)
	}
	if s.Expect.MaxTracked > 0 && r.MaxTracked != s.Expect.MaxTracked {
		return fmt.Errorf("scenario %q: peak of %d tracked producers, expected %d",
			s.Name, r.MaxTracked, s.Expect.MaxTracked)
	}
	if s.Expect.Completed {
		for _, h := range r.Clusters {
			done, err := h.Done(ctx)
			if err != nil {
				return err
			}
			if !done {
				return fmt.Errorf("scenario %q: cluster %d did not complete",
					s.Name, h.ClusterID())
			}
		}
	}
	return nil
}
