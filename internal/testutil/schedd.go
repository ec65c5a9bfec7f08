package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/gridwork/jobflow/internal/schedd"
	"github.com/gridwork/jobflow/internal/status"
)

// Script is the lifecycle a fake job plays out after submission, one
// event kind per tick. A typical well-behaved job is
// Script{status.KindExecute, status.KindTerminated}.
type Script []status.EventKind

// DefaultScript runs every job to completion in two ticks.
var DefaultScript = Script{status.KindExecute, status.KindTerminated}

type fakeJob struct {
	cluster int64
	proc    int
	attrs   schedd.Ad
	status  status.JobStatus
}

type scheduled struct {
	at int
	ev status.Event
}

// FakeSchedd is an in-memory scheduler with scripted job lifecycles.
// Submitted jobs progress one script step per Tick; all generated
// events land in an internal journal served through Events, so it
// doubles as the status source for the handles it creates.
//
// Scripts are selected by the submit description's JobBatchName
// attribute; clusters without a registered script use DefaultScript.
//
// Safe for concurrent use.
type FakeSchedd struct {
	mu          sync.Mutex
	nextCluster int64
	seq         int64
	tick        int
	scripts     map[string]Script
	jobs        []*fakeJob
	journal     []status.Event
	pending     []scheduled
}

// NewFakeSchedd builds an empty fake scheduler.
func NewFakeSchedd() *FakeSchedd {
	return &FakeSchedd{scripts: make(map[string]Script)}
}

// ScriptFor registers the lifecycle played by clusters submitted with
// the given JobBatchName.
func (f *FakeSchedd) ScriptFor(batchName string, s Script) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[batchName] = s
}

// Submit implements schedd.Submitter. Item data multiplies the count,
// one run of count jobs per item.
func (f *FakeSchedd) Submit(_ context.Context, desc map[string]string, count int, itemdata []map[string]string) (schedd.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := count
	if itemdata != nil {
		total = count * len(itemdata)
	}

	f.nextCluster++
	cluster := f.nextCluster
	script, ok := f.scripts[desc["JobBatchName"]]
	if !ok {
		script = DefaultScript
	}

	for proc := 0; proc < total; proc++ {
		attrs := schedd.Ad{
			"ClusterId": fmt.Sprintf("%d", cluster),
			"ProcId":    fmt.Sprintf("%d", proc),
		}
		for k, v := range desc {
			attrs[k] = v
		}
		f.jobs = append(f.jobs, &fakeJob{
			cluster: cluster,
			proc:    proc,
			attrs:   attrs,
			status:  status.Unmaterialized,
		})

		f.emit(status.Event{ClusterID: cluster, Proc: proc, Kind: status.KindSubmit})
		for i, kind := range script {
			f.pending = append(f.pending, scheduled{
				at: f.tick + i + 1,
				ev: status.Event{ClusterID: cluster, Proc: proc, Kind: kind},
			})
		}
	}

	return schedd.SubmitResult{ClusterID: cluster, FirstProc: 0, Count: total}, nil
}

// Tick advances scripted time by one step, emitting every due event.
func (f *FakeSchedd) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tick++
	var rest []scheduled
	for _, s := range f.pending {
		if s.at <= f.tick {
			f.emit(s.ev)
		} else {
			rest = append(rest, s)
		}
	}
	f.pending = rest
}

// Advance runs n ticks.
func (f *FakeSchedd) Advance(n int) {
	for i := 0; i < n; i++ {
		f.Tick()
	}
}

// emit stamps and journals one event and updates the job's status.
// Callers must hold f.mu.
func (f *FakeSchedd) emit(ev status.Event) {
	f.seq++
	ev.Seq = f.seq
	f.journal = append(f.journal, ev)

	next, ok := ev.Kind.Status()
	if !ok {
		return
	}
	for _, j := range f.jobs {
		if j.cluster == ev.ClusterID && j.proc == ev.Proc {
			j.status = next
			j.attrs["JobStatus"] = fmt.Sprintf("%d", int(next))
			return
		}
	}
}

// Events implements status.EventSource.
func (f *FakeSchedd) Events(_ context.Context, clusterID int64, afterSeq int64) ([]status.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []status.Event
	for _, ev := range f.journal {
		if ev.ClusterID == clusterID && ev.Seq > afterSeq {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Journal returns a copy of every event emitted so far, across all
// clusters.
func (f *FakeSchedd) Journal() []status.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]status.Event, len(f.journal))
	copy(out, f.journal)
	return out
}

// match returns the jobs selected by a constraint string. Only the
// exact cluster form emitted by cluster handles is understood; any
// other constraint selects every job.
func (f *FakeSchedd) match(constraint string) []*fakeJob {
	var cluster int64
	if _, err := fmt.Sscanf(constraint, "ClusterId == %d", &cluster); err != nil {
		return f.jobs
	}
	var out []*fakeJob
	for _, j := range f.jobs {
		if j.cluster == cluster {
			out = append(out, j)
		}
	}
	return out
}

// Query implements schedd.Querier.
func (f *FakeSchedd) Query(_ context.Context, constraint string, projection []string, limit int) ([]schedd.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []schedd.Ad
	for _, j := range f.match(constraint) {
		if limit >= 0 && len(out) >= limit {
			break
		}
		ad := make(schedd.Ad, len(j.attrs))
		if projection == nil {
			for k, v := range j.attrs {
				ad[k] = v
			}
		} else {
			for _, k := range projection {
				if v, ok := j.attrs[k]; ok {
					ad[k] = v
				}
			}
		}
		out = append(out, ad)
	}
	return out, nil
}

// actionEvents maps queue actions to the job event each one produces.
var actionEvents = map[schedd.Action]status.EventKind{
	schedd.ActionRemove:   status.KindAborted,
	schedd.ActionHold:     status.KindHeld,
	schedd.ActionRelease:  status.KindReleased,
	schedd.ActionSuspend:  status.KindSuspended,
	schedd.ActionContinue: status.KindUnsuspended,
	schedd.ActionVacate:   status.KindEvicted,
}

// Act implements schedd.Actor. The action takes effect immediately,
// emitting the corresponding event for every matched job.
func (f *FakeSchedd) Act(_ context.Context, action schedd.Action, constraint string) (schedd.Ad, error) {
	kind, ok := actionEvents[action]
	if !ok {
		return nil, fmt.Errorf("unsupported action %v", action)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	matched := f.match(constraint)
	for _, j := range matched {
		f.emit(status.Event{ClusterID: j.cluster, Proc: j.proc, Kind: kind})
	}
	return schedd.Ad{"TotalSuccess": fmt.Sprintf("%d", len(matched))}, nil
}

// Edit implements schedd.Actor.
func (f *FakeSchedd) Edit(_ context.Context, constraint, attr, value string) (schedd.Ad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := f.match(constraint)
	for _, j := range matched {
		j.attrs[attr] = value
	}
	return schedd.Ad{"TotalSuccess": fmt.Sprintf("%d", len(matched))}, nil
}

var (
	_ schedd.Scheduler   = (*FakeSchedd)(nil)
	_ status.EventSource = (*FakeSchedd)(nil)
)
