package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwork/jobflow/internal/schedd"
	"github.com/gridwork/jobflow/internal/status"
)

func TestFakeSchedd_ScriptedLifecycle(t *testing.T) {
	f := NewFakeSchedd()
	ctx := context.Background()

	res, err := f.Submit(ctx, map[string]string{"executable": "/bin/true"}, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ClusterID)
	assert.Equal(t, 2, res.Count)

	st := status.NewClusterState(res.ClusterID, res.FirstProc, res.Count, f)
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[status.JobStatus]int{status.Idle: 2}, counts)

	f.Tick()
	counts, err = st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[status.JobStatus]int{status.Running: 2}, counts)

	f.Tick()
	done, err := st.AllCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFakeSchedd_ScriptSelection(t *testing.T) {
	f := NewFakeSchedd()
	f.ScriptFor("holds", Script{status.KindExecute, status.KindHeld})
	ctx := context.Background()

	res, err := f.Submit(ctx, map[string]string{"JobBatchName": "holds"}, 1, nil)
	require.NoError(t, err)

	f.Advance(2)
	st := status.NewClusterState(res.ClusterID, res.FirstProc, res.Count, f)
	got, err := st.Status(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, status.Held, got)
}

func TestFakeSchedd_ItemdataMultipliesCount(t *testing.T) {
	f := NewFakeSchedd()
	items := []map[string]string{{"infile": "a"}, {"infile": "b"}, {"infile": "c"}}

	res, err := f.Submit(context.Background(), map[string]string{}, 2, items)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Count)
}

func TestFakeSchedd_QueryAndEdit(t *testing.T) {
	f := NewFakeSchedd()
	ctx := context.Background()

	_, err := f.Submit(ctx, map[string]string{"executable": "/bin/true"}, 2, nil)
	require.NoError(t, err)
	_, err = f.Submit(ctx, map[string]string{"executable": "/bin/false"}, 3, nil)
	require.NoError(t, err)

	ads, err := f.Query(ctx, "ClusterId == 1", nil, -1)
	require.NoError(t, err)
	assert.Len(t, ads, 2)

	ads, err = f.Query(ctx, "ClusterId == 2", []string{"ProcId"}, 2)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, schedd.Ad{"ProcId": "0"}, ads[0])

	_, err = f.Edit(ctx, "ClusterId == 1", "RequestMemory", "2048")
	require.NoError(t, err)
	ads, err = f.Query(ctx, "ClusterId == 1", []string{"RequestMemory"}, -1)
	require.NoError(t, err)
	assert.Equal(t, "2048", ads[0]["RequestMemory"])
}

func TestFakeSchedd_ActEmitsEvents(t *testing.T) {
	f := NewFakeSchedd()
	ctx := context.Background()

	res, err := f.Submit(ctx, map[string]string{}, 2, nil)
	require.NoError(t, err)

	_, err = f.Act(ctx, schedd.ActionHold, "ClusterId == 1")
	require.NoError(t, err)

	st := status.NewClusterState(res.ClusterID, res.FirstProc, res.Count, f)
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[status.JobStatus]int{status.Held: 2}, counts)

	_, err = f.Act(ctx, schedd.ActionRelease, "ClusterId == 1")
	require.NoError(t, err)
	counts, err = st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[status.JobStatus]int{status.Idle: 2}, counts)
}

func TestFakeSchedd_EventsFilterBySeq(t *testing.T) {
	f := NewFakeSchedd()
	ctx := context.Background()

	_, err := f.Submit(ctx, map[string]string{}, 1, nil)
	require.NoError(t, err)
	f.Advance(2)

	all, err := f.Events(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	tail, err := f.Events(ctx, 1, all[1].Seq)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, status.KindTerminated, tail[0].Kind)
}

func TestManualClock(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())
}
