package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwork/jobflow/internal/handle"
	"github.com/gridwork/jobflow/internal/schedd"
	"github.com/gridwork/jobflow/internal/status"
	"github.com/gridwork/jobflow/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReduceCommand(t *testing.T) {
	out, err := execute(t, "reduce", "(JobStatus == 1) && (true)")
	require.NoError(t, err)
	assert.Equal(t, "JobStatus == 1\n", out)
}

func TestReduceCommand_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "reduce", "(Owner == bob) || (Owner == bob)")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   reduceResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Owner == bob", resp.Data.Reduced)
}

func TestReduceCommand_ParseFailure(t *testing.T) {
	out, err := execute(t, "reduce", "JobStatus <")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "reduce", "true")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate",
		"--description", filepath.Join("testdata", "description.cue"),
		"--itemdata", filepath.Join("testdata", "items.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 5 attributes, 3 items")
}

func TestValidateCommand_NoExecutable(t *testing.T) {
	_, err := execute(t, "validate",
		"--description", filepath.Join("testdata", "no_executable.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateCommand_MixedItems(t *testing.T) {
	_, err := execute(t, "validate",
		"--description", filepath.Join("testdata", "description.cue"),
		"--itemdata", filepath.Join("testdata", "mixed_items.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestStatusCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	st, err := store.Open(dbPath)
	require.NoError(t, err)

	for proc := 0; proc < 2; proc++ {
		_, err = st.RecordEvent(ctx, 1, proc, status.KindSubmit)
		require.NoError(t, err)
		_, err = st.RecordEvent(ctx, 1, proc, status.KindExecute)
		require.NoError(t, err)
	}
	_, err = st.RecordEvent(ctx, 1, 0, status.KindTerminated)
	require.NoError(t, err)

	h := handle.NewClusterHandle(schedd.SubmitResult{ClusterID: 1, FirstProc: 0, Count: 2}, handle.Scope{}, nil)
	snapshot, err := json.Marshal(h)
	require.NoError(t, err)
	require.NoError(t, st.SaveHandle(ctx, 1, snapshot))
	require.NoError(t, st.Close())

	out, err := execute(t, "status", "--db", dbPath, "--cluster", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "RUNNING=1")
	assert.Contains(t, out, "COMPLETED=1")

	out, err = execute(t, "status", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "clusters: [1]")
}

func TestStatusCommand_UnknownCluster(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = execute(t, "status", "--db", dbPath, "--cluster", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", filepath.Join("testdata", "scenario.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "two-stage: 2 clusters")
}

func TestRunCommand_MissingScenario(t *testing.T) {
	_, err := execute(t, "run", filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
