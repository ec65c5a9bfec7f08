package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwork/jobflow/internal/handle"
	"github.com/gridwork/jobflow/internal/status"
	"github.com/gridwork/jobflow/internal/store"
)

// statusResult is the JSON payload of the status command.
type statusResult struct {
	ClusterID  int64          `json:"cluster_id"`
	Count      int            `json:"count"`
	Constraint string         `json:"constraint"`
	Statuses   map[string]int `json:"statuses"`
}

// NewStatusCommand creates the status command: replay a cluster's
// journal and print how many jobs are in each state.
func NewStatusCommand(opts *RootOptions) *cobra.Command {
	var (
		dbPath    string
		clusterID int64
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-state job counts for a journaled cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}

			st, err := store.Open(dbPath)
			if err != nil {
				formatter.Error(ErrCodeNotFound, err.Error(), nil)
				return WrapExitError(ExitCommandError, "open journal", err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if clusterID == 0 {
				ids, err := st.Clusters(ctx)
				if err != nil {
					formatter.Error(ErrCodeGeneric, err.Error(), nil)
					return WrapExitError(ExitCommandError, "list clusters", err)
				}
				if opts.Format == "json" {
					return formatter.Success(ids)
				}
				return formatter.Success(fmt.Sprintf("clusters: %v", ids))
			}

			snapshot, err := st.LoadHandle(ctx, clusterID)
			if err != nil {
				formatter.Error(ErrCodeNotFound, err.Error(), nil)
				return WrapExitError(ExitFailure, "load handle", err)
			}
			h, err := handle.Restore(snapshot)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, "restore handle", err)
			}
			h.Bind(st)

			cs, err := h.State(ctx)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, "read state", err)
			}
			counts, err := cs.Counts(ctx)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitFailure, "count statuses", err)
			}

			named := make(map[string]int, len(counts))
			for s, n := range counts {
				named[s.String()] = n
			}
			if opts.Format == "json" {
				return formatter.Success(statusResult{
					ClusterID:  h.ClusterID(),
					Count:      h.Count(),
					Constraint: h.ConstraintString(),
					Statuses:   named,
				})
			}
			return formatter.Success(formatCounts(h.ClusterID(), counts))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the journal database (required)")
	cmd.Flags().Int64Var(&clusterID, "cluster", 0, "cluster to inspect; omit to list clusters")
	cmd.MarkFlagRequired("db")

	return cmd
}

func formatCounts(clusterID int64, counts map[status.JobStatus]int) string {
	keys := make([]status.JobStatus, 0, len(counts))
	for s := range counts {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, 0, len(keys))
	for _, s := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
	}
	return fmt.Sprintf("cluster %d: %s", clusterID, strings.Join(parts, " "))
}
