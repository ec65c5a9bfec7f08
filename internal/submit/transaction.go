package submit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridwork/jobflow/internal/handle"
	"github.com/gridwork/jobflow/internal/schedd"
	"github.com/gridwork/jobflow/internal/status"
)

// Transaction is an open submission window against one scheduler
// endpoint. Submissions made through the same transaction share the
// endpoint connection; the zero Transaction and a closed Transaction
// both refuse to submit.
type Transaction struct {
	submitter schedd.Submitter
	scope     handle.Scope
	source    status.EventSource
	open      bool
}

// Begin opens a submission window. The source may be nil; handles from
// a sourceless transaction cannot report live state until bound.
func Begin(submitter schedd.Submitter, scope handle.Scope, source status.EventSource) *Transaction {
	return &Transaction{
		submitter: submitter,
		scope:     scope,
		source:    source,
		open:      true,
	}
}

// Close ends the submission window. Closing twice is harmless; further
// submits fail with ErrUninitializedTransaction.
func (t *Transaction) Close() {
	t.open = false
}

// Submit creates one cluster of count jobs from the description,
// repeated per item when item data is given. The returned handle is
// bound to the transaction's endpoint and event source.
func (t *Transaction) Submit(ctx context.Context, desc Description, count int, items []Item) (*handle.ClusterHandle, error) {
	if !t.open {
		return nil, ErrUninitializedTransaction
	}
	if count < 1 {
		return nil, fmt.Errorf("count %d, need at least 1", count)
	}
	if err := CheckItemdata(items); err != nil {
		return nil, err
	}

	res, err := t.submitter.Submit(ctx, desc.Copy(), count, NormalizeItemdata(items))
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	h := handle.NewClusterHandle(res, t.scope, t.source)
	slog.Info("cluster submitted",
		"cluster_id", res.ClusterID,
		"count", res.Count,
		"token", h.Token(),
	)
	return h, nil
}

// Submit is the one-shot form: open a transaction, submit once, close.
func Submit(ctx context.Context, submitter schedd.Submitter, scope handle.Scope, source status.EventSource, desc Description, count int, items []Item) (*handle.ClusterHandle, error) {
	txn := Begin(submitter, scope, source)
	defer txn.Close()
	return txn.Submit(ctx, desc, count, items)
}
