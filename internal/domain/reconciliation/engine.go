package reconciliation

import "context"

// Request identifies the party ledger being reconciled and carries the
// allocations to post
type Request struct {
	Company           string       `json:"company"`
	Party             string       `json:"party"`
	PartyType         string       `json:"party_type"`
	ReceivableAccount string       `json:"receivable_payable_account"`
	Allocations       []Allocation `json:"allocations"`
}

// Options tune a single reconciliation run. SkipModifiedCheck lets a
// zero-allocation run proceed even when the underlying documents changed
// after the references were fetched; the run writes no amounts so a
// stale snapshot cannot corrupt balances.
type Options struct {
	SkipModifiedCheck bool
}

// Engine posts reconciliation allocations against the ledger
type Engine interface {
	Reconcile(ctx context.Context, req Request, opts Options) error
}
