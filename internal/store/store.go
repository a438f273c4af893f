// Package store reads loan, security, provider and screening records from
// the loan operations database. Every method is read-only; an empty result
// is never an error.
package store

import (
	"context"

	"github.com/sells-group/loanops/internal/model"
)

// RecordStore is the read interface consumed by the reconciliation engine.
type RecordStore interface {
	// Identifier lookups. Active loans only, newest creation time first.
	LoansByMobile(ctx context.Context, mobile string) ([]model.LoanRow, error)
	LoansByPAN(ctx context.Context, pan string) ([]model.LoanRow, error)

	// Securities attached to a loan, ordered by id.
	CamsSecurities(ctx context.Context, loanID string) ([]model.Security, error)
	LedgerSecurities(ctx context.Context, loanID string) ([]model.Security, error)

	// Provider traffic.
	ProviderRequests(ctx context.Context, entityID string) ([]model.ProviderRequest, error)
	ProviderLogs(ctx context.Context, filter model.LogFilter) ([]model.ProviderLog, error)

	// Eligibility. LatestEligibilityRequest returns nil when the provider
	// has no completed request for any of the leads.
	EligibilityLeadIDs(ctx context.Context, mobile string) ([]string, error)
	LatestEligibilityRequest(ctx context.Context, provider string, leadIDs []string) (*model.EligibilityRequest, error)
	EligibilitySecurities(ctx context.Context, requestID string) ([]model.EligibilitySecurity, error)

	// BankerCheckRows returns the flat person/location/email/check join for a loan.
	BankerCheckRows(ctx context.Context, loanID string) ([]model.BankerCheckRow, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	placeholder string
}

// WithPlaceholder sets the token substituted for missing string columns.
func WithPlaceholder(p string) Option {
	return func(o *options) { o.placeholder = p }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
