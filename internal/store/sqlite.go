package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/loanops/internal/model"
)

// SQLiteStore implements RecordStore using modernc.org/sqlite. It backs the
// development database seeded from fixtures and the end-to-end tests.
type SQLiteStore struct {
	db   *sqlx.DB
	norm model.Normalizer
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string, opts ...Option) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	o := buildOptions(opts)
	return &SQLiteStore{db: db, norm: model.NewNormalizer(o.placeholder)}, nil
}

// DB exposes the handle for fixture loading.
func (s *SQLiteStore) DB() *sqlx.DB {
	return s.db
}

// EnsureSchema creates the development schema if it does not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return eris.Wrap(err, "sqlite: ensure schema")
}

func collectSQLite[T any](ctx context.Context, s *SQLiteStore, label, query string, scan func(*sqlx.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", label)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s", label)
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "sqlite: iterate %s", label)
}

// LoansByMobile implements RecordStore.
func (s *SQLiteStore) LoansByMobile(ctx context.Context, mobile string) ([]model.LoanRow, error) {
	return collectSQLite(ctx, s, "loans by mobile", queryLoansByMobile,
		func(r *sqlx.Rows) (model.LoanRow, error) { return scanLoanRow(r) }, mobile)
}

// LoansByPAN implements RecordStore.
func (s *SQLiteStore) LoansByPAN(ctx context.Context, pan string) ([]model.LoanRow, error) {
	return collectSQLite(ctx, s, "loans by pan", queryLoansByPAN,
		func(r *sqlx.Rows) (model.LoanRow, error) { return scanLoanRow(r) }, pan)
}

// CamsSecurities implements RecordStore.
func (s *SQLiteStore) CamsSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	return collectSQLite(ctx, s, "cams securities", queryCamsSecurities,
		func(r *sqlx.Rows) (model.Security, error) { return scanCamsSecurity(r, s.norm) }, loanID)
}

// LedgerSecurities implements RecordStore.
func (s *SQLiteStore) LedgerSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	return collectSQLite(ctx, s, "ledger securities", queryLedgerSecurities,
		func(r *sqlx.Rows) (model.Security, error) { return scanLedgerSecurity(r, s.norm) }, loanID)
}

// ProviderRequests implements RecordStore.
func (s *SQLiteStore) ProviderRequests(ctx context.Context, entityID string) ([]model.ProviderRequest, error) {
	return collectSQLite(ctx, s, "provider requests", queryProviderRequests,
		func(r *sqlx.Rows) (model.ProviderRequest, error) { return scanProviderRequest(r, s.norm) }, entityID)
}

// ProviderLogs implements RecordStore.
func (s *SQLiteStore) ProviderLogs(ctx context.Context, filter model.LogFilter) ([]model.ProviderLog, error) {
	query, args := queryProviderLogs, []any{filter.EntityID}
	if filter.ExcludeTypePattern != "" {
		query, args = queryProviderLogsExcluding, []any{filter.EntityID, filter.ExcludeTypePattern}
	}
	return collectSQLite(ctx, s, "provider logs", query,
		func(r *sqlx.Rows) (model.ProviderLog, error) { return scanProviderLog(r, s.norm) }, args...)
}

// EligibilityLeadIDs implements RecordStore.
func (s *SQLiteStore) EligibilityLeadIDs(ctx context.Context, mobile string) ([]string, error) {
	return collectSQLite(ctx, s, "eligibility leads", queryEligibilityLeadIDs,
		func(r *sqlx.Rows) (string, error) {
			var id nullText
			err := r.Scan(&id)
			return id.String, err
		}, mobile)
}

// LatestEligibilityRequest implements RecordStore.
func (s *SQLiteStore) LatestEligibilityRequest(ctx context.Context, provider string, leadIDs []string) (*model.EligibilityRequest, error) {
	if len(leadIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(queryLatestEligibilityRequest, provider, leadIDs)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: expand eligibility request query")
	}
	req, err := scanEligibilityRequest(s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...), s.norm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: latest %s eligibility request", provider)
	}
	return &req, nil
}

// EligibilitySecurities implements RecordStore.
func (s *SQLiteStore) EligibilitySecurities(ctx context.Context, requestID string) ([]model.EligibilitySecurity, error) {
	return collectSQLite(ctx, s, "eligibility securities", queryEligibilitySecurities,
		func(r *sqlx.Rows) (model.EligibilitySecurity, error) { return scanEligibilitySecurity(r, s.norm) }, requestID)
}

// BankerCheckRows implements RecordStore.
func (s *SQLiteStore) BankerCheckRows(ctx context.Context, loanID string) ([]model.BankerCheckRow, error) {
	return collectSQLite(ctx, s, "banker check rows", queryBankerCheckRows,
		func(r *sqlx.Rows) (model.BankerCheckRow, error) { return scanBankerCheckRow(r) }, loanID)
}

// Ping implements RecordStore.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

// Close implements RecordStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ RecordStore = (*SQLiteStore)(nil)
