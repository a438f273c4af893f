package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/rotisserie/eris"

	"github.com/sells-group/loanops/internal/db"
	"github.com/sells-group/loanops/internal/model"
)

// PostgresStore implements RecordStore using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	norm    model.Normalizer
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig, opts ...Option) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute
	// Lookups never write; reject accidental writes at the session level.
	pgxCfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresFromPool(pool, opts...), nil
}

func newPostgresFromPool(pool db.Pool, opts ...Option) *PostgresStore {
	o := buildOptions(opts)
	return &PostgresStore{pool: pool, norm: model.NewNormalizer(o.placeholder), closeFn: pool.Close}
}

// Pool returns the underlying database pool.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

func pg(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// LoansByMobile implements RecordStore.
func (s *PostgresStore) LoansByMobile(ctx context.Context, mobile string) ([]model.LoanRow, error) {
	rows, err := db.CollectRows(ctx, s.pool, "loans by mobile", pg(queryLoansByMobile),
		func(r pgx.Rows) (model.LoanRow, error) { return scanLoanRow(r) }, mobile)
	return rows, eris.Wrap(err, "postgres: loans by mobile")
}

// LoansByPAN implements RecordStore.
func (s *PostgresStore) LoansByPAN(ctx context.Context, pan string) ([]model.LoanRow, error) {
	rows, err := db.CollectRows(ctx, s.pool, "loans by pan", pg(queryLoansByPAN),
		func(r pgx.Rows) (model.LoanRow, error) { return scanLoanRow(r) }, pan)
	return rows, eris.Wrap(err, "postgres: loans by pan")
}

// CamsSecurities implements RecordStore.
func (s *PostgresStore) CamsSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	out, err := db.CollectRows(ctx, s.pool, "cams securities", pg(queryCamsSecurities),
		func(r pgx.Rows) (model.Security, error) { return scanCamsSecurity(r, s.norm) }, loanID)
	return out, eris.Wrap(err, "postgres: cams securities")
}

// LedgerSecurities implements RecordStore.
func (s *PostgresStore) LedgerSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	out, err := db.CollectRows(ctx, s.pool, "ledger securities", pg(queryLedgerSecurities),
		func(r pgx.Rows) (model.Security, error) { return scanLedgerSecurity(r, s.norm) }, loanID)
	return out, eris.Wrap(err, "postgres: ledger securities")
}

// ProviderRequests implements RecordStore.
func (s *PostgresStore) ProviderRequests(ctx context.Context, entityID string) ([]model.ProviderRequest, error) {
	out, err := db.CollectRows(ctx, s.pool, "provider requests", pg(queryProviderRequests),
		func(r pgx.Rows) (model.ProviderRequest, error) { return scanProviderRequest(r, s.norm) }, entityID)
	return out, eris.Wrap(err, "postgres: provider requests")
}

// ProviderLogs implements RecordStore.
func (s *PostgresStore) ProviderLogs(ctx context.Context, filter model.LogFilter) ([]model.ProviderLog, error) {
	query, args := queryProviderLogs, []any{filter.EntityID}
	if filter.ExcludeTypePattern != "" {
		query, args = queryProviderLogsExcluding, []any{filter.EntityID, filter.ExcludeTypePattern}
	}
	out, err := db.CollectRows(ctx, s.pool, "provider logs", pg(query),
		func(r pgx.Rows) (model.ProviderLog, error) { return scanProviderLog(r, s.norm) }, args...)
	return out, eris.Wrapf(err, "postgres: provider logs for %s", filter.EntityID)
}

// EligibilityLeadIDs implements RecordStore.
func (s *PostgresStore) EligibilityLeadIDs(ctx context.Context, mobile string) ([]string, error) {
	out, err := db.CollectRows(ctx, s.pool, "eligibility leads", pg(queryEligibilityLeadIDs),
		func(r pgx.Rows) (string, error) {
			var id nullText
			err := r.Scan(&id)
			return id.String, err
		}, mobile)
	return out, eris.Wrap(err, "postgres: eligibility leads")
}

// LatestEligibilityRequest implements RecordStore.
func (s *PostgresStore) LatestEligibilityRequest(ctx context.Context, provider string, leadIDs []string) (*model.EligibilityRequest, error) {
	if len(leadIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(queryLatestEligibilityRequest, provider, leadIDs)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: expand eligibility request query")
	}
	req, err := scanEligibilityRequest(s.pool.QueryRow(ctx, pg(query), args...), s.norm)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: latest %s eligibility request", provider)
	}
	return &req, nil
}

// EligibilitySecurities implements RecordStore.
func (s *PostgresStore) EligibilitySecurities(ctx context.Context, requestID string) ([]model.EligibilitySecurity, error) {
	out, err := db.CollectRows(ctx, s.pool, "eligibility securities", pg(queryEligibilitySecurities),
		func(r pgx.Rows) (model.EligibilitySecurity, error) { return scanEligibilitySecurity(r, s.norm) }, requestID)
	return out, eris.Wrap(err, "postgres: eligibility securities")
}

// BankerCheckRows implements RecordStore.
func (s *PostgresStore) BankerCheckRows(ctx context.Context, loanID string) ([]model.BankerCheckRow, error) {
	out, err := db.CollectRows(ctx, s.pool, "banker check rows", pg(queryBankerCheckRows),
		func(r pgx.Rows) (model.BankerCheckRow, error) { return scanBankerCheckRow(r) }, loanID)
	return out, eris.Wrap(err, "postgres: banker check rows")
}

// Ping implements RecordStore.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

// Close implements RecordStore.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

var _ RecordStore = (*PostgresStore)(nil)
