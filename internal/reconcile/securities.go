package reconcile

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/loanops/internal/model"
)

// Securities merges the CAMS and ledger securities of a loan with the
// provider traffic correlated through the PANs of its CAMS securities.
// Provider requests and logs are best effort; their failures are reported in
// the summary's missingSources.
func (s *Service) Securities(ctx context.Context, loanID string) (*SecuritiesResult, error) {
	var out *SecuritiesResult
	err := s.operation(ctx, "securities", func(ctx context.Context) error {
		var err error
		out, err = s.securities(ctx, loanID)
		return err
	})
	return out, err
}

func (s *Service) securities(ctx context.Context, loanID string) (*SecuritiesResult, error) {
	loanID = strings.TrimSpace(loanID)
	if err := validateStruct(loanRequest{LoanID: loanID}); err != nil {
		return nil, err
	}

	var (
		cams, ledger []model.Security
		requests     []model.ProviderRequest
		requestsErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxFanout)
	g.Go(func() error {
		var err error
		cams, err = fetch(gctx, s, SourceCamsSecurities, func(ctx context.Context) ([]model.Security, error) {
			return s.store.CamsSecurities(ctx, loanID)
		})
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = fetch(gctx, s, SourceLedgerSecurities, func(ctx context.Context) ([]model.Security, error) {
			return s.store.LedgerSecurities(ctx, loanID)
		})
		return err
	})
	g.Go(func() error {
		requests, requestsErr = fetch(gctx, s, SourceProviderRequests, func(ctx context.Context) ([]model.ProviderRequest, error) {
			return s.store.ProviderRequests(ctx, loanID)
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var missing []string
	if requestsErr != nil {
		s.partial("securities", SourceProviderRequests, requestsErr)
		missing = append(missing, SourceProviderRequests)
		requests = nil
	}

	if cams == nil {
		cams = []model.Security{}
	}
	if ledger == nil {
		ledger = []model.Security{}
	}

	pans := s.panNumbers(cams)
	corr := s.correlateLogs(ctx, "securities", pans)
	if len(corr.FailedKeys) > 0 {
		missing = append(missing, SourceProviderLogs)
	}

	res := &SecuritiesResult{
		LoanID:           loanID,
		CamsSecurities:   cams,
		LoanSecurities:   ledger,
		ProviderRequests: requests,
		ProviderLogs:     corr.Logs,
		FailedPANs:       corr.FailedKeys,
	}
	res.Summary = summarizeSecurities(res, pans, missing)
	return res, nil
}
