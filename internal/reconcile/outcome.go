package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome resolves a customer and runs every lookup for their most recent
// loan concurrently: securities and banker checks by loan id, eligibility by
// the customer's mobile and provider logs by the customer's PAN. Only the
// resolution is required; a section that fails or finds nothing is left nil
// and listed in MissingSections.
func (s *Service) Outcome(ctx context.Context, req ResolveRequest) (*Outcome, error) {
	var out *Outcome
	err := s.operation(ctx, "outcome", func(ctx context.Context) error {
		var err error
		out, err = s.outcome(ctx, req)
		return err
	})
	return out, err
}

func (s *Service) outcome(ctx context.Context, req ResolveRequest) (*Outcome, error) {
	customer, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Customer: customer, LoanID: customer.Loans[0].ID}
	mobile := customer.Client.Mobile
	pan := customer.Client.PAN

	var (
		secErr, eligErr, bankErr, logsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxFanout)
	g.Go(func() error {
		out.Securities, secErr = s.Securities(gctx, out.LoanID)
		return nil
	})
	g.Go(func() error {
		out.BankerCheck, bankErr = s.BankerCheck(gctx, out.LoanID)
		return nil
	})
	if !s.norm.IsPlaceholder(mobile) {
		g.Go(func() error {
			out.Eligibility, eligErr = s.Eligibility(gctx, EligibilityRequest{Mobile: mobile})
			return nil
		})
	}
	if !s.norm.IsPlaceholder(pan) {
		g.Go(func() error {
			out.ProviderLogs, logsErr = s.ProviderLogs(gctx, pan)
			return nil
		})
	}
	_ = g.Wait()

	out.MissingSections = []string{}
	for _, sec := range []struct {
		name    string
		present bool
		err     error
	}{
		{SectionSecurities, out.Securities != nil, secErr},
		{SectionEligibility, out.Eligibility != nil, eligErr},
		{SectionBankerCheck, out.BankerCheck != nil, bankErr},
		{SectionProviderLogs, out.ProviderLogs != nil, logsErr},
	} {
		if sec.present {
			continue
		}
		out.MissingSections = append(out.MissingSections, sec.name)
		if sec.err != nil && !IsNotFound(sec.err) {
			s.partial("outcome", sec.name, sec.err)
		}
	}
	return out, nil
}
