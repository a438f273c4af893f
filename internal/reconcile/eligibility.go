package reconcile

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/loanops/internal/model"
)

const msgNoEligibility = "No eligibility requests found for the provided mobile number"

// Eligibility returns the latest completed eligibility data of every
// requested provider for the leads of a mobile number. Providers are
// independent: one that has no data or cannot be read is nil and a failed
// read is listed in failedProviders. When no provider has data the result is
// a NotFoundError carrying the nil map, whatever mix of absence and failure
// produced it.
func (s *Service) Eligibility(ctx context.Context, req EligibilityRequest) (*EligibilityResult, error) {
	var out *EligibilityResult
	err := s.operation(ctx, "eligibility", func(ctx context.Context) error {
		var err error
		out, err = s.eligibility(ctx, req)
		return err
	})
	return out, err
}

func (s *Service) eligibility(ctx context.Context, req EligibilityRequest) (*EligibilityResult, error) {
	req = req.normalized()
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	providers := model.EligibilityProviders
	if req.Provider != "" {
		providers = []string{req.Provider}
	}

	data := make(map[string]*model.ProviderEligibility, len(providers))
	for _, p := range providers {
		data[p] = nil
	}

	results := make([]*model.ProviderEligibility, len(providers))
	errs := make([]error, len(providers))

	// The lead lookup is shared, so its failure is every provider's failure.
	leads, err := fetch(ctx, s, SourceEligibility, func(ctx context.Context) ([]string, error) {
		return s.store.EligibilityLeadIDs(ctx, req.Mobile)
	})
	switch {
	case err != nil:
		for i := range providers {
			errs[i] = err
		}
	case len(leads) > 0:
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.MaxFanout)
		for i, p := range providers {
			g.Go(func() error {
				results[i], errs[i] = s.providerEligibility(gctx, p, leads)
				return nil
			})
		}
		_ = g.Wait()
	}

	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "reconcile: eligibility")
	}

	var failed []string
	found := false
	for i, p := range providers {
		if errs[i] != nil {
			s.partial("eligibility", SourceEligibility+":"+p, errs[i])
			failed = append(failed, p)
			continue
		}
		data[p] = results[i]
		if results[i] != nil {
			found = true
		}
	}

	if !found {
		return nil, &NotFoundError{Message: msgNoEligibility, Data: data}
	}
	return &EligibilityResult{
		Mobile:          req.Mobile,
		EligibilityData: data,
		Summary:         summarizeEligibility(data, failed),
	}, nil
}

// providerEligibility returns nil when the provider has no completed
// request for any of the leads.
func (s *Service) providerEligibility(ctx context.Context, provider string, leads []string) (*model.ProviderEligibility, error) {
	req, err := fetch(ctx, s, SourceEligibility, func(ctx context.Context) (*model.EligibilityRequest, error) {
		return s.store.LatestEligibilityRequest(ctx, provider, leads)
	})
	if err != nil || req == nil {
		return nil, err
	}
	secs, err := fetch(ctx, s, SourceEligibility, func(ctx context.Context) ([]model.EligibilitySecurity, error) {
		return s.store.EligibilitySecurities(ctx, req.ID)
	})
	if err != nil {
		return nil, err
	}
	eligible, value := providerTotals(secs)
	return &model.ProviderEligibility{
		Provider:            provider,
		Request:             *req,
		Securities:          secs,
		TotalEligibleAmount: eligible,
		TotalSecurityValue:  value,
	}, nil
}
