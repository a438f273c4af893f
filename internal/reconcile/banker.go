package reconcile

import (
	"context"
	"strings"

	"github.com/sells-group/loanops/internal/model"
)

// BankerCheck groups the persons, locations, emails and banker checks
// linked to a loan.
func (s *Service) BankerCheck(ctx context.Context, loanID string) (*BankerCheckResult, error) {
	var out *BankerCheckResult
	err := s.operation(ctx, "banker_check", func(ctx context.Context) error {
		var err error
		out, err = s.bankerCheck(ctx, loanID)
		return err
	})
	return out, err
}

func (s *Service) bankerCheck(ctx context.Context, loanID string) (*BankerCheckResult, error) {
	loanID = strings.TrimSpace(loanID)
	if err := validateStruct(loanRequest{LoanID: loanID}); err != nil {
		return nil, err
	}
	rows, err := fetch(ctx, s, SourceBankerChecks, func(ctx context.Context) ([]model.BankerCheckRow, error) {
		return s.store.BankerCheckRows(ctx, loanID)
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.BankerCheckRow{}
	}
	persons, checks := groupBankerRows(rows)
	return &BankerCheckResult{
		LoanID:       loanID,
		Persons:      persons,
		BankerChecks: checks,
		Data:         rows,
		Summary:      summarizeBankerChecks(rows, persons, checks),
	}, nil
}
