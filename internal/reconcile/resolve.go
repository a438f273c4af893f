package reconcile

import (
	"context"
	"strconv"

	"github.com/sells-group/loanops/internal/model"
)

const msgNoActiveLoans = "No active loans found for the provided details"

// Resolve finds the active loans of the customer identified by exactly one of
// PAN or mobile, newest first.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (*model.CustomerData, error) {
	var out *model.CustomerData
	err := s.operation(ctx, "resolve", func(ctx context.Context) error {
		var err error
		out, err = s.resolve(ctx, req)
		return err
	})
	return out, err
}

func (s *Service) resolve(ctx context.Context, req ResolveRequest) (*model.CustomerData, error) {
	req = req.normalized()
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	rows, err := fetch(ctx, s, SourceLoans, func(ctx context.Context) ([]model.LoanRow, error) {
		if req.Mobile != "" {
			return s.store.LoansByMobile(ctx, req.Mobile)
		}
		return s.store.LoansByPAN(ctx, req.PAN)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Message: msgNoActiveLoans}
	}
	return s.customerFromRows(rows, req), nil
}

// customerFromRows projects the client from the first row and normalizes
// every distinct loan, keeping the store's ordering.
func (s *Service) customerFromRows(rows []model.LoanRow, req ResolveRequest) *model.CustomerData {
	first := rows[0]
	client := model.Client{
		Name:   model.FirstNonEmpty("Unknown", first.ClientName),
		PAN:    model.FirstNonEmpty(s.norm.Placeholder, first.ClientPAN, &req.PAN),
		Mobile: model.FirstNonEmpty(s.norm.Placeholder, first.Phone, &req.Mobile),
	}

	seen := make(map[int64]struct{}, len(rows))
	loans := make([]model.Loan, 0, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		loans = append(loans, s.loanFromRow(r))
	}
	return &model.CustomerData{Client: client, Loans: loans}
}

func (s *Service) loanFromRow(r model.LoanRow) model.Loan {
	amount := r.ApprovedAmount
	if amount == nil {
		amount = r.DisbursedAmount
	}
	emi := r.EMIAmount
	if emi == nil {
		emi = r.InstallmentAmount
	}
	start := r.DisbursedOn
	if start == nil {
		start = r.ApprovedOn
	}
	var tenure int64
	if r.Tenure != nil {
		tenure = *r.Tenure
	}
	return model.Loan{
		ID:                   strconv.FormatInt(r.ID, 10),
		LoanNumber:           s.norm.Str(r.LoanNumber),
		Amount:               s.norm.Num(amount),
		StartDate:            s.norm.Time(start),
		InterestRate:         s.norm.Num(r.InterestRate),
		Status:               model.LoanStatusFromCode(r.Status),
		CreationTime:         s.norm.Time(r.CreationTime),
		Tenure:               tenure,
		EMI:                  s.norm.Num(emi),
		OutstandingAmount:    s.norm.Num(r.OutstandingAmount),
		MaturityDate:         s.norm.Time(r.MaturityDate),
		FirstInstallmentDate: s.norm.Time(r.FirstInstallmentDate),
		DisbursedAmount:      s.norm.Num(r.DisbursedAmount),
		ApprovedAmount:       s.norm.Num(r.ApprovedAmount),
	}
}
