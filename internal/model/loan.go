package model

import "time"

// LoanStatus is the display status of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// LoanStatusFromCode maps the stored integer status to a LoanStatus.
//
// Unknown or missing codes map to LoanStatusActive. Whether that default is
// intended upstream is unresolved; it is kept so existing dashboards render
// the same values.
func LoanStatusFromCode(code *int64) LoanStatus {
	if code == nil {
		return LoanStatusActive
	}
	switch *code {
	case 1:
		return LoanStatusPending
	case 2:
		return LoanStatusActive
	case 3:
		return LoanStatusCompleted
	case 4:
		return LoanStatusDefaulted
	default:
		return LoanStatusActive
	}
}

// LoanRow is one row of the identifier lookup join, nulls preserved.
type LoanRow struct {
	ID                   int64
	LoanNumber           *string
	ApprovedAmount       *float64
	DisbursedAmount      *float64
	ApprovedOn           *time.Time
	DisbursedOn          *time.Time
	InterestRate         *float64
	Status               *int64
	CreationTime         *time.Time
	Tenure               *int64
	EMIAmount            *float64
	InstallmentAmount    *float64
	OutstandingAmount    *float64
	MaturityDate         *time.Time
	FirstInstallmentDate *time.Time
	ClientName           *string
	ClientPAN            *string
	Phone                *string
}

// Client is the borrower projected from the first matching loan row.
type Client struct {
	Name   string `json:"name"`
	PAN    string `json:"pan"`
	Mobile string `json:"mobile"`
}

// Loan is the normalized loan returned to callers.
type Loan struct {
	ID                   string     `json:"id"`
	LoanNumber           string     `json:"loanNumber"`
	Amount               float64    `json:"amount"`
	StartDate            *time.Time `json:"startDate"`
	InterestRate         float64    `json:"interestRate"`
	Status               LoanStatus `json:"status"`
	CreationTime         *time.Time `json:"creationTime"`
	Tenure               int64      `json:"tenure"`
	EMI                  float64    `json:"emi"`
	OutstandingAmount    float64    `json:"outstandingAmount"`
	MaturityDate         *time.Time `json:"maturityDate"`
	FirstInstallmentDate *time.Time `json:"firstInstallmentDate"`
	DisbursedAmount      float64    `json:"disbursedAmount"`
	ApprovedAmount       float64    `json:"approvedAmount"`
}

// CustomerData is the result of resolving a PAN or mobile number.
type CustomerData struct {
	Client Client `json:"client"`
	Loans  []Loan `json:"loans"`
}
