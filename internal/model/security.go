package model

import "time"

// SecurityType distinguishes the two security record sources.
type SecurityType string

const (
	// SecurityCAMS is a mutual-fund unit pledged through the CAMS registrar.
	SecurityCAMS SecurityType = "CAMS"
	// SecurityRegular is a security from the internal loan scrip ledger.
	SecurityRegular SecurityType = "Regular"
)

// Security is a normalized security record of either type. Identity is
// (Type, ID).
type Security struct {
	ID                  string       `json:"id"`
	ScripID             string       `json:"scripId"`
	LoanID              string       `json:"loanId"`
	AccountID           string       `json:"accountId"`
	AttachedQuantity    float64      `json:"attachedQuantity"`
	TotalQuantity       float64      `json:"totalQuantity"`
	PledgedQuantity     float64      `json:"pledgedQuantity"`
	IsPledge            bool         `json:"isPledge"`
	PledgeTimeValue     float64      `json:"pledgeTimeValue"`
	IsActive            bool         `json:"isActive"`
	NSDLStatus          string       `json:"nsdlStatus"`
	LienMarkNo          string       `json:"lienMarkNo"`
	AMCCode             string       `json:"amcCode"`
	LienReferenceNumber string       `json:"lienReferenceNumber"`
	CurrentQuantity     float64      `json:"currentQuantity"`
	LienRefNo           string       `json:"lienRefNo"`
	SchemeCode          string       `json:"schemeCode"`
	PledgeTimeLTV       float64      `json:"pledgeTimeLtv"`
	PledgeMode          string       `json:"pledgeMode"`
	DepositoryCode      string       `json:"depositoryCode"`
	CreatedAt           *time.Time   `json:"createdAt"`
	UpdatedAt           *time.Time   `json:"updatedAt"`
	Type                SecurityType `json:"type"`

	// CAMS only.
	FolioNumber        string  `json:"folioNumber,omitempty"`
	PANNumber          string  `json:"panNumber,omitempty"`
	KfinStatus         string  `json:"kfinStatus,omitempty"`
	InvocationQuantity float64 `json:"invocationQuantity,omitempty"`
	RTAName            string  `json:"rtaName,omitempty"`
	ISIN               string  `json:"isin,omitempty"`
	MFCentralStatus    string  `json:"mfcentralStatus,omitempty"`

	// Regular only.
	DematAccountID string `json:"dematAccountId,omitempty"`
}
