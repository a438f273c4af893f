package model

import "time"

// Eligibility providers.
const (
	ProviderAA  = "AA"
	ProviderMFC = "MFC"
)

// EligibilityProviders lists every provider queried when none is specified.
var EligibilityProviders = []string{ProviderAA, ProviderMFC}

// EligibilityRequest is the latest completed eligibility fetch for a lead.
type EligibilityRequest struct {
	ID        string     `json:"id"`
	EntityID  string     `json:"entityId"`
	Provider  string     `json:"provider"`
	State     string     `json:"state"`
	CreatedAt *time.Time `json:"createdAt"`
}

// EligibilitySecurity is one security assessed by an eligibility request.
type EligibilitySecurity struct {
	ID             string     `json:"id"`
	RequestID      string     `json:"requestId"`
	SecurityType   string     `json:"securityType"`
	SecurityValue  float64    `json:"securityValue"`
	EligibleAmount float64    `json:"eligibleAmount"`
	LoanToValue    float64    `json:"loanToValue"`
	Remarks        string     `json:"remarks"`
	CreatedAt      *time.Time `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

// ProviderEligibility is the eligibility data of one provider.
type ProviderEligibility struct {
	Provider            string                `json:"provider"`
	Request             EligibilityRequest    `json:"request"`
	Securities          []EligibilitySecurity `json:"securities"`
	TotalEligibleAmount float64               `json:"totalEligibleAmount"`
	TotalSecurityValue  float64               `json:"totalSecurityValue"`
}
