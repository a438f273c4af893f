package reconcile

import (
	"time"

	"github.com/sells-group/loanops/internal/model"
)

// SecuritiesResult is the merged security view of one loan.
type SecuritiesResult struct {
	LoanID         string           `json:"loanId"`
	CamsSecurities []model.Security `json:"camsSecurities"`
	LoanSecurities []model.Security `json:"loanSecurities"`
	// ProviderRequests is nil when the source failed.
	ProviderRequests []model.ProviderRequest `json:"providerRequests"`
	ProviderLogs     []model.ProviderLog     `json:"providerLogs"`
	// FailedPANs lists the keys whose provider logs could not be read.
	FailedPANs []string          `json:"failedPans,omitempty"`
	Summary    SecuritiesSummary `json:"summary"`
}

// SecuritiesSummary is computed from the records of a SecuritiesResult.
type SecuritiesSummary struct {
	TotalSecurities       int      `json:"totalSecurities"`
	TotalCamsSecurities   int      `json:"totalCamsSecurities"`
	TotalLoanSecurities   int      `json:"totalLoanSecurities"`
	TotalValue            float64  `json:"totalValue"`
	TotalPledgedQuantity  float64  `json:"totalPledgedQuantity"`
	TotalCamsValue        float64  `json:"totalCamsValue"`
	TotalLoanValue        float64  `json:"totalLoanValue"`
	TotalCamsPledged      float64  `json:"totalCamsPledged"`
	TotalLoanPledged      float64  `json:"totalLoanPledged"`
	ActiveCamsSecurities  int      `json:"activeCamsSecurities"`
	ActiveLoanSecurities  int      `json:"activeLoanSecurities"`
	PledgedCamsSecurities int      `json:"pledgedCamsSecurities"`
	PledgedLoanSecurities int      `json:"pledgedLoanSecurities"`
	TotalProviderRequests int      `json:"totalProviderRequests"`
	TotalProviderLogs     int      `json:"totalProviderLogs"`
	UniquePANNumbers      int      `json:"uniquePanNumbers"`
	PANNumbers            []string `json:"panNumbers"`
	MissingSources        []string `json:"missingSources"`
}

// EligibilityResult holds per-provider eligibility data keyed by provider.
// A nil entry means the provider had no data or could not be read.
type EligibilityResult struct {
	Mobile          string                                `json:"mobile"`
	EligibilityData map[string]*model.ProviderEligibility `json:"eligibilityData"`
	Summary         EligibilitySummary                    `json:"summary"`
}

// EligibilitySummary aggregates the available providers.
type EligibilitySummary struct {
	TotalProviders      int      `json:"totalProviders"`
	AvailableProviders  []string `json:"availableProviders"`
	MissingProviders    []string `json:"missingProviders"`
	FailedProviders     []string `json:"failedProviders,omitempty"`
	TotalEligibleAmount float64  `json:"totalEligibleAmount"`
	TotalSecurityValue  float64  `json:"totalSecurityValue"`
}

// BankerCheckResult groups the banker-check join of one loan.
type BankerCheckResult struct {
	LoanID       string                 `json:"loanId"`
	Persons      []model.Person         `json:"persons"`
	BankerChecks []model.BankerCheck    `json:"bankerChecks"`
	Data         []model.BankerCheckRow `json:"data"`
	Summary      BankerCheckSummary     `json:"summary"`
}

// BankerCheckSummary counts persons, checks and their breakdowns.
type BankerCheckSummary struct {
	TotalRecords          int            `json:"totalRecords"`
	TotalPersons          int            `json:"totalPersons"`
	TotalBankerChecks     int            `json:"totalBankerChecks"`
	TotalLocations        int            `json:"totalLocations"`
	TotalEmails           int            `json:"totalEmails"`
	ActiveBankerChecks    int            `json:"activeBankerChecks"`
	SeverityBreakdown     map[string]int `json:"severityBreakdown"`
	SecurityTypeBreakdown map[string]int `json:"securityTypeBreakdown"`
	LocationTypeBreakdown map[string]int `json:"locationTypeBreakdown"`
}

// ProviderLogsResult lists the provider logs of one PAN, newest first.
type ProviderLogsResult struct {
	PAN          string              `json:"pan"`
	ProviderLogs []model.ProviderLog `json:"providerLogs"`
	Summary      ProviderLogsSummary `json:"summary"`
}

// ProviderLogsSummary breaks provider logs down by status, provider and type.
type ProviderLogsSummary struct {
	TotalLogs           int            `json:"totalLogs"`
	UniqueProviders     int            `json:"uniqueProviders"`
	UniqueTypes         int            `json:"uniqueTypes"`
	SuccessfulRequests  int            `json:"successfulRequests"`
	FailedRequests      int            `json:"failedRequests"`
	StatusBreakdown     map[string]int `json:"statusBreakdown"`
	ProviderBreakdown   map[string]int `json:"providerBreakdown"`
	HTTPStatusBreakdown map[string]int `json:"httpStatusBreakdown"`
	TypeBreakdown       map[string]int `json:"typeBreakdown"`
	LatestLogDate       *time.Time     `json:"latestLogDate"`
	OldestLogDate       *time.Time     `json:"oldestLogDate"`
}

// Outcome sections.
const (
	SectionSecurities   = "securities"
	SectionEligibility  = "eligibility"
	SectionBankerCheck  = "bankerCheck"
	SectionProviderLogs = "providerLogs"
)

// Outcome is the full view of a customer: the resolved loans plus every
// lookup for the most recent loan. Sections that could not be produced are
// nil and named in MissingSections.
type Outcome struct {
	Customer        *model.CustomerData `json:"customer"`
	LoanID          string              `json:"loanId"`
	Securities      *SecuritiesResult   `json:"securities"`
	Eligibility     *EligibilityResult  `json:"eligibility"`
	BankerCheck     *BankerCheckResult  `json:"bankerCheck"`
	ProviderLogs    *ProviderLogsResult `json:"providerLogs"`
	MissingSections []string            `json:"missingSections"`
}
