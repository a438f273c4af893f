package reconcile

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/loanops/internal/model"
)

const unknownLabel = "Unknown"

type securityTotals struct {
	count, active, pledged int
	value, pledgedQty      decimal.Decimal
}

func totalSecurities(secs []model.Security) securityTotals {
	t := securityTotals{count: len(secs), value: decimal.Zero, pledgedQty: decimal.Zero}
	for _, sec := range secs {
		t.value = t.value.Add(decimal.NewFromFloat(sec.PledgeTimeValue))
		t.pledgedQty = t.pledgedQty.Add(decimal.NewFromFloat(sec.PledgedQuantity))
		if sec.IsActive {
			t.active++
		}
		if sec.IsPledge {
			t.pledged++
		}
	}
	return t
}

func summarizeSecurities(r *SecuritiesResult, pans, missing []string) SecuritiesSummary {
	cams := totalSecurities(r.CamsSecurities)
	ledger := totalSecurities(r.LoanSecurities)
	if pans == nil {
		pans = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return SecuritiesSummary{
		TotalSecurities:       cams.count + ledger.count,
		TotalCamsSecurities:   cams.count,
		TotalLoanSecurities:   ledger.count,
		TotalValue:            cams.value.Add(ledger.value).InexactFloat64(),
		TotalPledgedQuantity:  cams.pledgedQty.Add(ledger.pledgedQty).InexactFloat64(),
		TotalCamsValue:        cams.value.InexactFloat64(),
		TotalLoanValue:        ledger.value.InexactFloat64(),
		TotalCamsPledged:      cams.pledgedQty.InexactFloat64(),
		TotalLoanPledged:      ledger.pledgedQty.InexactFloat64(),
		ActiveCamsSecurities:  cams.active,
		ActiveLoanSecurities:  ledger.active,
		PledgedCamsSecurities: cams.pledged,
		PledgedLoanSecurities: ledger.pledged,
		TotalProviderRequests: len(r.ProviderRequests),
		TotalProviderLogs:     len(r.ProviderLogs),
		UniquePANNumbers:      len(pans),
		PANNumbers:            pans,
		MissingSources:        missing,
	}
}

// providerTotals sums the eligible amount and security value of one
// provider's securities.
func providerTotals(secs []model.EligibilitySecurity) (eligible, value float64) {
	e, v := decimal.Zero, decimal.Zero
	for _, sec := range secs {
		e = e.Add(decimal.NewFromFloat(sec.EligibleAmount))
		v = v.Add(decimal.NewFromFloat(sec.SecurityValue))
	}
	return e.InexactFloat64(), v.InexactFloat64()
}

func summarizeEligibility(data map[string]*model.ProviderEligibility, failed []string) EligibilitySummary {
	providers := make([]string, 0, len(data))
	for p := range data {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	sum := EligibilitySummary{
		TotalProviders:     len(data),
		AvailableProviders: []string{},
		MissingProviders:   []string{},
		FailedProviders:    failed,
	}
	eligible, value := decimal.Zero, decimal.Zero
	for _, p := range providers {
		pe := data[p]
		if pe == nil {
			sum.MissingProviders = append(sum.MissingProviders, p)
			continue
		}
		sum.AvailableProviders = append(sum.AvailableProviders, p)
		eligible = eligible.Add(decimal.NewFromFloat(pe.TotalEligibleAmount))
		value = value.Add(decimal.NewFromFloat(pe.TotalSecurityValue))
	}
	sum.TotalEligibleAmount = eligible.InexactFloat64()
	sum.TotalSecurityValue = value.InexactFloat64()
	return sum
}

func summarizeBankerChecks(rows []model.BankerCheckRow, persons []model.Person, checks []model.BankerCheck) BankerCheckSummary {
	sum := BankerCheckSummary{
		TotalRecords:          len(rows),
		TotalPersons:          len(persons),
		TotalBankerChecks:     len(checks),
		SeverityBreakdown:     map[string]int{},
		SecurityTypeBreakdown: map[string]int{},
		LocationTypeBreakdown: map[string]int{},
	}
	for _, p := range persons {
		sum.TotalLocations += len(p.Locations)
		sum.TotalEmails += len(p.Emails)
	}
	for _, c := range checks {
		if c.Severity != "" {
			sum.ActiveBankerChecks++
		}
		sum.SeverityBreakdown[labelOrUnknown(c.Severity)]++
	}
	for _, r := range rows {
		sum.SecurityTypeBreakdown[labelOrUnknown(r.SecurityType)]++
		if r.LocationType != "" {
			sum.LocationTypeBreakdown[r.LocationType]++
		}
	}
	return sum
}

// summarizeProviderLogs expects logs newest first.
func summarizeProviderLogs(logs []model.ProviderLog) ProviderLogsSummary {
	sum := ProviderLogsSummary{
		TotalLogs:           len(logs),
		StatusBreakdown:     map[string]int{},
		ProviderBreakdown:   map[string]int{},
		HTTPStatusBreakdown: map[string]int{},
		TypeBreakdown:       map[string]int{},
	}
	for _, l := range logs {
		if successful(l) {
			sum.SuccessfulRequests++
		} else {
			sum.FailedRequests++
		}
		sum.StatusBreakdown[l.Status]++
		sum.ProviderBreakdown[l.Provider]++
		sum.HTTPStatusBreakdown[l.HTTPStatus]++
		sum.TypeBreakdown[l.Type]++
	}
	sum.UniqueProviders = len(sum.ProviderBreakdown)
	sum.UniqueTypes = len(sum.TypeBreakdown)
	if len(logs) > 0 {
		sum.LatestLogDate = logs[0].CreatedAt
		sum.OldestLogDate = logs[len(logs)-1].CreatedAt
	}
	return sum
}

func successful(l model.ProviderLog) bool {
	return l.HTTPStatus == "200" || strings.Contains(strings.ToLower(l.Status), "success")
}

func labelOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownLabel
	}
	return s
}
