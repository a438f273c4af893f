package main

import (
	"encoding/json"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/loanops/internal/model"
	"github.com/sells-group/loanops/internal/reconcile"
)

// Output formats for lookup results.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// render writes doc to w in the requested format.
func render(w io.Writer, format string, doc any) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(doc), "render json")
	case formatYAML:
		out, err := toYAML(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return eris.Wrap(err, "render yaml")
	case formatText:
		return renderText(w, doc)
	default:
		return eris.Errorf("unknown output format %q (want json, yaml or text)", format)
	}
}

// toYAML converts doc through its JSON form so YAML keys match the API
// field names and keep their order.
func toYAML(doc any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "render yaml: encode")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, eris.Wrap(err, "render yaml: decode")
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	return out, eris.Wrap(err, "render yaml: marshal")
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func renderText(w io.Writer, doc any) error {
	p := message.NewPrinter(language.English)
	switch d := doc.(type) {
	case *model.CustomerData:
		p.Fprintf(w, "Customer:  %s\nPAN:       %s\nMobile:    %s\nLoans:     %d\n",
			d.Client.Name, d.Client.PAN, d.Client.Mobile, len(d.Loans))
		for _, l := range d.Loans {
			p.Fprintf(w, "  %-10s %-12s %-10s %12.2f\n", l.ID, l.LoanNumber, l.Status, l.Amount)
		}
	case *reconcile.SecuritiesResult:
		s := d.Summary
		p.Fprintf(w, "Loan %s securities: %d (CAMS %d, ledger %d)\n", d.LoanID, s.TotalSecurities, s.TotalCamsSecurities, s.TotalLoanSecurities)
		p.Fprintf(w, "Total value:       %.2f\n", s.TotalValue)
		p.Fprintf(w, "Pledged quantity:  %.2f\n", s.TotalPledgedQuantity)
		p.Fprintf(w, "Active:            CAMS %d, ledger %d\n", s.ActiveCamsSecurities, s.ActiveLoanSecurities)
		p.Fprintf(w, "Provider requests: %d\nProvider logs:     %d\n", s.TotalProviderRequests, s.TotalProviderLogs)
		p.Fprintf(w, "PANs:              %s\n", joinOrNone(s.PANNumbers))
		if len(s.MissingSources) > 0 {
			p.Fprintf(w, "Missing sources:   %s\n", strings.Join(s.MissingSources, ", "))
		}
	case *reconcile.EligibilityResult:
		s := d.Summary
		p.Fprintf(w, "Mobile %s eligibility\n", d.Mobile)
		p.Fprintf(w, "Available providers: %s\nMissing providers:   %s\n", joinOrNone(s.AvailableProviders), joinOrNone(s.MissingProviders))
		p.Fprintf(w, "Total eligible:      %.2f\nTotal security value: %.2f\n", s.TotalEligibleAmount, s.TotalSecurityValue)
	case *reconcile.BankerCheckResult:
		s := d.Summary
		p.Fprintf(w, "Loan %s banker checks: %d (%d active)\n", d.LoanID, s.TotalBankerChecks, s.ActiveBankerChecks)
		p.Fprintf(w, "Persons: %d  Locations: %d  Emails: %d\n", s.TotalPersons, s.TotalLocations, s.TotalEmails)
		for _, sev := range slices.Sorted(maps.Keys(s.SeverityBreakdown)) {
			p.Fprintf(w, "  %-10s %d\n", sev, s.SeverityBreakdown[sev])
		}
	case *reconcile.ProviderLogsResult:
		s := d.Summary
		p.Fprintf(w, "PAN %s provider logs: %d (%d successful, %d failed)\n", d.PAN, s.TotalLogs, s.SuccessfulRequests, s.FailedRequests)
		for _, l := range d.ProviderLogs {
			p.Fprintf(w, "  %-8s %-10s %-20s %-10s %s\n", l.ID, l.Provider, l.Type, l.Status, l.HTTPStatus)
		}
	case *reconcile.Outcome:
		if d.Customer != nil {
			if err := renderText(w, d.Customer); err != nil {
				return err
			}
		}
		for _, section := range []any{d.Securities, d.Eligibility, d.BankerCheck, d.ProviderLogs} {
			if isNilSection(section) {
				continue
			}
			p.Fprintln(w)
			if err := renderText(w, section); err != nil {
				return err
			}
		}
		if len(d.MissingSections) > 0 {
			p.Fprintf(w, "\nMissing sections: %s\n", strings.Join(d.MissingSections, ", "))
		}
	default:
		return eris.Errorf("no text layout for %T", doc)
	}
	return nil
}

func isNilSection(v any) bool {
	switch s := v.(type) {
	case *reconcile.SecuritiesResult:
		return s == nil
	case *reconcile.EligibilityResult:
		return s == nil
	case *reconcile.BankerCheckResult:
		return s == nil
	case *reconcile.ProviderLogsResult:
		return s == nil
	}
	return v == nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
