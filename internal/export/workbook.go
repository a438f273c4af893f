// Package export writes an outcome document as an XLSX workbook for
// offline review by the operations team.
package export

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/loanops/internal/model"
	"github.com/sells-group/loanops/internal/reconcile"
)

// Sheet names in workbook order.
const (
	SheetSummary          = "Summary"
	SheetLoans            = "Loans"
	SheetSecurities       = "Securities"
	SheetProviderRequests = "Provider Requests"
	SheetProviderLogs     = "Provider Logs"
	SheetEligibility      = "Eligibility"
	SheetBankerChecks     = "Banker Checks"
)

// WriteFile writes the workbook for o to path.
func WriteFile(path string, o *reconcile.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	if err := Write(f, o); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "export: close file")
}

// Write encodes the workbook for o to w.
func Write(w io.Writer, o *reconcile.Outcome) error {
	if o == nil || o.Customer == nil {
		return eris.New("export: outcome has no customer")
	}
	f, err := Build(o)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "export: write workbook")
}

// Build lays out every section of o as its own sheet. Sections the outcome
// is missing get a header row only.
func Build(o *reconcile.Outcome) (*xlsx.File, error) {
	f := xlsx.NewFile()
	b := &builder{file: f}

	b.summary(o)
	b.loans(o.Customer.Loans)
	b.securities(o.Securities)
	b.providerRequests(o.Securities)
	b.providerLogs(o.ProviderLogs)
	b.eligibility(o.Eligibility)
	b.bankerChecks(o.BankerCheck)

	if b.err != nil {
		return nil, b.err
	}
	return f, nil
}

// builder collects the first sheet error so the layout code stays linear.
type builder struct {
	file *xlsx.File
	err  error
}

func (b *builder) sheet(name string, header ...string) *xlsx.Sheet {
	if b.err != nil {
		return nil
	}
	sh, err := b.file.AddSheet(name)
	if err != nil {
		b.err = eris.Wrapf(err, "export: add sheet %s", name)
		return nil
	}
	row := sh.AddRow()
	for _, h := range header {
		row.AddCell().SetString(h)
	}
	return sh
}

// row appends one row; string, float64, int, bool and *time.Time values
// get typed cells.
func row(sh *xlsx.Sheet, values ...any) {
	if sh == nil {
		return
	}
	r := sh.AddRow()
	for _, v := range values {
		c := r.AddCell()
		switch v := v.(type) {
		case float64:
			c.SetFloat(v)
		case int:
			c.SetInt(v)
		case bool:
			c.SetString(strconv.FormatBool(v))
		case *time.Time:
			if v != nil {
				c.SetString(v.UTC().Format(time.RFC3339))
			}
		case string:
			c.SetString(v)
		default:
			c.SetValue(v)
		}
	}
}

func (b *builder) summary(o *reconcile.Outcome) {
	sh := b.sheet(SheetSummary, "Field", "Value")
	c := o.Customer.Client
	row(sh, "Customer", c.Name)
	row(sh, "PAN", c.PAN)
	row(sh, "Mobile", c.Mobile)
	row(sh, "Loans", len(o.Customer.Loans))
	row(sh, "Loan ID", o.LoanID)
	if s := o.Securities; s != nil {
		row(sh, "Total securities", s.Summary.TotalSecurities)
		row(sh, "Total security value", s.Summary.TotalValue)
		row(sh, "Total pledged quantity", s.Summary.TotalPledgedQuantity)
		row(sh, "Active CAMS securities", s.Summary.ActiveCamsSecurities)
		row(sh, "Active ledger securities", s.Summary.ActiveLoanSecurities)
		row(sh, "Missing sources", strings.Join(s.Summary.MissingSources, ", "))
	}
	if e := o.Eligibility; e != nil {
		row(sh, "Total eligible amount", e.Summary.TotalEligibleAmount)
		row(sh, "Available providers", strings.Join(e.Summary.AvailableProviders, ", "))
	}
	if bc := o.BankerCheck; bc != nil {
		row(sh, "Active banker checks", bc.Summary.ActiveBankerChecks)
	}
	if pl := o.ProviderLogs; pl != nil {
		row(sh, "Provider logs", pl.Summary.TotalLogs)
		row(sh, "Failed provider requests", pl.Summary.FailedRequests)
	}
	row(sh, "Missing sections", strings.Join(o.MissingSections, ", "))
}

func (b *builder) loans(loans []model.Loan) {
	sh := b.sheet(SheetLoans, "ID", "Loan Number", "Status", "Amount", "Outstanding", "EMI",
		"Interest Rate", "Tenure", "Start Date", "Maturity Date", "Created")
	for _, l := range loans {
		row(sh, l.ID, l.LoanNumber, string(l.Status), l.Amount, l.OutstandingAmount, l.EMI,
			l.InterestRate, int(l.Tenure), l.StartDate, l.MaturityDate, l.CreationTime)
	}
}

func (b *builder) securities(r *reconcile.SecuritiesResult) {
	sh := b.sheet(SheetSecurities, "Type", "ID", "Scrip ID", "ISIN", "Folio", "PAN",
		"Pledged Quantity", "Pledge Time Value", "Pledged", "Active", "Lien Mark No", "Created")
	if r == nil {
		return
	}
	for _, group := range [][]model.Security{r.CamsSecurities, r.LoanSecurities} {
		for _, s := range group {
			row(sh, string(s.Type), s.ID, s.ScripID, s.ISIN, s.FolioNumber, s.PANNumber,
				s.PledgedQuantity, s.PledgeTimeValue, s.IsPledge, s.IsActive, s.LienMarkNo, s.CreatedAt)
		}
	}
}

func (b *builder) providerRequests(r *reconcile.SecuritiesResult) {
	sh := b.sheet(SheetProviderRequests, "ID", "Provider", "Request Type", "State", "Request Time", "Response Time")
	if r == nil {
		return
	}
	for _, p := range r.ProviderRequests {
		row(sh, p.ID, p.Provider, p.RequestType, p.State, p.RequestTime, p.ResponseTime)
	}
}

func (b *builder) providerLogs(r *reconcile.ProviderLogsResult) {
	sh := b.sheet(SheetProviderLogs, "ID", "Provider", "Type", "Status", "HTTP Status", "Payload", "Response", "Created")
	if r == nil {
		return
	}
	for _, l := range r.ProviderLogs {
		row(sh, l.ID, l.Provider, l.Type, l.Status, l.HTTPStatus, l.Payload, l.Response, l.CreatedAt)
	}
}

func (b *builder) eligibility(r *reconcile.EligibilityResult) {
	sh := b.sheet(SheetEligibility, "Provider", "Request ID", "Security Type", "Security Value",
		"Eligible Amount", "LTV", "Remarks")
	if r == nil {
		return
	}
	for _, provider := range r.Summary.AvailableProviders {
		pe := r.EligibilityData[provider]
		if pe == nil {
			continue
		}
		for _, s := range pe.Securities {
			row(sh, provider, pe.Request.ID, s.SecurityType, s.SecurityValue, s.EligibleAmount, s.LoanToValue, s.Remarks)
		}
	}
}

func (b *builder) bankerChecks(r *reconcile.BankerCheckResult) {
	sh := b.sheet(SheetBankerChecks, "Person ID", "Client ID", "Address", "Location Type", "Email",
		"Banker Check ID", "Severity", "Security Type")
	if r == nil {
		return
	}
	for _, d := range r.Data {
		row(sh, d.PersonID, d.ClientID, d.AddressLine1, d.LocationType, d.EmailID, d.BankerCheckID, d.Severity, d.SecurityType)
	}
}
