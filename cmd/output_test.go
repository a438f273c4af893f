package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/loanops/internal/model"
	"github.com/sells-group/loanops/internal/reconcile"
)

func sampleSecurities() *reconcile.SecuritiesResult {
	return &reconcile.SecuritiesResult{
		LoanID:         "123",
		CamsSecurities: []model.Security{},
		LoanSecurities: []model.Security{},
		Summary: reconcile.SecuritiesSummary{
			TotalSecurities:     2,
			TotalCamsSecurities: 2,
			TotalValue:          3000,
			PANNumbers:          []string{"PQRSX5678Z"},
			MissingSources:      []string{"provider_logs"},
		},
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatJSON, sampleSecurities()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "123", got["loanId"])
	assert.Equal(t, 3000.0, got["summary"].(map[string]any)["totalValue"])
}

func TestRender_YAMLKeepsFieldNamesAndOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatYAML, sampleSecurities()))
	out := buf.String()

	assert.Contains(t, out, `loanId: "123"`)
	assert.Contains(t, out, "totalValue: 3000")
	assert.Contains(t, out, "- PQRSX5678Z")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("loanId")), bytes.Index(buf.Bytes(), []byte("summary")))
	assert.NotContains(t, out, "{")
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatText, sampleSecurities()))
	out := buf.String()

	assert.Contains(t, out, "Loan 123 securities: 2 (CAMS 2, ledger 0)")
	assert.Contains(t, out, "3,000.00")
	assert.Contains(t, out, "Missing sources:   provider_logs")
}

func TestRender_TextOutcomeSkipsMissingSections(t *testing.T) {
	o := &reconcile.Outcome{
		Customer: &model.CustomerData{
			Client: model.Client{Name: "Asha Rao", PAN: "PQRSX5678Z", Mobile: "9999999999"},
			Loans:  []model.Loan{{ID: "123", LoanNumber: "LN-123", Status: model.LoanStatusActive, Amount: 50000}},
		},
		LoanID:          "123",
		Securities:      sampleSecurities(),
		MissingSections: []string{reconcile.SectionEligibility},
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, formatText, o))
	out := buf.String()

	assert.Contains(t, out, "Customer:  Asha Rao")
	assert.Contains(t, out, "50,000.00")
	assert.Contains(t, out, "Loan 123 securities")
	assert.NotContains(t, out, "Available providers")
	assert.Contains(t, out, "Missing sections: eligibility")
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, render(&buf, "xml", sampleSecurities()), "unknown output format")
	assert.ErrorContains(t, render(&buf, formatText, struct{}{}), "no text layout")
}
