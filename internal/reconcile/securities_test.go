package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/loanops/internal/model"
)

func logFilter(pan string) model.LogFilter {
	return model.LogFilter{EntityID: pan, ExcludeTypePattern: "%RAW%"}
}

func loan123Securities() []model.Security {
	return []model.Security{
		{ID: "1", LoanID: "123", Type: model.SecurityCAMS, PANNumber: "ABCDE1234F", PledgeTimeValue: 1000, PledgedQuantity: 10, IsActive: true, IsPledge: true},
		{ID: "2", LoanID: "123", Type: model.SecurityCAMS, PANNumber: "ABCDE1234F", PledgeTimeValue: 2000, PledgedQuantity: 5},
	}
}

func TestSecurities_Loan123(t *testing.T) {
	s, st := newTestService(t)
	st.On("CamsSecurities", mock.Anything, "123").Return(loan123Securities(), nil)
	st.On("LedgerSecurities", mock.Anything, "123").Return([]model.Security{}, nil)
	st.On("ProviderRequests", mock.Anything, "123").Return([]model.ProviderRequest{{ID: "1", EntityID: "123"}}, nil)
	st.On("ProviderLogs", mock.Anything, logFilter("ABCDE1234F")).Return([]model.ProviderLog{
		{ID: "9", EntityID: "ABCDE1234F", FullPayload: strings.Repeat("x", 250)},
	}, nil).Once()

	got, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)

	sum := got.Summary
	assert.Equal(t, 3000.0, sum.TotalValue)
	assert.Equal(t, 1, sum.ActiveCamsSecurities)
	assert.Equal(t, 2, sum.TotalSecurities)
	assert.Equal(t, 2, sum.TotalCamsSecurities)
	assert.Equal(t, 0, sum.TotalLoanSecurities)
	assert.Equal(t, 15.0, sum.TotalPledgedQuantity)
	assert.Equal(t, 1, sum.PledgedCamsSecurities)
	assert.Equal(t, 1, sum.TotalProviderRequests)
	assert.Equal(t, 1, sum.TotalProviderLogs)
	assert.Equal(t, []string{"ABCDE1234F"}, sum.PANNumbers)
	assert.Equal(t, 1, sum.UniquePANNumbers)
	assert.Empty(t, sum.MissingSources)

	require.Len(t, got.ProviderLogs, 1)
	assert.Len(t, []rune(got.ProviderLogs[0].Payload), 203)
	assert.True(t, strings.HasSuffix(got.ProviderLogs[0].Payload, "..."))
	assert.Equal(t, "N/A", got.ProviderLogs[0].Response)
}

func TestSecurities_TotalsMatchReturnedRecords(t *testing.T) {
	s, st := newTestService(t)
	cams := loan123Securities()
	ledger := []model.Security{
		{ID: "7", Type: model.SecurityRegular, PledgeTimeValue: 0.1, PledgedQuantity: 1, IsActive: true},
		{ID: "8", Type: model.SecurityRegular, PledgeTimeValue: 0.2, PledgedQuantity: 2, IsPledge: true},
	}
	st.On("CamsSecurities", mock.Anything, "123").Return(cams, nil)
	st.On("LedgerSecurities", mock.Anything, "123").Return(ledger, nil)
	st.On("ProviderRequests", mock.Anything, "123").Return([]model.ProviderRequest{}, nil)
	st.On("ProviderLogs", mock.Anything, logFilter("ABCDE1234F")).Return([]model.ProviderLog{}, nil)

	got, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)

	var want float64
	for _, sec := range append(got.CamsSecurities, got.LoanSecurities...) {
		want += sec.PledgeTimeValue
	}
	assert.InDelta(t, want, got.Summary.TotalValue, 1e-9)
	assert.Equal(t, 0.3, got.Summary.TotalLoanValue)
	assert.Equal(t, 1, got.Summary.ActiveLoanSecurities)
	assert.Equal(t, 1, got.Summary.PledgedLoanSecurities)
}

func TestSecurities_IndependentSourcesDegrade(t *testing.T) {
	obs := &recordingObserver{}
	s, st := newTestService(t, WithObserver(obs))
	st.On("CamsSecurities", mock.Anything, "123").Return(loan123Securities(), nil)
	st.On("LedgerSecurities", mock.Anything, "123").Return([]model.Security{}, nil)
	st.On("ProviderRequests", mock.Anything, "123").Return(nil, errors.New("timeout reading requests"))
	st.On("ProviderLogs", mock.Anything, logFilter("ABCDE1234F")).Return(nil, errors.New("boom"))

	got, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)

	assert.Nil(t, got.ProviderRequests)
	assert.Empty(t, got.ProviderLogs)
	assert.Equal(t, []string{"ABCDE1234F"}, got.FailedPANs)
	assert.Equal(t, []string{SourceProviderRequests, SourceProviderLogs}, got.Summary.MissingSources)
	assert.Equal(t, 3000.0, got.Summary.TotalValue)
	assert.ElementsMatch(t, []string{
		"securities/" + SourceProviderRequests,
		"securities/" + SourceProviderLogs,
	}, obs.partials)
}

func TestSecurities_RequiredSourceFailureIsFatal(t *testing.T) {
	s, st := newTestService(t)
	st.On("CamsSecurities", mock.Anything, "123").Return(nil, errors.New("boom"))
	st.On("LedgerSecurities", mock.Anything, "123").Return([]model.Security{}, nil).Maybe()
	st.On("ProviderRequests", mock.Anything, "123").Return([]model.ProviderRequest{}, nil).Maybe()

	got, err := s.Securities(context.Background(), "123")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), SourceCamsSecurities)
}

func TestSecurities_EmptyLoanID(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Securities(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSecurities_NoPANsSkipsCorrelation(t *testing.T) {
	s, st := newTestService(t)
	st.On("CamsSecurities", mock.Anything, "123").Return([]model.Security{}, nil)
	st.On("LedgerSecurities", mock.Anything, "123").Return([]model.Security{}, nil)
	st.On("ProviderRequests", mock.Anything, "123").Return([]model.ProviderRequest{}, nil)

	got, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, []model.ProviderLog{}, got.ProviderLogs)
	assert.Equal(t, []string{}, got.Summary.PANNumbers)
	st.AssertNotCalled(t, "ProviderLogs", mock.Anything, mock.Anything)
}

func TestSecurities_IdempotentJSON(t *testing.T) {
	s, st := newTestService(t)
	st.On("CamsSecurities", mock.Anything, "123").Return(loan123Securities(), nil)
	st.On("LedgerSecurities", mock.Anything, "123").Return([]model.Security{}, nil)
	st.On("ProviderRequests", mock.Anything, "123").Return([]model.ProviderRequest{}, nil)
	st.On("ProviderLogs", mock.Anything, logFilter("ABCDE1234F")).Return([]model.ProviderLog{}, nil)

	first, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)
	second, err := s.Securities(context.Background(), "123")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
