package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/loanops/internal/model"
)

func TestProviderLogs_Summary(t *testing.T) {
	s, st := newTestService(t)
	st.On("ProviderLogs", mock.Anything, model.LogFilter{EntityID: "ABCDE1234F"}).Return([]model.ProviderLog{
		{ID: "3", Provider: "KFIN", Type: "VALIDATE", Status: "FAILED", HTTPStatus: "500", CreatedAt: ts("2024-01-05T00:00:00Z")},
		{ID: "2", Provider: "CAMS", Type: "LIEN_MARK", Status: "Success", HTTPStatus: "502", CreatedAt: ts("2024-01-04T00:00:00Z")},
		{ID: "1", Provider: "CAMS", Type: "LIEN_MARK", Status: "DONE", HTTPStatus: "200", FullPayload: `{"a":1}`, CreatedAt: ts("2024-01-03T00:00:00Z")},
	}, nil)

	got, err := s.ProviderLogs(context.Background(), "ABCDE1234F")
	require.NoError(t, err)

	sum := got.Summary
	assert.Equal(t, 3, sum.TotalLogs)
	assert.Equal(t, 2, sum.UniqueProviders)
	assert.Equal(t, 2, sum.UniqueTypes)
	assert.Equal(t, 2, sum.SuccessfulRequests)
	assert.Equal(t, 1, sum.FailedRequests)
	assert.Equal(t, map[string]int{"CAMS": 2, "KFIN": 1}, sum.ProviderBreakdown)
	assert.Equal(t, map[string]int{"200": 1, "500": 1, "502": 1}, sum.HTTPStatusBreakdown)
	assert.Equal(t, ts("2024-01-05T00:00:00Z"), sum.LatestLogDate)
	assert.Equal(t, ts("2024-01-03T00:00:00Z"), sum.OldestLogDate)

	assert.Equal(t, `{"a":1}`, got.ProviderLogs[2].Payload)
	assert.Equal(t, "N/A", got.ProviderLogs[0].Payload)
}

func TestProviderLogs_Empty(t *testing.T) {
	s, st := newTestService(t)
	st.On("ProviderLogs", mock.Anything, model.LogFilter{EntityID: "ABCDE1234F"}).Return(nil, nil)

	got, err := s.ProviderLogs(context.Background(), "ABCDE1234F")
	require.NoError(t, err)
	assert.Equal(t, []model.ProviderLog{}, got.ProviderLogs)
	assert.Nil(t, got.Summary.LatestLogDate)
	assert.Zero(t, got.Summary.FailedRequests)
}

func TestProviderLogs_FailureIsFatal(t *testing.T) {
	s, st := newTestService(t)
	st.On("ProviderLogs", mock.Anything, model.LogFilter{EntityID: "ABCDE1234F"}).Return(nil, errors.New("boom"))

	_, err := s.ProviderLogs(context.Background(), "ABCDE1234F")
	require.Error(t, err)
}

func TestProviderLogs_RequiresPAN(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.ProviderLogs(context.Background(), " ")
	assert.True(t, IsValidation(err))
}
