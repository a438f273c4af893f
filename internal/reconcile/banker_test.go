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

func TestBankerCheck_GroupsAndSummarizes(t *testing.T) {
	s, st := newTestService(t)
	st.On("BankerCheckRows", mock.Anything, "123").Return([]model.BankerCheckRow{
		{PersonID: "10", ClientID: "1", AddressLine1: "1 MG Road", LocationType: "HOME", EmailID: "a@x.com", BankerCheckID: "1", Severity: "HIGH", SecurityType: "MF"},
		{PersonID: "10", ClientID: "1", AddressLine1: "1 MG Road", LocationType: "HOME", EmailID: "a@x.com", BankerCheckID: "1", Severity: "HIGH", SecurityType: "MF"},
		{PersonID: "10", ClientID: "1", AddressLine1: "9 Park St", LocationType: "OFFICE", BankerCheckID: "2"},
	}, nil)

	got, err := s.BankerCheck(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "123", got.LoanID)
	require.Len(t, got.Persons, 1)
	assert.Len(t, got.Persons[0].Locations, 2)
	assert.Len(t, got.Data, 3)

	assert.Equal(t, BankerCheckSummary{
		TotalRecords:          3,
		TotalPersons:          1,
		TotalBankerChecks:     2,
		TotalLocations:        2,
		TotalEmails:           1,
		ActiveBankerChecks:    1,
		SeverityBreakdown:     map[string]int{"HIGH": 1, "Unknown": 1},
		SecurityTypeBreakdown: map[string]int{"MF": 2, "Unknown": 1},
		LocationTypeBreakdown: map[string]int{"HOME": 2, "OFFICE": 1},
	}, got.Summary)
}

func TestBankerCheck_NoRows(t *testing.T) {
	s, st := newTestService(t)
	st.On("BankerCheckRows", mock.Anything, "404").Return(nil, nil)

	got, err := s.BankerCheck(context.Background(), "404")
	require.NoError(t, err)
	assert.Equal(t, []model.BankerCheckRow{}, got.Data)
	assert.Equal(t, []model.Person{}, got.Persons)
	assert.Zero(t, got.Summary.TotalRecords)
}

func TestBankerCheck_StoreFailure(t *testing.T) {
	s, st := newTestService(t)
	st.On("BankerCheckRows", mock.Anything, "123").Return(nil, errors.New("boom"))

	_, err := s.BankerCheck(context.Background(), "123")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestBankerCheck_Validation(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.BankerCheck(context.Background(), "")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "loanId", ve.Details[0].Field)
}
