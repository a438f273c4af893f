// Package mocks provides test doubles for the record store.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/sells-group/loanops/internal/model"
)

// MockRecordStore is a mock type for the RecordStore interface.
type MockRecordStore struct {
	mock.Mock
}

// LoansByMobile provides a mock function with given fields: ctx, mobile
func (_m *MockRecordStore) LoansByMobile(ctx context.Context, mobile string) ([]model.LoanRow, error) {
	ret := _m.Called(ctx, mobile)

	if len(ret) == 0 {
		panic("no return value specified for LoansByMobile")
	}

	var r0 []model.LoanRow
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.LoanRow, error)); ok {
		return rf(ctx, mobile)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.LoanRow); ok {
		r0 = rf(ctx, mobile)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.LoanRow)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, mobile)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// LoansByPAN provides a mock function with given fields: ctx, pan
func (_m *MockRecordStore) LoansByPAN(ctx context.Context, pan string) ([]model.LoanRow, error) {
	ret := _m.Called(ctx, pan)

	if len(ret) == 0 {
		panic("no return value specified for LoansByPAN")
	}

	var r0 []model.LoanRow
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.LoanRow, error)); ok {
		return rf(ctx, pan)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.LoanRow); ok {
		r0 = rf(ctx, pan)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.LoanRow)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, pan)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CamsSecurities provides a mock function with given fields: ctx, loanID
func (_m *MockRecordStore) CamsSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	ret := _m.Called(ctx, loanID)

	if len(ret) == 0 {
		panic("no return value specified for CamsSecurities")
	}

	var r0 []model.Security
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.Security, error)); ok {
		return rf(ctx, loanID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.Security); ok {
		r0 = rf(ctx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Security)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// LedgerSecurities provides a mock function with given fields: ctx, loanID
func (_m *MockRecordStore) LedgerSecurities(ctx context.Context, loanID string) ([]model.Security, error) {
	ret := _m.Called(ctx, loanID)

	if len(ret) == 0 {
		panic("no return value specified for LedgerSecurities")
	}

	var r0 []model.Security
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.Security, error)); ok {
		return rf(ctx, loanID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.Security); ok {
		r0 = rf(ctx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Security)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ProviderRequests provides a mock function with given fields: ctx, entityID
func (_m *MockRecordStore) ProviderRequests(ctx context.Context, entityID string) ([]model.ProviderRequest, error) {
	ret := _m.Called(ctx, entityID)

	if len(ret) == 0 {
		panic("no return value specified for ProviderRequests")
	}

	var r0 []model.ProviderRequest
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.ProviderRequest, error)); ok {
		return rf(ctx, entityID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.ProviderRequest); ok {
		r0 = rf(ctx, entityID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.ProviderRequest)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, entityID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ProviderLogs provides a mock function with given fields: ctx, filter
func (_m *MockRecordStore) ProviderLogs(ctx context.Context, filter model.LogFilter) ([]model.ProviderLog, error) {
	ret := _m.Called(ctx, filter)

	if len(ret) == 0 {
		panic("no return value specified for ProviderLogs")
	}

	var r0 []model.ProviderLog
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.LogFilter) ([]model.ProviderLog, error)); ok {
		return rf(ctx, filter)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.LogFilter) []model.ProviderLog); ok {
		r0 = rf(ctx, filter)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.ProviderLog)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.LogFilter) error); ok {
		r1 = rf(ctx, filter)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// EligibilityLeadIDs provides a mock function with given fields: ctx, mobile
func (_m *MockRecordStore) EligibilityLeadIDs(ctx context.Context, mobile string) ([]string, error) {
	ret := _m.Called(ctx, mobile)

	if len(ret) == 0 {
		panic("no return value specified for EligibilityLeadIDs")
	}

	var r0 []string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]string, error)); ok {
		return rf(ctx, mobile)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []string); ok {
		r0 = rf(ctx, mobile)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, mobile)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// LatestEligibilityRequest provides a mock function with given fields: ctx, provider, leadIDs
func (_m *MockRecordStore) LatestEligibilityRequest(ctx context.Context, provider string, leadIDs []string) (*model.EligibilityRequest, error) {
	ret := _m.Called(ctx, provider, leadIDs)

	if len(ret) == 0 {
		panic("no return value specified for LatestEligibilityRequest")
	}

	var r0 *model.EligibilityRequest
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) (*model.EligibilityRequest, error)); ok {
		return rf(ctx, provider, leadIDs)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) *model.EligibilityRequest); ok {
		r0 = rf(ctx, provider, leadIDs)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.EligibilityRequest)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, []string) error); ok {
		r1 = rf(ctx, provider, leadIDs)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// EligibilitySecurities provides a mock function with given fields: ctx, requestID
func (_m *MockRecordStore) EligibilitySecurities(ctx context.Context, requestID string) ([]model.EligibilitySecurity, error) {
	ret := _m.Called(ctx, requestID)

	if len(ret) == 0 {
		panic("no return value specified for EligibilitySecurities")
	}

	var r0 []model.EligibilitySecurity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.EligibilitySecurity, error)); ok {
		return rf(ctx, requestID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.EligibilitySecurity); ok {
		r0 = rf(ctx, requestID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.EligibilitySecurity)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, requestID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// BankerCheckRows provides a mock function with given fields: ctx, loanID
func (_m *MockRecordStore) BankerCheckRows(ctx context.Context, loanID string) ([]model.BankerCheckRow, error) {
	ret := _m.Called(ctx, loanID)

	if len(ret) == 0 {
		panic("no return value specified for BankerCheckRows")
	}

	var r0 []model.BankerCheckRow
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]model.BankerCheckRow, error)); ok {
		return rf(ctx, loanID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.BankerCheckRow); ok {
		r0 = rf(ctx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.BankerCheckRow)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Ping provides a mock function with given fields: ctx
func (_m *MockRecordStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}
	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockRecordStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	return ret.Error(0)
}

// NewMockRecordStore creates a new instance of MockRecordStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockRecordStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRecordStore {
	m := &MockRecordStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
