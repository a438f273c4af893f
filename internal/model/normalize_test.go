package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizer_Defaults(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("")
	assert.Equal(t, DefaultPlaceholder, n.Placeholder)
	assert.Equal(t, "N/A", n.Str(nil))
	assert.Equal(t, "N/A", n.Str(ptr("")))
	assert.Equal(t, " ", n.Str(ptr(" ")))
	assert.Equal(t, "x", n.Str(ptr("x")))
	assert.Zero(t, n.Num(nil))
	assert.Equal(t, 12.5, n.Num(ptr(12.5)))
	assert.Equal(t, "unknown", n.ID(nil))
	assert.Equal(t, "42", n.ID(ptr(int64(42))))
	assert.Nil(t, n.Time(nil))
}

func TestNormalizer_Flag(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("-")
	tests := []struct {
		name string
		in   *int64
		want bool
	}{
		{"nil", nil, false},
		{"one", ptr(int64(1)), true},
		{"zero", ptr(int64(0)), false},
		{"two", ptr(int64(2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Flag(tt.in))
		})
	}
}

func TestNormalizer_TimeIsUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	got := NewNormalizer("").Time(&in)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, in.Equal(*got))
}

func TestNormalizer_IsPlaceholder(t *testing.T) {
	t.Parallel()

	n := NewNormalizer("")
	assert.True(t, n.IsPlaceholder(""))
	assert.True(t, n.IsPlaceholder("   "))
	assert.True(t, n.IsPlaceholder("N/A"))
	assert.True(t, n.IsPlaceholder(" N/A "))
	assert.False(t, n.IsPlaceholder("ABCDE1234F"))
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", FirstNonEmpty("z", nil, ptr(""), ptr("a"), ptr("b")))
	assert.Equal(t, "z", FirstNonEmpty("z", nil, ptr("  ")))
}

func TestLoanStatusFromCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code *int64
		want LoanStatus
	}{
		{ptr(int64(1)), LoanStatusPending},
		{ptr(int64(2)), LoanStatusActive},
		{ptr(int64(3)), LoanStatusCompleted},
		{ptr(int64(4)), LoanStatusDefaulted},
		{ptr(int64(9)), LoanStatusActive},
		{nil, LoanStatusActive},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, LoanStatusFromCode(tt.code))
		})
	}
}
