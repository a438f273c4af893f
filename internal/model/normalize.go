package model

import (
	"strconv"
	"strings"
	"time"
)

// DefaultPlaceholder replaces missing string values in normalized records.
const DefaultPlaceholder = "N/A"

// Normalizer converts nullable column values into record fields: missing
// numbers become 0, flag columns become value == 1, missing or empty strings
// become Placeholder and ids become decimal strings.
type Normalizer struct {
	Placeholder string
}

// NewNormalizer returns a Normalizer, using DefaultPlaceholder when p is empty.
func NewNormalizer(p string) Normalizer {
	if p == "" {
		p = DefaultPlaceholder
	}
	return Normalizer{Placeholder: p}
}

// Str returns *s, or the placeholder when s is NULL or empty.
func (n Normalizer) Str(s *string) string {
	if s == nil || *s == "" {
		return n.Placeholder
	}
	return *s
}

// Num returns *f or 0.
func (n Normalizer) Num(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Flag reports whether the flag column equals 1.
func (n Normalizer) Flag(v *int64) bool {
	return v != nil && *v == 1
}

// ID formats an integer id; missing ids become "unknown".
func (n Normalizer) ID(v *int64) string {
	if v == nil {
		return "unknown"
	}
	return strconv.FormatInt(*v, 10)
}

// Time returns t in UTC, or nil.
func (n Normalizer) Time(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// IsPlaceholder reports whether s carries no usable value: empty,
// whitespace, or the placeholder token.
func (n Normalizer) IsPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == n.Placeholder
}

// FirstNonEmpty returns the first non-blank value, or fallback.
func FirstNonEmpty(fallback string, values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return fallback
}
