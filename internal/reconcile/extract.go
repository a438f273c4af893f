package reconcile

import (
	"sort"
	"strings"

	"github.com/sells-group/loanops/internal/model"
)

// panNumbers returns the distinct PANs carried by CAMS securities, sorted.
// Blank and placeholder values are dropped.
func (s *Service) panNumbers(secs []model.Security) []string {
	set := make(map[string]struct{}, len(secs))
	for _, sec := range secs {
		if sec.Type != model.SecurityCAMS {
			continue
		}
		pan := strings.TrimSpace(sec.PANNumber)
		if s.norm.IsPlaceholder(pan) {
			continue
		}
		set[pan] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for pan := range set {
		out = append(out, pan)
	}
	sort.Strings(out)
	return out
}
