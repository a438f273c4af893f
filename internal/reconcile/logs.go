package reconcile

import (
	"context"
	"strings"

	"github.com/sells-group/loanops/internal/model"
)

// ProviderLogs lists every provider log recorded for a PAN, raw payload logs
// included, newest first. The raw exclusion applies only to correlation.
func (s *Service) ProviderLogs(ctx context.Context, pan string) (*ProviderLogsResult, error) {
	var out *ProviderLogsResult
	err := s.operation(ctx, "provider_logs", func(ctx context.Context) error {
		var err error
		out, err = s.providerLogs(ctx, pan)
		return err
	})
	return out, err
}

func (s *Service) providerLogs(ctx context.Context, pan string) (*ProviderLogsResult, error) {
	pan = strings.TrimSpace(pan)
	if err := validateStruct(panRequest{PAN: pan}); err != nil {
		return nil, err
	}
	logs, err := s.fetchLogs(ctx, pan, "")
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.ProviderLog{}
	}
	return &ProviderLogsResult{
		PAN:          pan,
		ProviderLogs: logs,
		Summary:      summarizeProviderLogs(logs),
	}, nil
}
