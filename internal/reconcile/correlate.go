package reconcile

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/loanops/internal/model"
)

// correlation is the merged provider-log set of a key fan-out.
type correlation struct {
	Logs       []model.ProviderLog
	FailedKeys []string
}

// correlateLogs fetches the provider logs of every key concurrently and
// merges them in key order, first occurrence of a log id winning. A failed
// key is recorded and skipped; its siblings' logs are kept.
func (s *Service) correlateLogs(ctx context.Context, op string, keys []string) correlation {
	if len(keys) == 0 {
		return correlation{Logs: []model.ProviderLog{}}
	}

	slots := make([][]model.ProviderLog, len(keys))
	errs := make([]error, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxFanout)
	for i, key := range keys {
		g.Go(func() error {
			logs, err := s.fetchLogs(gctx, key, s.cfg.LogExcludePattern)
			slots[i], errs[i] = logs, err
			return nil
		})
	}
	_ = g.Wait()

	out := correlation{Logs: []model.ProviderLog{}}
	seen := make(map[string]struct{})
	for i, key := range keys {
		if errs[i] != nil {
			out.FailedKeys = append(out.FailedKeys, key)
			s.partial(op, SourceProviderLogs, errs[i])
			s.log.Debug("provider log fetch failed for key", zap.String("key", key))
			continue
		}
		for _, l := range slots[i] {
			if _, dup := seen[l.ID]; dup {
				continue
			}
			seen[l.ID] = struct{}{}
			out.Logs = append(out.Logs, l)
		}
	}
	return out
}

// fetchLogs reads the provider logs of one entity, leaving out types that
// match exclude when it is set, and fills the payload previews.
func (s *Service) fetchLogs(ctx context.Context, entityID, exclude string) ([]model.ProviderLog, error) {
	logs, err := fetch(ctx, s, SourceProviderLogs, func(ctx context.Context) ([]model.ProviderLog, error) {
		return s.store.ProviderLogs(ctx, model.LogFilter{
			EntityID:           entityID,
			ExcludeTypePattern: exclude,
		})
	})
	if err != nil {
		return nil, err
	}
	for i := range logs {
		logs[i].Payload = s.preview(logs[i].FullPayload)
		logs[i].Response = s.preview(logs[i].FullResponse)
	}
	return logs, nil
}

// preview truncates body to the configured number of runes, marking the cut
// with "...". An empty body previews as the placeholder.
func (s *Service) preview(body string) string {
	if body == "" {
		return s.norm.Placeholder
	}
	r := []rune(body)
	if len(r) <= s.cfg.PayloadPreviewChars {
		return body
	}
	return string(r[:s.cfg.PayloadPreviewChars]) + "..."
}
