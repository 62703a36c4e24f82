package harvest

import (
	"context"

	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/utils"
)

// LogStats is the default StatsRecorder: it emits unit lifecycle events as
// debug logs keyed by the unit's view URL.
type LogStats struct {
	log *utils.Logger
}

// NewLogStats creates a stats recorder that logs lifecycle events.
func NewLogStats(log *utils.Logger) *LogStats {
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	return &LogStats{log: log.WithComponent("stats")}
}

func (s *LogStats) Begin(key *domain.StatsKey) {
	s.log.Debug().Str("url", key.URL).Msg("unit begin")
}

func (s *LogStats) Record(key *domain.StatsKey, action domain.StatsAction) {
	s.log.Debug().Str("url", key.URL).Str("action", string(action)).Msg("unit event")
}

func (s *LogStats) Done(key *domain.StatsKey) {
	s.log.Debug().Str("url", key.URL).Msg("unit done")
}

// nopFailures discards failure reports. Used when no recorder is configured.
type nopFailures struct{}

func (nopFailures) Store(ctx context.Context, f domain.Failure) error { return nil }
