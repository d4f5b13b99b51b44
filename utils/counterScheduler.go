package utils

import (
	"context"
	"time"

	"marrynow/database"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// InitializeCounterScheduler periodically raises the biodata id counter to
// the highest stored biodataId, so documents written outside the service
// never collide with new allocations. An empty schedule disables the job.
func InitializeCounterScheduler(store database.Store, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		log.Info().Msg("[COUNTER-SCHEDULER] disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { SyncBiodataCounter(store) }); err != nil {
		return nil, err
	}
	c.Start()

	log.Info().Str("schedule", schedule).Msg("[COUNTER-SCHEDULER] started")
	return c, nil
}

// SyncBiodataCounter runs one counter sync.
func SyncBiodataCounter(store database.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seq, err := store.SyncBiodataSequence(ctx)
	if err != nil {
		CounterSyncRuns.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("[COUNTER-SCHEDULER] sync failed")
		return
	}
	CounterSyncRuns.WithLabelValues("ok").Inc()
	log.Debug().Int("seq", seq).Msg("[COUNTER-SCHEDULER] biodata counter synced")
}
