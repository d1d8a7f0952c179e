package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"inkwell/api/internal/config"
	"inkwell/api/internal/repository"
)

// Scheduler runs the nightly purge of soft-deleted posts. Login throttle
// keys carry their own TTLs and need no sweep.
type Scheduler struct {
	cron      *cron.Cron
	posts     *repository.PostRepository
	retention time.Duration
	log       zerolog.Logger
}

func NewScheduler(posts *repository.PostRepository, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		posts:     posts,
		retention: cfg.PurgeRetention,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeDeletedPosts); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeDeletedPosts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.posts.PurgeDeleted(ctx, s.retention)
	if err != nil {
		s.log.Error().Err(err).Msg("purge deleted posts failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("soft-deleted posts purged")
	}
}
