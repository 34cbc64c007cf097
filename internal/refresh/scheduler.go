// Package refresh keeps the cached stories of the recent blocks fresh.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"hnblocks/internal/providers"
	"hnblocks/internal/services"
	"hnblocks/internal/structures"
	"hnblocks/internal/timeblocks"
)

type SchedulerInterface interface {
	Init()
	Stop()
	RefreshRecent(ctx context.Context) int
	LastRefresh() time.Time
}

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.StoryServiceInterface
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
	lastRefresh atomic.Int64
	now         func() time.Time
}

func (s *Scheduler) Init() {
	interval := s.config.Upstream.RefreshInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Recent blocks refresh disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		s.RefreshRecent(ctx)
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Refreshing recent blocks every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RefreshRecent re-fetches every recent block and returns how many succeeded.
func (s *Scheduler) RefreshRecent(ctx context.Context) int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	now := s.now()
	refreshed := 0
	for _, block := range timeblocks.Generate(now) {
		if !block.IsRecent {
			continue
		}
		if err := s.service.Refresh(ctx, block.Start, block.End); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while refreshing block %s: %s", block.Label, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		s.lastRefresh.Store(now.Unix())
		s.metrics.SetLastRefresh(now)
	}
	s.logger.Infof(providers.TypeApp, "Refreshed %d recent blocks", refreshed)
	return refreshed
}

func (s *Scheduler) LastRefresh() time.Time {
	ts := s.lastRefresh.Load()
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.StoryServiceInterface, metrics providers.MetricsProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		metrics: metrics,
		now:     time.Now,
	}
}
