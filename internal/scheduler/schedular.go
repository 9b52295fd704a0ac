package scheduler

import (
	"fmt"
	"sync"
	"time"

	"weatherdesk/internal/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher periodically re-fetches the weather for the currently
// selected place so a long-lived session does not go stale. Refreshes
// run through the weather controller's normal load path, so a user
// selection made while a refresh is in flight still wins.
type Refresher struct {
	weather  *services.WeatherController
	logger   *zap.Logger
	interval time.Duration
	cron     *cron.Cron

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
	lastRun time.Time
}

func NewRefresher(weather *services.WeatherController, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		weather:  weather,
		logger:   logger,
		interval: interval,
		cron:     cron.New(),
	}
}

func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	entryID, err := r.cron.AddFunc(fmt.Sprintf("@every %s", r.interval), r.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	r.entryID = entryID
	r.cron.Start()
	r.running = true

	r.logger.Info("Refresh scheduler started",
		zap.Duration("interval", r.interval))

	return nil
}

func (r *Refresher) refresh() {
	place, ok := r.weather.SelectedPlace()
	if !ok {
		r.logger.Debug("Skipping refresh, no place selected")
		return
	}

	r.mu.Lock()
	r.lastRun = time.Now()
	r.mu.Unlock()

	r.logger.Info("Refreshing weather for selected place",
		zap.String("place", place.Label()))

	r.weather.Refresh()
}

func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.logger.Info("Stopping refresh scheduler")
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.running = false
}

func (r *Refresher) LastRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}
