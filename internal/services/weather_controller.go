package services

import (
	"context"
	"sync"
	"time"

	"weatherdesk/internal/models"

	"go.uber.org/zap"
)

// WeatherState tracks where the weather controller is in its fetch cycle.
type WeatherState int

const (
	WeatherIdle WeatherState = iota
	WeatherLoading
	WeatherReady
	WeatherError
)

func (s WeatherState) String() string {
	switch s {
	case WeatherLoading:
		return "loading"
	case WeatherReady:
		return "ready"
	case WeatherError:
		return "error"
	default:
		return "idle"
	}
}

// ForecastProvider fetches the weather snapshot for a place.
type ForecastProvider interface {
	FetchWeather(ctx context.Context, place models.Place) (*models.WeatherSnapshot, error)
}

const genericFetchError = "failed to load weather data"

// WeatherController owns the weather snapshot for the selected place.
// Each Load supersedes the previous one: the snapshot and error are
// cleared up front, and completions carry a generation number so a slow
// response for an older selection can never overwrite a newer one.
type WeatherController struct {
	provider ForecastProvider
	logger   *zap.Logger
	timeout  time.Duration

	mu       sync.Mutex
	gen      uint64
	state    WeatherState
	place    *models.Place
	snapshot *models.WeatherSnapshot
	errMsg   string
}

func NewWeatherController(provider ForecastProvider, timeout time.Duration, logger *zap.Logger) *WeatherController {
	return &WeatherController{
		provider: provider,
		logger:   logger,
		timeout:  timeout,
	}
}

// Load starts a fetch for place, wiping the previous snapshot and error.
func (c *WeatherController) Load(place models.Place) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.place = &place
	c.snapshot = nil
	c.errMsg = ""
	c.state = WeatherLoading
	c.mu.Unlock()

	go c.fetch(place, gen)
}

// Refresh re-fetches the currently selected place, if any. Used by the
// periodic refresh job; a user selection made meanwhile still wins
// because it carries a newer generation.
func (c *WeatherController) Refresh() {
	c.mu.Lock()
	if c.place == nil {
		c.mu.Unlock()
		return
	}
	place := *c.place
	c.mu.Unlock()

	c.Load(place)
}

func (c *WeatherController) fetch(place models.Place, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	snapshot, err := c.provider.FetchWeather(ctx, place)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("Discarding stale weather response",
			zap.String("place", place.Name),
			zap.Uint64("gen", gen),
			zap.Uint64("current_gen", c.gen))
		return
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = genericFetchError
		}
		c.logger.Error("Weather fetch failed",
			zap.String("place", place.Name),
			zap.Error(err))
		c.errMsg = msg
		c.state = WeatherError
		return
	}

	c.snapshot = snapshot
	c.state = WeatherReady
}

func (c *WeatherController) State() WeatherState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *WeatherController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == WeatherLoading
}

// Snapshot returns the current snapshot, or nil before the first
// successful fetch and after any failed one.
func (c *WeatherController) Snapshot() *models.WeatherSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Err returns the user-visible error message, empty when there is none.
func (c *WeatherController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SelectedPlace reports the place of the most recent Load.
func (c *WeatherController) SelectedPlace() (models.Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.place == nil {
		return models.Place{}, false
	}
	return *c.place, true
}
