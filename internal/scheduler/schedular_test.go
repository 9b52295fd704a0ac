package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"weatherdesk/internal/models"
	"weatherdesk/internal/services"

	"go.uber.org/zap"
)

type countingProvider struct {
	calls atomic.Int64
}

func (p *countingProvider) FetchWeather(ctx context.Context, place models.Place) (*models.WeatherSnapshot, error) {
	p.calls.Add(1)
	return &models.WeatherSnapshot{Place: place}, nil
}

func TestRefresherRefreshesSelectedPlace(t *testing.T) {
	if testing.Short() {
		t.Skip("cron schedules have a 1s floor")
	}

	provider := &countingProvider{}
	weather := services.NewWeatherController(provider, time.Second, zap.NewNop())
	refresher := NewRefresher(weather, time.Second, zap.NewNop())

	if err := refresher.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer refresher.Stop()

	// No selection yet: ticks must not fetch anything.
	time.Sleep(1500 * time.Millisecond)
	if got := provider.calls.Load(); got != 0 {
		t.Fatalf("expected no fetches before a selection, got %d", got)
	}

	weather.Load(models.Place{ID: 1, Name: "Prague", Latitude: 50, Longitude: 14})

	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		// One call from Load itself, at least one more from the cron tick.
		if provider.calls.Load() >= 2 {
			if refresher.LastRun().IsZero() {
				t.Error("LastRun must be recorded after a refresh")
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("refresh never fired, calls=%d", provider.calls.Load())
}

func TestRefresherStartIsIdempotent(t *testing.T) {
	provider := &countingProvider{}
	weather := services.NewWeatherController(provider, time.Second, zap.NewNop())
	refresher := NewRefresher(weather, time.Minute, zap.NewNop())

	if err := refresher.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := refresher.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	refresher.Stop()
	// Stopping twice must not block or panic.
	refresher.Stop()
}
