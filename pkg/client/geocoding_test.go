package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        time.Second,
		RateLimitRPS:   100,
		RateLimitBurst: 10,
		BreakerTimeout: time.Second,
	}
}

func TestSearchPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "São Paulo" {
			t.Errorf("name param = %q, want %q", q.Get("name"), "São Paulo")
		}
		if q.Get("count") != "5" || q.Get("language") != "en" || q.Get("format") != "json" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"id":3448439,"name":"São Paulo","admin1":"São Paulo","country":"Brazil","latitude":-23.5475,"longitude":-46.63611},
			{"id":3448433,"name":"São Paulo de Olivença","country":"Brazil","latitude":-3.37833,"longitude":-68.87222}
		]}`)
	}))
	defer server.Close()

	c := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())
	places, err := c.SearchPlaces(context.Background(), "São Paulo", 5)
	if err != nil {
		t.Fatalf("SearchPlaces failed: %v", err)
	}

	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].Name != "São Paulo" || places[0].Admin1 != "São Paulo" || places[0].Country != "Brazil" {
		t.Errorf("unexpected first place: %+v", places[0])
	}
	if places[0].Latitude != -23.5475 {
		t.Errorf("Latitude = %v, want %v", places[0].Latitude, -23.5475)
	}
	if places[1].Admin1 != "" {
		t.Errorf("expected empty admin1, got %q", places[1].Admin1)
	}
}

func TestSearchPlacesNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The geocoding API omits "results" entirely when nothing matches.
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"generationtime_ms":0.5}`)
	}))
	defer server.Close()

	c := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())
	places, err := c.SearchPlaces(context.Background(), "zzzzz", 5)
	if err != nil {
		t.Fatalf("SearchPlaces failed: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("expected no places, got %d", len(places))
	}
}

func TestSearchPlacesCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"},{"id":4,"name":"D"}
		]}`)
	}))
	defer server.Close()

	c := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())
	places, err := c.SearchPlaces(context.Background(), "A", 2)
	if err != nil {
		t.Fatalf("SearchPlaces failed: %v", err)
	}
	if len(places) != 2 {
		t.Errorf("expected results capped at 2, got %d", len(places))
	}
}

func TestSearchPlacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())
	if _, err := c.SearchPlaces(context.Background(), "London", 5); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestSearchPlacesCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewGeocodingClient(server.URL, testClientConfig(), zap.NewNop())

	errCh := make(chan error, 1)
	go func() {
		_, err := c.SearchPlaces(ctx, "London", 5)
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		if ctx.Err() == nil {
			t.Fatal("context should be cancelled")
		}
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled so callers can suppress it, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("aborted request did not return")
	}
}
