package services

import (
	"sync"
	"time"

	"weatherdesk/internal/models"

	"go.uber.org/zap"
)

// Session ties the search and weather controllers together with the
// unit preference. It is the single entry point the presentation layer
// talks to: keystrokes go in, an aggregate UIState comes out.
type Session struct {
	search  *SearchController
	weather *WeatherController
	logger  *zap.Logger

	mu   sync.Mutex
	unit models.Unit
}

// UIState is the aggregate state the presentation layer renders. Raw
// weather data stays Celsius; the views carry the converted values.
type UIState struct {
	Query         string         `json:"query"`
	Suggestions   []models.Place `json:"suggestions"`
	SearchState   string         `json:"search_state"`
	SelectedPlace *models.Place  `json:"selected_place,omitempty"`
	Loading       bool           `json:"loading"`
	Error         string         `json:"error,omitempty"`
	Unit          string         `json:"unit"`
	Current       *CurrentView   `json:"current,omitempty"`
	UpcomingHours []HourView     `json:"upcoming_hours"`
}

func NewSession(search *SearchController, weather *WeatherController, logger *zap.Logger) *Session {
	return &Session{
		search:  search,
		weather: weather,
		logger:  logger,
		unit:    models.UnitCelsius,
	}
}

// SetQuery forwards a keystroke to the search controller.
func (s *Session) SetQuery(query string) {
	s.search.SetQuery(query)
}

// Select picks a suggestion by position and starts the weather fetch
// for it. The suggestion list is cleared either way the fetch goes.
func (s *Session) Select(index int) (models.Place, error) {
	place, err := s.search.Select(index)
	if err != nil {
		return models.Place{}, err
	}

	s.logger.Info("Place selected",
		zap.String("place", place.Label()),
		zap.Float64("latitude", place.Latitude),
		zap.Float64("longitude", place.Longitude))

	s.weather.Load(place)
	return place, nil
}

// SelectPlace starts a weather fetch for a known place directly,
// bypassing the suggestion list.
func (s *Session) SelectPlace(place models.Place) {
	s.weather.Load(place)
}

// SetUnit switches the presentation unit. Stored data is untouched.
func (s *Session) SetUnit(unit models.Unit) {
	s.mu.Lock()
	s.unit = unit
	s.mu.Unlock()
}

func (s *Session) Unit() models.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit
}

// State assembles the aggregate UI state as of now.
func (s *Session) State(now time.Time) UIState {
	unit := s.Unit()
	snapshot := s.weather.Snapshot()

	state := UIState{
		Query:         s.search.Query(),
		Suggestions:   s.search.Suggestions(),
		SearchState:   s.search.State().String(),
		Loading:       s.weather.Loading(),
		Error:         s.weather.Err(),
		Unit:          unit.String(),
		Current:       DeriveCurrent(snapshot, unit),
		UpcomingHours: DeriveUpcomingHours(snapshot, unit, now),
	}

	if place, ok := s.weather.SelectedPlace(); ok {
		state.SelectedPlace = &place
	}

	return state
}
