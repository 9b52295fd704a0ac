package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"weatherdesk/internal/models"

	"go.uber.org/zap"
)

// SearchState tracks where the search controller is in its lookup cycle.
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchDebouncing
	SearchInFlight
	SearchSettled
	SearchFailed
)

func (s SearchState) String() string {
	switch s {
	case SearchDebouncing:
		return "debouncing"
	case SearchInFlight:
		return "in_flight"
	case SearchSettled:
		return "settled"
	case SearchFailed:
		return "failed"
	default:
		return "idle"
	}
}

// PlaceSearcher resolves a typed name into candidate places.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, name string, count int) ([]models.Place, error)
}

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 5

// SearchController turns raw keystrokes into at most one live lookup
// request. Every query change restarts the debounce timer; when the
// timer fires, any previous in-flight lookup is cancelled before a new
// one starts, so the newest query always wins. Lookup failures are
// logged and swallowed: a broken search must not disturb the rest of
// the UI, and whatever suggestions were showing stay showing.
type SearchController struct {
	searcher PlaceSearcher
	logger   *zap.Logger
	debounce time.Duration

	mu          sync.Mutex
	state       SearchState
	query       string
	timer       *time.Timer
	cancel      context.CancelFunc
	gen         uint64
	suggestions []models.Place
}

func NewSearchController(searcher PlaceSearcher, debounce time.Duration, logger *zap.Logger) *SearchController {
	return &SearchController{
		searcher: searcher,
		logger:   logger,
		debounce: debounce,
	}
}

// SetQuery records a keystroke. An empty query clears the suggestions
// immediately and issues no request; anything else (re)starts the
// debounce timer, discarding a pending timer from a previous keystroke.
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if query == "" {
		c.invalidateLocked()
		c.suggestions = nil
		c.state = SearchIdle
		return
	}

	c.state = SearchDebouncing
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(query)
	})
}

// fire runs when the debounce timer elapses without further keystrokes.
func (c *SearchController) fire(query string) {
	c.mu.Lock()

	// A stopped timer can still have fired already; only proceed if the
	// query it was armed for is still the current one.
	if query != c.query {
		c.mu.Unlock()
		return
	}

	c.invalidateLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	gen := c.gen
	c.state = SearchInFlight
	c.mu.Unlock()

	go c.lookup(ctx, query, gen)
}

func (c *SearchController) lookup(ctx context.Context, query string, gen uint64) {
	places, err := c.searcher.SearchPlaces(ctx, query, MaxSuggestions)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// Superseded by a newer lookup or a cleared query.
		return
	}
	c.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.logger.Warn("Place lookup failed",
			zap.String("query", query),
			zap.Error(err))
		c.state = SearchFailed
		return
	}

	if len(places) > MaxSuggestions {
		places = places[:MaxSuggestions]
	}
	c.suggestions = places
	c.state = SearchSettled
}

// invalidateLocked cancels the in-flight lookup, if any, and bumps the
// generation so a completion already past cancellation is discarded.
func (c *SearchController) invalidateLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// Select picks a suggestion by position, clearing the list and any
// pending or in-flight lookup.
func (c *SearchController) Select(index int) (models.Place, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.suggestions) {
		return models.Place{}, errors.New("suggestion index out of range")
	}
	place := c.suggestions[index]

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.invalidateLocked()
	c.suggestions = nil
	c.state = SearchIdle

	return place, nil
}

func (c *SearchController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Suggestions returns a copy of the current suggestion list.
func (c *SearchController) Suggestions() []models.Place {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Place, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}
