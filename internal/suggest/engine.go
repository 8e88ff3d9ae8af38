package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"meteo-widget/internal/config"
	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

var ErrNoSuchSuggestion = errors.New("no such suggestion")

// ListView is the dropdown the engine renders into
type ListView interface {
	ShowSuggestions(places []types.Place)
	HideSuggestions()
	// SetQuery replaces the search input text
	SetQuery(text string)
}

// Forecaster renders the forecast for a chosen place
type Forecaster interface {
	Show(ctx context.Context, coords types.Coords, name string) error
}

// Timer is the pending debounce timer
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options tune the engine
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	Count          int
	// DiscardStale drops responses to lookups that a newer lookup superseded
	DiscardStale bool
}

// OptionsFromConfig maps the widget settings to engine options
func OptionsFromConfig(cfg config.WidgetConfig) Options {
	return Options{
		Debounce:       cfg.Debounce,
		MinQueryLength: cfg.MinQueryLength,
		Count:          cfg.SuggestionCount,
		DiscardStale:   cfg.DiscardStaleSuggestions,
	}
}

// Engine turns search-box keystrokes into a debounced list of place
// candidates. It is safe for concurrent use; lookups run on the timer's
// goroutine.
type Engine struct {
	ctx        context.Context
	geocoder   weather.GeocodeProvider
	view       ListView
	forecaster Forecaster
	opts       Options
	afterFunc  AfterFunc
	logger     *slog.Logger

	mu     sync.Mutex
	timer  Timer
	places []types.Place
	seq    uint64
}

// NewEngine creates an engine. ctx bounds every lookup the engine issues.
func NewEngine(
	ctx context.Context,
	geocoder weather.GeocodeProvider,
	view ListView,
	forecaster Forecaster,
	opts Options,
	logger *slog.Logger,
) *Engine {
	if opts.MinQueryLength < 1 {
		opts.MinQueryLength = 2
	}
	if opts.Count < 1 {
		opts.Count = 5
	}
	return &Engine{
		ctx:        ctx,
		geocoder:   geocoder,
		view:       view,
		forecaster: forecaster,
		opts:       opts,
		afterFunc:  systemAfterFunc,
		logger:     logger.With("component", "suggestion-engine"),
	}
}

// Input handles a change of the search input
func (e *Engine) Input(query string) {
	query = strings.TrimSpace(query)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()

	if utf8.RuneCountInString(query) < e.opts.MinQueryLength {
		e.hideLocked()
		return
	}

	e.timer = e.afterFunc(e.opts.Debounce, func() {
		e.lookup(query)
	})
}

func (e *Engine) lookup(query string) {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	e.logger.Debug("looking up suggestions", "query", query, "seq", seq)

	resp, err := e.geocoder.SearchPlaces(e.ctx, query, e.opts.Count)
	if err != nil {
		e.logger.Error("failed to fetch suggestions", "query", query, "error", err)
		return
	}
	places := weather.PlacesFromResponse(resp)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.opts.DiscardStale && seq != e.seq {
		e.logger.Debug("discarding stale suggestions", "query", query, "seq", seq, "latest", e.seq)
		return
	}

	if len(places) == 0 {
		e.hideLocked()
		return
	}

	e.places = places
	e.view.ShowSuggestions(places)
}

// Select picks the suggestion at index and shows its forecast without
// geocoding again
func (e *Engine) Select(ctx context.Context, index int) error {
	e.mu.Lock()
	if index < 0 || index >= len(e.places) {
		e.mu.Unlock()
		return fmt.Errorf("%w: index %d", ErrNoSuchSuggestion, index)
	}
	place := e.places[index]
	e.view.SetQuery(place.Name)
	e.hideLocked()
	e.mu.Unlock()

	return e.forecaster.Show(ctx, place.Coords(), place.DisplayName())
}

// Dismiss hides the list, as a click outside it does
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hideLocked()
}

// Cancel drops the pending lookup and hides the list
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
	e.hideLocked()
}

// Places returns the candidates currently listed
func (e *Engine) Places() []types.Place {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.Place(nil), e.places...)
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) hideLocked() {
	e.places = nil
	e.view.HideSuggestions()
}
