package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"meteo-widget/internal/types"
)

// Display is the surface the presenter writes to
type Display interface {
	// ShowLoading shows the loading state and hides any prior result, error
	// and suggestion list
	ShowLoading()
	HideLoading()
	// ShowError shows message and hides the forecast panel
	ShowError(message string)
	// ShowWeather fills the forecast panel and hides any error
	ShowWeather(view *types.WeatherView)
}

// Locator supplies the device position
type Locator interface {
	Supported() bool
	CurrentPosition(ctx context.Context) (types.Coords, error)
}

// PlaceNamer names a coordinate for display
type PlaceNamer interface {
	Name(ctx context.Context, coords types.Coords) (string, error)
}

// Presenter drives one display from search, selection and geolocation events
type Presenter struct {
	service Service
	display Display
	namer   PlaceNamer
	logger  *slog.Logger
}

// NewPresenter creates a presenter. namer may be nil, in which case
// geolocated forecasts are labelled YourLocationLabel.
func NewPresenter(service Service, display Display, namer PlaceNamer, logger *slog.Logger) *Presenter {
	return &Presenter{
		service: service,
		display: display,
		namer:   namer,
		logger:  logger.With("component", "forecast-presenter"),
	}
}

// Show fetches and renders the forecast for a coordinate
func (p *Presenter) Show(ctx context.Context, coords types.Coords, name string) error {
	p.display.ShowLoading()
	defer p.display.HideLoading()

	view, err := p.service.Fetch(ctx, coords, name)
	if err != nil {
		p.display.ShowError(MsgFetchFailed)
		return err
	}

	p.display.ShowWeather(view)
	return nil
}

// Search geocodes a city name and renders its forecast. Blank input is ignored.
func (p *Presenter) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}

	p.display.ShowLoading()

	place, err := p.service.FindPlace(ctx, city)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			p.display.ShowError(MsgCityNotFound)
		} else {
			p.display.ShowError(MsgFetchFailed)
		}
		p.display.HideLoading()
		return err
	}

	return p.Show(ctx, place.Coords(), place.DisplayName())
}

// Locate renders the forecast for the device position
func (p *Presenter) Locate(ctx context.Context, locator Locator) error {
	if locator == nil || !locator.Supported() {
		p.display.ShowError(MsgGeolocationUnsupported)
		return ErrGeolocationUnsupported
	}

	p.display.ShowLoading()

	coords, err := locator.CurrentPosition(ctx)
	if err != nil {
		p.logger.Debug("position unavailable", "error", err)
		p.display.ShowError(MsgPositionUnavailable)
		p.display.HideLoading()
		return errors.Join(ErrPositionUnavailable, err)
	}

	return p.Show(ctx, coords, p.nameFor(ctx, coords))
}

func (p *Presenter) nameFor(ctx context.Context, coords types.Coords) string {
	if p.namer == nil {
		return YourLocationLabel
	}

	name, err := p.namer.Name(ctx, coords)
	if err != nil || name == "" {
		p.logger.Debug("falling back to generic location label",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return YourLocationLabel
	}
	return name
}
