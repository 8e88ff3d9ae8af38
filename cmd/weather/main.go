package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"meteo-widget/internal/config"
	"meteo-widget/internal/location"
	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/providers/openstreetmap"
	"meteo-widget/internal/render"
	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

type options struct {
	city       string
	latitude   float64
	longitude  float64
	name       string
	suggest    string
	pick       int
	configPath string
	hasCoords  bool
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout, os.Stderr, logger); err != nil {
		logger.Debug("weather lookup failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.StringVar(&opts.city, "city", "", "City name to look up")
	fs.Float64Var(&opts.latitude, "lat", 0, "Latitude in decimal degrees (with -lon)")
	fs.Float64Var(&opts.longitude, "lon", 0, "Longitude in decimal degrees (with -lat)")
	fs.StringVar(&opts.name, "name", "", "Display name for -lat/-lon (default \"Your Location\")")
	fs.StringVar(&opts.suggest, "suggest", "", "List places matching a partial name")
	fs.IntVar(&opts.pick, "pick", 0, "With -suggest, show the forecast for the Nth suggestion")
	fs.StringVar(&opts.configPath, "config", "", "Path to a config file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["lat"] != set["lon"] {
		return opts, errors.New("-lat and -lon must be given together")
	}
	opts.hasCoords = set["lat"]

	modes := 0
	for _, on := range []bool{opts.city != "", opts.hasCoords, opts.suggest != ""} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return opts, errors.New("give exactly one of -city, -lat/-lon or -suggest")
	}
	if opts.pick < 0 || (opts.pick > 0 && opts.suggest == "") {
		return opts, errors.New("-pick needs -suggest and a positive index")
	}
	return opts, nil
}

func run(ctx context.Context, cfg *config.Config, opts options, out, errOut io.Writer, logger *slog.Logger) error {
	client := openmeteo.NewClient(cfg.OpenMeteo, logger)
	return runWith(ctx, cfg, opts, client, weather.NewWeatherService(client, logger), render.NewText(out, errOut), logger)
}

func runWith(
	ctx context.Context,
	cfg *config.Config,
	opts options,
	geocoder weather.GeocodeProvider,
	svc weather.Service,
	view *render.Text,
	logger *slog.Logger,
) error {
	var namer weather.PlaceNamer
	if cfg.Widget.ReverseGeocode {
		namer = location.NewLocationService(openstreetmap.NewClient(cfg.Nominatim, logger), logger)
	}
	presenter := weather.NewPresenter(svc, view, namer, logger)

	switch {
	case opts.city != "":
		return presenter.Search(ctx, opts.city)
	case opts.hasCoords:
		if opts.name != "" {
			return presenter.Show(ctx, types.NewCoords(opts.latitude, opts.longitude), opts.name)
		}
		return presenter.Locate(ctx, fixedLocator{types.NewCoords(opts.latitude, opts.longitude)})
	default:
		return suggest(ctx, cfg, opts, geocoder, presenter, view)
	}
}

func suggest(
	ctx context.Context,
	cfg *config.Config,
	opts options,
	geocoder weather.GeocodeProvider,
	presenter *weather.Presenter,
	view *render.Text,
) error {
	query := strings.TrimSpace(opts.suggest)
	if utf8.RuneCountInString(query) < cfg.Widget.MinQueryLength {
		view.ShowError(fmt.Sprintf("Type at least %d characters", cfg.Widget.MinQueryLength))
		return fmt.Errorf("query %q too short", query)
	}

	resp, err := geocoder.SearchPlaces(ctx, query, cfg.Widget.SuggestionCount)
	if err != nil {
		view.ShowError(weather.MsgFetchFailed)
		return err
	}

	places := weather.PlacesFromResponse(resp)
	if len(places) == 0 {
		view.ShowError(weather.MsgCityNotFound)
		return weather.ErrCityNotFound
	}

	if opts.pick == 0 {
		view.ShowSuggestions(places)
		return nil
	}
	if opts.pick > len(places) {
		view.ShowSuggestions(places)
		return fmt.Errorf("-pick %d out of range, %d suggestions", opts.pick, len(places))
	}

	place := places[opts.pick-1]
	return presenter.Show(ctx, place.Coords(), place.DisplayName())
}

// fixedLocator reports coordinates given on the command line
type fixedLocator struct {
	coords types.Coords
}

func (l fixedLocator) Supported() bool { return true }

func (l fixedLocator) CurrentPosition(ctx context.Context) (types.Coords, error) {
	return l.coords, nil
}
