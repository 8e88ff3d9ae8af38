package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"meteo-widget/internal/types"
)

// Text writes the widget to a terminal. Results go to out, progress and
// errors to errOut.
type Text struct {
	out    io.Writer
	errOut io.Writer
}

func NewText(out, errOut io.Writer) *Text {
	return &Text{out: out, errOut: errOut}
}

func (t *Text) ShowLoading() {
	fmt.Fprintln(t.errOut, "Loading...")
}

func (t *Text) HideLoading() {}

func (t *Text) ShowError(message string) {
	fmt.Fprintf(t.errOut, "error: %s\n", message)
}

func (t *Text) ShowWeather(view *types.WeatherView) {
	fmt.Fprintf(t.out, "\n%s\n", view.Name)
	fmt.Fprintf(t.out, "%s\n", view.Date)
	fmt.Fprintln(t.out, strings.Repeat("─", 34))

	tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Temperature:\t%d°C\n", view.Temperature)
	fmt.Fprintf(tw, "Feels like:\t%d°C\n", view.FeelsLike)
	fmt.Fprintf(tw, "Condition:\t%s\n", view.Condition.Description)
	fmt.Fprintf(tw, "Humidity:\t%d%%\n", view.Humidity)
	fmt.Fprintf(tw, "Wind:\t%v km/h\n", view.WindSpeed)
	fmt.Fprintf(tw, "Sunrise:\t%s\n", view.Sunrise)
	fmt.Fprintf(tw, "Sunset:\t%s\n", view.Sunset)
	tw.Flush()

	fmt.Fprintln(t.out)
	tw = tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	for _, card := range view.Forecast {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", card.Date, card.TemperatureRange(), card.Condition.Description)
	}
	tw.Flush()
	fmt.Fprintln(t.out)
}

// ShowSuggestions lists candidates numbered from 1
func (t *Text) ShowSuggestions(places []types.Place) {
	for i, p := range places {
		fmt.Fprintf(t.out, "%2d. %s\n", i+1, p.Label())
	}
}

func (t *Text) HideSuggestions() {}

func (t *Text) SetQuery(text string) {}
