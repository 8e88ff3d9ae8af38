package render

import (
	"bytes"
	"fmt"
	"html/template"

	"meteo-widget/internal/types"
)

// Element ids and classes match the widget page in internal/widget/static
var weatherTemplate = template.Must(template.New("weather").Parse(`<div class="current-weather">
  <h2 id="city-name">{{.Name}}</h2>
  <p id="current-date">{{.Date}}</p>
  <i id="weather-icon" class="fa-solid {{.Condition.Icon}}"></i>
  <p class="temperature"><span id="temp">{{.Temperature}}</span>°C</p>
  <p id="condition">{{.Condition.Description}}</p>
  <ul class="details">
    <li>Feels like <span id="feels-like">{{.FeelsLike}}</span>°C</li>
    <li>Wind <span id="wind-speed">{{.WindSpeed}}</span> km/h</li>
    <li>Humidity <span id="humidity">{{.Humidity}}</span>%</li>
    <li>Sunrise <span id="sunrise">{{.Sunrise}}</span></li>
    <li>Sunset <span id="sunset">{{.Sunset}}</span></li>
  </ul>
</div>
<div id="forecast-container">
{{- range .Forecast}}
  <div class="forecast-card">
    <p class="forecast-date">{{.Date}}</p>
    <i class="forecast-icon fa-solid {{.Condition.Icon}}"></i>
    <p class="forecast-temp">{{.TemperatureRange}}</p>
    <p class="forecast-desc">{{.Condition.Description}}</p>
  </div>
{{- end}}
</div>
`))

var suggestionsTemplate = template.Must(template.New("suggestions").Parse(`
{{- range $i, $p := .}}<div class="suggestion-item" data-index="{{$i}}"><strong>{{$p.Name}}</strong>, {{$p.Country}}{{if $p.Admin1}}, {{$p.Admin1}}{{end}}</div>
{{end}}`))

// WeatherHTML renders the forecast panel contents
func WeatherHTML(view *types.WeatherView) (string, error) {
	if view == nil {
		return "", fmt.Errorf("failed to render weather: nil view")
	}
	var buf bytes.Buffer
	if err := weatherTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render weather: %w", err)
	}
	return buf.String(), nil
}

// SuggestionsHTML renders one selectable row per place. Rows carry their
// position so a click can be sent back as a select event.
func SuggestionsHTML(places []types.Place) (string, error) {
	var buf bytes.Buffer
	if err := suggestionsTemplate.Execute(&buf, places); err != nil {
		return "", fmt.Errorf("failed to render suggestions: %w", err)
	}
	return buf.String(), nil
}
