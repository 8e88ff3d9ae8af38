package types

import "fmt"

// WeatherView holds every value the widget writes into its display slots
// for one render: today's conditions plus the next five days.
type WeatherView struct {
	Name        string         `json:"name" example:"Berlin, Germany"`
	Date        string         `json:"date" example:"Monday, March 3, 2025"`
	Timezone    string         `json:"timezone" example:"Europe/Berlin"`
	Coordinates Coords         `json:"coordinates"`
	Temperature int            `json:"temperature" doc:"Rounded current temperature"`
	FeelsLike   int            `json:"feelsLike" doc:"Rounded apparent temperature"`
	Humidity    int            `json:"humidity" doc:"Relative humidity in percent"`
	WindSpeed   float64        `json:"windSpeed" doc:"Wind speed at 10m"`
	Condition   WeatherInfo    `json:"condition"`
	Sunrise     string         `json:"sunrise" example:"07:02 AM"`
	Sunset      string         `json:"sunset" example:"05:58 PM"`
	Forecast    []ForecastCard `json:"forecast"`
}

// ForecastCard is one day of the multi-day forecast
type ForecastCard struct {
	Date      string      `json:"date" example:"Tue, Mar 4"`
	Max       int         `json:"max"`
	Min       int         `json:"min"`
	Condition WeatherInfo `json:"condition"`
}

// TemperatureRange is the card text, e.g. "22° / 14°"
func (c ForecastCard) TemperatureRange() string {
	return fmt.Sprintf("%d° / %d°", c.Max, c.Min)
}
