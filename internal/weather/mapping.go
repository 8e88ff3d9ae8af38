package weather

import (
	"fmt"
	"math"
	"time"

	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/types"
)

// mapForecastAPIResponseToView builds the view for today (daily index 0) and
// the cards for daily indices 1 through ForecastCards. Times in the response
// are already local to loc because the request asks for timezone=auto.
func mapForecastAPIResponseToView(
	coords types.Coords,
	name string,
	apiResponse *openmeteo.ForecastAPIResponse,
	now time.Time,
	loc *time.Location,
) (*types.WeatherView, error) {
	if apiResponse == nil {
		return nil, fmt.Errorf("%w: empty response", ErrIncompleteForecast)
	}

	daily := apiResponse.Daily
	if days := daily.Days(); days < ForecastCards+1 {
		return nil, fmt.Errorf("%w: got %d daily entries, need %d", ErrIncompleteForecast, days, ForecastCards+1)
	}

	sunrise, err := toClock(daily.Sunrise[0], loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sunrise: %w", err)
	}
	sunset, err := toClock(daily.Sunset[0], loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sunset: %w", err)
	}

	current := apiResponse.Current
	view := &types.WeatherView{
		Name:        name,
		Date:        now.In(loc).Format(layoutCurrentDate),
		Timezone:    loc.String(),
		Coordinates: coords,
		Temperature: roundHalfUp(current.Temperature2M),
		FeelsLike:   roundHalfUp(current.ApparentTemperature),
		Humidity:    current.RelativeHumidity2M,
		WindSpeed:   current.WindSpeed10M,
		Condition:   types.GetWeatherInfo(current.WeatherCode),
		Sunrise:     sunrise,
		Sunset:      sunset,
		Forecast:    make([]types.ForecastCard, 0, ForecastCards),
	}

	for i := 1; i <= ForecastCards; i++ {
		date, err := time.ParseInLocation(layoutAPIDate, daily.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse forecast date %q: %w", daily.Time[i], err)
		}

		view.Forecast = append(view.Forecast, types.ForecastCard{
			Date:      date.Format(layoutCardDate),
			Max:       roundHalfUp(daily.Temperature2MMax[i]),
			Min:       roundHalfUp(daily.Temperature2MMin[i]),
			Condition: types.GetWeatherInfo(daily.WeatherCode[i]),
		})
	}

	return view, nil
}

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity, so -2.5 becomes -2 and 2.5 becomes 3
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

func toClock(value string, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation(layoutAPITime, value, loc)
	if err != nil {
		return "", err
	}
	return t.Format(layoutClock), nil
}
