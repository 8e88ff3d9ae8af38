package weather

import "errors"

// Messages shown to the user. Each failure is terminal for the operation
// that produced it.
const (
	MsgCityNotFound           = "City not found"
	MsgFetchFailed            = "Failed to fetch weather data."
	MsgPositionUnavailable    = "Unable to retrieve your location."
	MsgGeolocationUnsupported = "Geolocation is not supported by your browser."
)

// YourLocationLabel names a forecast requested from the device position
const YourLocationLabel = "Your Location"

// ForecastCards is the number of days shown after today
const ForecastCards = 5

// Date layouts used in the view
const (
	layoutCurrentDate = "Monday, January 2, 2006"
	layoutCardDate    = "Mon, Jan 2"
	layoutClock       = "03:04 PM"
	layoutAPIDate     = "2006-01-02"
	layoutAPITime     = "2006-01-02T15:04"
)

var (
	ErrCityNotFound           = errors.New("city not found")
	ErrIncompleteForecast     = errors.New("forecast response is incomplete")
	ErrGeolocationUnsupported = errors.New("geolocation is not supported")
	ErrPositionUnavailable    = errors.New("position unavailable")
)
