package widget

import "meteo-widget/internal/types"

// Client to server message types
const (
	TypeInput   = "input"
	TypeSearch  = "search"
	TypeSelect  = "select"
	TypeDismiss = "dismiss"
	TypeLocate  = "locate"
)

// Server to client message types
const (
	TypeLoading           = "loading"
	TypeLoaded            = "loaded"
	TypeError             = "error"
	TypeWeather           = "weather"
	TypeSuggestions       = "suggestions"
	TypeSuggestionsHidden = "suggestions_hidden"
	TypeQuery             = "query"
)

// Geolocation failures reported by the browser
const (
	LocateDenied      = "denied"
	LocateUnsupported = "unsupported"
)

// ClientMessage is an event forwarded by the widget page
type ClientMessage struct {
	Type      string   `json:"type"`
	Query     string   `json:"query,omitempty"`
	Index     int      `json:"index,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ServerMessage is a render instruction for the widget page
type ServerMessage struct {
	Type    string             `json:"type"`
	Message string             `json:"message,omitempty"`
	View    *types.WeatherView `json:"view,omitempty"`
	Places  []types.Place      `json:"places,omitempty"`
	HTML    string             `json:"html,omitempty"`
	Text    string             `json:"text,omitempty"`
}
