package widget

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/suggest"
	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

type stubService struct{}

func (stubService) Fetch(ctx context.Context, coords types.Coords, name string) (*types.WeatherView, error) {
	if coords.Latitude == 0 && coords.Longitude == 0 {
		return nil, weather.ErrIncompleteForecast
	}
	return &types.WeatherView{
		Name:        name,
		Coordinates: coords,
		Temperature: 22,
		Condition:   types.GetWeatherInfo(0),
		Forecast: []types.ForecastCard{
			{Date: "Tue, Mar 4", Max: 22, Min: 14, Condition: types.GetWeatherInfo(61)},
		},
	}, nil
}

func (stubService) FindPlace(ctx context.Context, city string) (*types.Place, error) {
	if city != "Berlin" {
		return nil, weather.ErrCityNotFound
	}
	return &types.Place{Name: "Berlin", Country: "Germany", Latitude: 52.52, Longitude: 13.41}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) SearchPlaces(ctx context.Context, name string, count int) (*openmeteo.GeocodingAPIResponse, error) {
	if !strings.HasPrefix(name, "Par") {
		return &openmeteo.GeocodingAPIResponse{}, nil
	}
	return &openmeteo.GeocodingAPIResponse{Results: []openmeteo.GeocodingResult{
		{Name: "Paris", Country: "France", Admin1: "Île-de-France", Latitude: 48.85341, Longitude: 2.3488},
		{Name: "Paris", Country: "United States", Admin1: "Texas", Latitude: 33.66094, Longitude: -95.55551},
	}}, nil
}

type stubNamer struct{}

func (stubNamer) Name(ctx context.Context, coords types.Coords) (string, error) {
	return "Aspen, United States", nil
}

func dialWidget(t *testing.T, namer weather.PlaceNamer) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := suggest.Options{Debounce: time.Millisecond, MinQueryLength: 2, Count: 5}
	srv := httptest.NewServer(NewHandler(stubService{}, stubGeocoder{}, namer, opts, logger))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial widget: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil collects messages up to and including the first of type last
func readUntil(t *testing.T, conn *websocket.Conn, last string) []ServerMessage {
	t.Helper()

	var msgs []ServerMessage
	for {
		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			t.Fatalf("failed to set read deadline: %v", err)
		}
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("failed to read message (got %v so far): %v", typesOf(msgs), err)
		}
		msgs = append(msgs, msg)
		if msg.Type == last {
			return msgs
		}
	}
}

func typesOf(msgs []ServerMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Type)
	}
	return out
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %s: %v", msg.Type, err)
	}
}

func ptr(v float64) *float64 { return &v }

func TestWidget_SuggestAndSelect(t *testing.T) {
	conn := dialWidget(t, nil)

	send(t, conn, ClientMessage{Type: TypeInput, Query: "Par"})
	msgs := readUntil(t, conn, TypeSuggestions)
	got := msgs[len(msgs)-1]

	if len(got.Places) != 2 {
		t.Fatalf("got %d places, want 2", len(got.Places))
	}
	if !strings.Contains(got.HTML, `data-index="1"`) || !strings.Contains(got.HTML, "<strong>Paris</strong>, United States, Texas") {
		t.Errorf("unexpected suggestions html: %s", got.HTML)
	}

	send(t, conn, ClientMessage{Type: TypeSelect, Index: 1})
	msgs = readUntil(t, conn, TypeLoaded)

	want := []string{TypeQuery, TypeSuggestionsHidden, TypeLoading, TypeWeather, TypeLoaded}
	if !slices.Equal(typesOf(msgs), want) {
		t.Fatalf("messages = %v, want %v", typesOf(msgs), want)
	}
	if msgs[0].Text != "Paris" {
		t.Errorf("query text = %q, want Paris", msgs[0].Text)
	}

	view := msgs[3].View
	if view == nil || view.Name != "Paris, United States" {
		t.Fatalf("view = %+v, want Paris, United States", view)
	}
	if view.Coordinates != types.NewCoords(33.66094, -95.55551) {
		t.Errorf("coordinates = %+v", view.Coordinates)
	}
	if !strings.Contains(msgs[3].HTML, "22° / 14°") {
		t.Errorf("weather html missing card text: %s", msgs[3].HTML)
	}
}

func TestWidget_ShortInputHidesList(t *testing.T) {
	conn := dialWidget(t, nil)

	send(t, conn, ClientMessage{Type: TypeInput, Query: "P"})
	msgs := readUntil(t, conn, TypeSuggestionsHidden)
	if len(msgs) != 1 {
		t.Errorf("messages = %v, want only %s", typesOf(msgs), TypeSuggestionsHidden)
	}
}

func TestWidget_Search(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		want        []string
		wantMessage string
		wantName    string
	}{
		{
			name:     "found",
			query:    "Berlin",
			want:     []string{TypeSuggestionsHidden, TypeLoading, TypeLoading, TypeWeather, TypeLoaded},
			wantName: "Berlin, Germany",
		},
		{
			name:        "not found",
			query:       "Qwxyzzy",
			want:        []string{TypeSuggestionsHidden, TypeLoading, TypeError, TypeLoaded},
			wantMessage: weather.MsgCityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dialWidget(t, nil)

			send(t, conn, ClientMessage{Type: TypeSearch, Query: tt.query})
			msgs := readUntil(t, conn, TypeLoaded)

			if !slices.Equal(typesOf(msgs), tt.want) {
				t.Fatalf("messages = %v, want %v", typesOf(msgs), tt.want)
			}
			for _, m := range msgs {
				if m.Type == TypeError && m.Message != tt.wantMessage {
					t.Errorf("error message = %q, want %q", m.Message, tt.wantMessage)
				}
				if m.Type == TypeWeather && m.View.Name != tt.wantName {
					t.Errorf("view name = %q, want %q", m.View.Name, tt.wantName)
				}
			}
		})
	}
}

func TestWidget_Locate(t *testing.T) {
	tests := []struct {
		name        string
		namer       weather.PlaceNamer
		msg         ClientMessage
		last        string
		want        []string
		wantMessage string
		wantName    string
	}{
		{
			name:        "unsupported",
			msg:         ClientMessage{Type: TypeLocate, Error: LocateUnsupported},
			last:        TypeError,
			want:        []string{TypeError},
			wantMessage: weather.MsgGeolocationUnsupported,
		},
		{
			name:        "denied",
			msg:         ClientMessage{Type: TypeLocate, Error: LocateDenied},
			last:        TypeLoaded,
			want:        []string{TypeLoading, TypeError, TypeLoaded},
			wantMessage: weather.MsgPositionUnavailable,
		},
		{
			name:     "position",
			msg:      ClientMessage{Type: TypeLocate, Latitude: ptr(39.19), Longitude: ptr(-106.82)},
			last:     TypeLoaded,
			want:     []string{TypeLoading, TypeLoading, TypeWeather, TypeLoaded},
			wantName: weather.YourLocationLabel,
		},
		{
			name:     "position with reverse geocoding",
			namer:    stubNamer{},
			msg:      ClientMessage{Type: TypeLocate, Latitude: ptr(39.19), Longitude: ptr(-106.82)},
			last:     TypeLoaded,
			want:     []string{TypeLoading, TypeLoading, TypeWeather, TypeLoaded},
			wantName: "Aspen, United States",
		},
		{
			name:        "fetch failure",
			msg:         ClientMessage{Type: TypeLocate, Latitude: ptr(0), Longitude: ptr(0)},
			last:        TypeLoaded,
			want:        []string{TypeLoading, TypeLoading, TypeError, TypeLoaded},
			wantMessage: weather.MsgFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dialWidget(t, tt.namer)

			send(t, conn, tt.msg)
			msgs := readUntil(t, conn, tt.last)

			if !slices.Equal(typesOf(msgs), tt.want) {
				t.Fatalf("messages = %v, want %v", typesOf(msgs), tt.want)
			}
			for _, m := range msgs {
				if m.Type == TypeError && m.Message != tt.wantMessage {
					t.Errorf("error message = %q, want %q", m.Message, tt.wantMessage)
				}
				if m.Type == TypeWeather && m.View.Name != tt.wantName {
					t.Errorf("view name = %q, want %q", m.View.Name, tt.wantName)
				}
			}
		})
	}
}

func TestLocatorFor(t *testing.T) {
	if l := locatorFor(ClientMessage{Error: LocateUnsupported}); l.Supported() {
		t.Error("unsupported locator reports support")
	}
	if _, err := locatorFor(ClientMessage{Latitude: ptr(1)}).CurrentPosition(context.Background()); err == nil {
		t.Error("expected error when a coordinate is missing")
	}
	coords, err := locatorFor(ClientMessage{Latitude: ptr(1), Longitude: ptr(2)}).CurrentPosition(context.Background())
	if err != nil || coords != types.NewCoords(1, 2) {
		t.Errorf("CurrentPosition() = %+v, %v", coords, err)
	}
}

func TestPage(t *testing.T) {
	rec := httptest.NewRecorder()
	Page().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, id := range []string{"city-input", "suggestions-container", "weather-data", "error-message", "loading"} {
		if !strings.Contains(rec.Body.String(), `id="`+id+`"`) {
			t.Errorf("page missing #%s", id)
		}
	}
}
