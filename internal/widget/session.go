package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"meteo-widget/internal/render"
	"meteo-widget/internal/suggest"
	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

const writeWait = 10 * time.Second

var errPositionDenied = errors.New("position request denied")

// session binds one browser connection to its own suggestion engine and
// forecast presenter. It is the display both of them render into.
type session struct {
	id        string
	conn      *websocket.Conn
	ctx       context.Context
	cancel    context.CancelFunc
	engine    *suggest.Engine
	presenter *weather.Presenter
	logger    *slog.Logger

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// run reads events until the connection closes, then cancels and waits for
// in-flight operations
func (s *session) run() {
	defer func() {
		s.engine.Cancel()
		s.cancel()
		s.wg.Wait()
	}()

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("widget connection closed unexpectedly", "error", err)
			}
			return
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg ClientMessage) {
	s.logger.Debug("widget event", "type", msg.Type)

	switch msg.Type {
	case TypeInput:
		s.engine.Input(msg.Query)
	case TypeDismiss:
		s.engine.Dismiss()
	case TypeSearch:
		s.engine.Cancel()
		s.async(func(ctx context.Context) error {
			return s.presenter.Search(ctx, msg.Query)
		})
	case TypeSelect:
		s.async(func(ctx context.Context) error {
			return s.engine.Select(ctx, msg.Index)
		})
	case TypeLocate:
		locator := locatorFor(msg)
		s.async(func(ctx context.Context) error {
			return s.presenter.Locate(ctx, locator)
		})
	default:
		s.logger.Warn("unknown widget event", "type", msg.Type)
	}
}

// async runs a presenter operation without blocking the read loop, the way
// page callbacks overlap in a browser
func (s *session) async(op func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := op(s.ctx); err != nil {
			s.logger.Debug("widget operation failed", "error", err)
		}
	}()
}

func (s *session) send(msg ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		s.logger.Debug("failed to set write deadline", "error", err)
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("failed to send widget message", "type", msg.Type, "error", err)
	}
}

func (s *session) ShowLoading() {
	s.send(ServerMessage{Type: TypeLoading})
}

func (s *session) HideLoading() {
	s.send(ServerMessage{Type: TypeLoaded})
}

func (s *session) ShowError(message string) {
	s.send(ServerMessage{Type: TypeError, Message: message})
}

func (s *session) ShowWeather(view *types.WeatherView) {
	html, err := render.WeatherHTML(view)
	if err != nil {
		s.logger.Error("failed to render weather", "error", err)
	}
	s.send(ServerMessage{Type: TypeWeather, View: view, HTML: html})
}

func (s *session) ShowSuggestions(places []types.Place) {
	html, err := render.SuggestionsHTML(places)
	if err != nil {
		s.logger.Error("failed to render suggestions", "error", err)
	}
	s.send(ServerMessage{Type: TypeSuggestions, Places: places, HTML: html})
}

func (s *session) HideSuggestions() {
	s.send(ServerMessage{Type: TypeSuggestionsHidden})
}

func (s *session) SetQuery(text string) {
	s.send(ServerMessage{Type: TypeQuery, Text: text})
}

// browserLocator replays the position the page already obtained
type browserLocator struct {
	supported bool
	coords    types.Coords
	err       error
}

func (l browserLocator) Supported() bool { return l.supported }

func (l browserLocator) CurrentPosition(ctx context.Context) (types.Coords, error) {
	return l.coords, l.err
}

func locatorFor(msg ClientMessage) browserLocator {
	switch {
	case msg.Error == LocateUnsupported:
		return browserLocator{}
	case msg.Error != "":
		return browserLocator{supported: true, err: fmt.Errorf("%w: %s", errPositionDenied, msg.Error)}
	case msg.Latitude == nil || msg.Longitude == nil:
		return browserLocator{supported: true, err: fmt.Errorf("%w: no coordinates", errPositionDenied)}
	}
	return browserLocator{supported: true, coords: types.NewCoords(*msg.Latitude, *msg.Longitude)}
}
