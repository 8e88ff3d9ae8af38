package widget

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"meteo-widget/internal/suggest"
	"meteo-widget/internal/weather"
)

//go:embed static/index.html
var indexHTML []byte

// Handler upgrades widget page connections and runs one session per
// connection
type Handler struct {
	upgrader websocket.Upgrader
	service  weather.Service
	geocoder weather.GeocodeProvider
	namer    weather.PlaceNamer
	opts     suggest.Options
	logger   *slog.Logger
}

// NewHandler creates the WebSocket handler. namer may be nil.
func NewHandler(
	service weather.Service,
	geocoder weather.GeocodeProvider,
	namer weather.PlaceNamer,
	opts suggest.Options,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		service:  service,
		geocoder: geocoder,
		namer:    namer,
		opts:     opts,
		logger:   logger.With("component", "widget"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade widget connection", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	s := &session{
		id:     id,
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
		logger: h.logger.With("session", id),
	}
	s.presenter = weather.NewPresenter(h.service, s, h.namer, s.logger)
	s.engine = suggest.NewEngine(ctx, h.geocoder, s, s.presenter, h.opts, s.logger)

	s.logger.Info("widget session started", "remote", r.RemoteAddr)
	s.run()
	s.logger.Info("widget session ended")
}

// Page serves the widget page
func Page() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
}
