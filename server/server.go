package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/handreplay/config"
	replayevents "github.com/lazharichir/handreplay/events"
	"github.com/lazharichir/handreplay/game"
	"github.com/lazharichir/handreplay/hand"
	"github.com/lazharichir/handreplay/server/connection"
	"github.com/lazharichir/handreplay/server/events"
	"github.com/lazharichir/handreplay/server/handlers"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 1 << 20
)

// Server serves replays over HTTP and WebSocket
type Server struct {
	cfg        config.Config
	logger     *slog.Logger
	engine     *game.Engine
	store      *replayevents.InMemoryEventStore
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	upgrader   websocket.Upgrader
	startOnce  sync.Once
}

// NewServer creates a new replay server
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	store := replayevents.NewInMemoryEventStore()
	engine := game.NewEngine(game.WithEventStore(store), game.WithLogger(logger))
	connMgr := connection.NewManager()
	dispatcher := events.NewDispatcher(connMgr, logger)

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		engine:     engine,
		store:      store,
		connMgr:    connMgr,
		cmdRouter:  handlers.NewCommandRouter(engine, dispatcher, cfg.ICMPrecision, logger),
		dispatcher: dispatcher,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP routes and starts the connection manager once.
func (s *Server) Handler() http.Handler {
	s.startOnce.Do(func() {
		go s.connMgr.Start()
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Post("/replay", s.handleReplay)
		r.Post("/icm", s.handleICM)
		r.Get("/replays/{handID}/events", s.handleGetEvents)
	})
	return r
}

// Start begins the server on the configured address
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// Close stops the connection manager.
func (s *Server) Close() {
	s.connMgr.Stop()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return s.cfg.AllowedOrigin == "*" || origin == "" || origin == s.cfg.AllowedOrigin
}

// corsMiddleware adds CORS headers to all responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade to websocket", "error", err)
		return
	}

	client := connection.NewClient(uuid.NewString(), conn)
	s.logger.Info("client connected", "remote", r.RemoteAddr, "client", client.ID)

	// Register with connection manager
	s.connMgr.Register <- client

	// Handle reading and writing in separate goroutines
	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads commands from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessage)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read failed", "client", client.ID, "error", err)
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.logger.Warn("command failed", "client", client.ID, "error", err)
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("websocket write failed", "client", client.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, events.ErrorPayload{Message: err.Error()})
}

// statusFor maps replay failures onto HTTP statuses.
func statusFor(err error) int {
	var malformed *hand.MalformedHandError
	var violation *game.ChipConservationViolation
	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.As(err, &violation):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
