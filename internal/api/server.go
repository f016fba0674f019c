package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/tradewire/bookfeed/internal/domain/book"
	"github.com/tradewire/bookfeed/internal/domain/ingest"
	"github.com/tradewire/bookfeed/internal/ws"
	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/logger"
	"github.com/tradewire/bookfeed/pkg/postgresql"
)

// HealthChecker reports store connectivity for the health endpoint.
type HealthChecker interface {
	CheckHealth(ctx context.Context) *postgresql.HealthCheck
}

// Server exposes the ingestion and query HTTP surface plus the WebSocket
// upgrade endpoint.
type Server struct {
	cfg         *config.Config
	router      *mux.Router
	hub         *ws.Hub
	sequencer   ingest.Sequencer
	bookUsecase book.Usecase
	health      HealthChecker
	logger      logger.Interface

	httpServer *http.Server
}

// NewServer wires the routes and middleware.
func NewServer(
	cfg *config.Config,
	hub *ws.Hub,
	sequencer ingest.Sequencer,
	bookUsecase book.Usecase,
	health HealthChecker,
	logger logger.Interface,
) *Server {
	s := &Server{
		cfg:         cfg,
		router:      mux.NewRouter(),
		hub:         hub,
		sequencer:   sequencer,
		bookUsecase: bookUsecase,
		health:      health,
		logger:      logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")
	api.HandleFunc("/executions", s.handleSubmitExecutions).Methods("POST")
	api.HandleFunc("/orderbook/{symbol}", s.handleGetOrderBook).Methods("GET")

	s.router.HandleFunc("/ws", ws.Handler(s.hub, s.cfg.WS, s.logger))
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully assembled HTTP handler, CORS included.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	})
	return c.Handler(s.router)
}

// Start blocks serving HTTP until Shutdown or a listener failure.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.App.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	s.logger.Info("http server starting", logger.Field{Key: "addr", Value: addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondError(w http.ResponseWriter, status int, code string, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}
