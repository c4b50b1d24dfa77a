package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hieuluvjingliu/GardenBred/internal/database"
	"github.com/hieuluvjingliu/GardenBred/internal/game"
	"github.com/hieuluvjingliu/GardenBred/internal/handler"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
	"github.com/hieuluvjingliu/GardenBred/internal/push"
	"github.com/hieuluvjingliu/GardenBred/internal/session"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance. dbPool may be nil when the
// in-memory store is active.
func NewServer(port int, dbPool database.Pool, gameSvc game.Service, sessions *session.Manager, hub *push.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(sessions)
	r.Post("/auth/login", authHandler.Login)

	// Everything below requires a session
	gameHandler := handler.NewGameHandler(gameSvc)
	wsHandler := handler.NewWSHandler(push.NewWSHandler(hub))
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware(sessions))

		r.Get("/me/state", gameHandler.FetchState)

		r.Route("/shop", func(r chi.Router) {
			r.Post("/buy", gameHandler.BuyShopItem)
			r.Post("/buy-trap", gameHandler.BuyTrap)
			r.Post("/buy-floor", gameHandler.BuyFloor)
		})

		r.Route("/plot", func(r chi.Router) {
			r.Post("/place-pot", gameHandler.PlacePot)
			r.Post("/plant", gameHandler.Plant)
			r.Post("/harvest", gameHandler.Harvest)
			r.Post("/harvest-all", gameHandler.HarvestAll)
			r.Post("/remove", gameHandler.RemovePlot)
		})

		r.Post("/breed", gameHandler.Breed)
		r.Post("/sell/shop", gameHandler.SellToShop)

		r.Route("/market", func(r chi.Router) {
			r.Post("/list", gameHandler.ListOnMarket)
			r.Post("/buy", gameHandler.BuyFromMarket)
		})

		r.Get("/online", gameHandler.OnlineUsers)
		r.Route("/visit", func(r chi.Router) {
			r.Get("/floors", gameHandler.VisitFloors)
			r.Get("/floor", gameHandler.VisitFloor)
			r.Post("/steal-plot", gameHandler.StealPlot)
		})

		r.Get("/ws", wsHandler.Connect)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack passes through to the underlying writer so websocket upgrades
// work behind the logging middleware
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and metrics scrapes would drown the log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
