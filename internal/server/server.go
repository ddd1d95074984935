package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/BoxLedger_Go/internal/handler"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/lootbox"
	"github.com/osse101/BoxLedger_Go/internal/metrics"
	"github.com/osse101/BoxLedger_Go/internal/middleware"
	"github.com/osse101/BoxLedger_Go/internal/sse"
	"github.com/osse101/BoxLedger_Go/internal/token"
)

type Server struct {
	httpServer *http.Server
	boxService lootbox.Service
	gateway    token.Gateway
	sseHub     *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, store handler.Pinger, boxService lootbox.Service, gateway token.Gateway, sseHub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, store, boxService, gateway, sseHub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		boxService: boxService,
		gateway:    gateway,
		sseHub:     sseHub,
	}
}

// NewRouter builds the HTTP route tree
func NewRouter(apiKey string, trustedProxies []string, store handler.Pinger, boxService lootbox.Service, gateway token.Gateway, sseHub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	proxies := ParseTrustedProxies(trustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, proxies, detector))
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		boxHandler := handler.NewBoxHandler(boxService)
		r.Route("/box", func(r chi.Router) {
			r.With(middleware.CallerIdentity).Post("/open", boxHandler.HandleOpenBox)
			r.Get("/rewards", boxHandler.HandleGetRewards)
			r.Get("/stats", boxHandler.HandleGetStats)
			r.Get("/participants", boxHandler.HandleGetParticipants)
			r.Get("/leaderboards", boxHandler.HandleGetLeaderboards)
			r.Get("/premium-left", boxHandler.HandleGetPremiumLeft)
		})

		tokenHandler := handler.NewTokenHandler(gateway)
		r.Route("/token", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.CallerIdentity)
				r.Post("/transfer", tokenHandler.HandleTransfer)
				r.Post("/transfer-call", tokenHandler.HandleTransferCall)
				r.Post("/register", tokenHandler.HandleRegister)
			})
			r.Get("/balance", tokenHandler.HandleGetBalance)
			r.Get("/supply", tokenHandler.HandleGetSupply)
			r.Get("/metadata", tokenHandler.HandleGetMetadata)
		})

		adminMetricsHandler := handler.NewAdminMetricsHandler(nil, sseHub)
		adminCacheHandler := handler.NewAdminCacheHandler(boxService)
		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.CallerIdentity).Post("/premium", handler.HandleGrantPremium(boxService))
			r.With(middleware.CallerIdentity).Post("/erase", handler.HandleEraseState(boxService))
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
			r.Get("/cache/stats", adminCacheHandler.HandleGetCacheStats)
		})

		if sseHub != nil {
			r.Get("/events", sse.Handler(sseHub))
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
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
		statusCode:     http.StatusOK, // default status
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

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
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
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"caller", r.Header.Get(middleware.HeaderAccountID),
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

// Stop stops the server gracefully. Open event streams are closed first so
// Shutdown does not wait on them.
func (s *Server) Stop(ctx context.Context) error {
	if s.sseHub != nil {
		s.sseHub.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
