package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotel/internal/auth"
	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/logging"
	"hotel/internal/metrics"
	"hotel/internal/models"
	"hotel/internal/service"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// Services bundles the use cases the HTTP API exposes.
type Services struct {
	Users        *service.UserService
	Rooms        *service.RoomService
	Reservations *service.ReservationService
	Staff        *service.StaffService
	Overview     *service.OverviewService
}

// HTTPServer exposes the hotel JSON API.
type HTTPServer struct {
	cfg      *config.Config
	db       *database.DB
	sessions *auth.Sessions
	svc      Services
	server   *http.Server
	limiter  *rateLimiter
	log      *zerolog.Logger

	afterSeed func(ctx context.Context) error
}

func NewHTTPServer(cfg *config.Config, db *database.DB, sessions *auth.Sessions, svc Services, logger *zerolog.Logger) *HTTPServer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	srv := &HTTPServer{
		cfg:      cfg,
		db:       db,
		sessions: sessions,
		svc:      svc,
		limiter:  newRateLimiter(&cfg.API),
		log:      logging.Component(logger, "http"),
	}

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		logging.FromContext(r.Context(), srv.log).Error().Interface("panic", v).Msg("handler panic")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
	srv.routes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.API.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})

	var handler http.Handler = router
	handler = srv.sessionMiddleware(handler)
	handler = srv.limiter.Wrap(handler)
	handler = corsHandler.Handler(handler)
	handler = srv.loggingMiddleware(handler)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv
}

func (s *HTTPServer) routes(r *httprouter.Router) {
	s.handle(r, http.MethodGet, "/healthz", s.handleHealthz)
	s.handle(r, http.MethodGet, "/readyz", s.handleReadyz)

	s.handle(r, http.MethodGet, "/api/auth", s.handleSession)
	s.handle(r, http.MethodPost, "/api/auth/register", s.handleRegister)
	s.handle(r, http.MethodPost, "/api/auth/login", s.handleLogin)
	s.handle(r, http.MethodPost, "/api/auth/logout", s.handleLogout)
	// Paths used by the web client.
	s.handle(r, http.MethodPost, "/api/auth", s.handleLogin)
	s.handle(r, http.MethodDelete, "/api/auth", s.handleLogout)
	s.handle(r, http.MethodPost, "/api/register", s.handleRegister)

	s.handle(r, http.MethodGet, "/api/rooms", s.handleListRooms)
	s.handle(r, http.MethodPost, "/api/rooms", s.handleCreateRoom)
	s.handle(r, http.MethodGet, "/api/rooms/:id", s.handleGetRoom)
	s.handle(r, http.MethodPut, "/api/rooms/:id", s.handleUpdateRoom)
	s.handle(r, http.MethodDelete, "/api/rooms/:id", s.handleDeleteRoom)

	s.handle(r, http.MethodGet, "/api/reservations", s.handleListReservations)
	s.handle(r, http.MethodPost, "/api/reservations", s.handleCreateReservation)
	s.handle(r, http.MethodGet, "/api/reservations/:id", s.handleGetReservation)
	s.handle(r, http.MethodPut, "/api/reservations/:id", s.handleUpdateReservation)
	s.handle(r, http.MethodGet, "/api/reservations/:id/confirmation", s.handleConfirmation)

	s.handle(r, http.MethodGet, "/api/staff", s.handleListStaff)
	s.handle(r, http.MethodPost, "/api/staff", s.handleCreateStaff)
	s.handle(r, http.MethodGet, "/api/staff/:id", s.handleGetStaff)
	s.handle(r, http.MethodPut, "/api/staff/:id", s.handleUpdateStaff)
	s.handle(r, http.MethodDelete, "/api/staff/:id", s.handleDeleteStaff)

	s.handle(r, http.MethodGet, "/api/admin/overview", s.handleOverview)
	s.handle(r, http.MethodGet, "/api/admin/users", s.handleListUsers)
	s.handle(r, http.MethodGet, "/api/admin/reservations/export", s.handleExportReservations)

	s.handle(r, http.MethodPost, "/api/seed", s.handleSeed)
}

// handle registers h and records request metrics under the route pattern,
// so ids in the path do not explode label cardinality.
func (s *HTTPServer) handle(r *httprouter.Router, method, path string, h httprouter.Handle) {
	route := method + " " + path
	r.Handle(method, path, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		start := time.Now()
		rec, ok := w.(*statusRecorder)
		if !ok {
			rec = &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		}
		h(rec, req, ps)
		metrics.ObserveHTTP(route, rec.status, time.Since(start))
	})
}

// Handler returns the fully wrapped handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.db.Ready(ctx); err != nil {
		logging.FromContext(r.Context(), s.log).Warn().Err(err).Msg("readiness check failed")
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// loggingMiddleware assigns a request id, stores a request-scoped logger in
// the context and writes one access log line per request.
func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLog := s.log.With().Str("request_id", requestID).Logger()
		r = r.WithContext(reqLog.WithContext(r.Context()))

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		reqLog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// sessionMiddleware resolves the session cookie into the current user. A
// missing or unusable session leaves the request anonymous.
func (s *HTTPServer) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(models.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, claims, err := s.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			logging.FromContext(r.Context(), s.log).Warn().Err(err).Msg("session lookup failed")
		}
		if user != nil {
			r = r.WithContext(auth.WithUser(r.Context(), user, claims))
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps a service error onto its HTTP status. Anything that
// is not a domain error is logged and reported as a 500.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context(), s.log).Error().Err(err).Msg(fallback)
		writeError(w, status, fallback)
		return
	}
	writeError(w, status, domain.Message(err, fallback))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
