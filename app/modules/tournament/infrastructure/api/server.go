// Package tournamentapi serves read views, score exports and operational
// endpoints over HTTP.
package tournamentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	tournamentservice "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	tournamentexport "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/export"
	tournamentqueue "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/queue"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// TournamentReader is the part of the tournament service the API reads from.
type TournamentReader interface {
	ListTournaments(ctx context.Context) ([]tournamentservice.TournamentSummary, error)
	GetTournament(ctx context.Context, viewer tournamentdomain.Actor, alias string) (*tournamentdomain.Tournament, error)
	MatchScores(ctx context.Context, actor tournamentdomain.Actor, alias, matchName string) (*tournamentservice.MatchScores, error)
}

// RefreshQueue enqueues and lists provider refresh runs.
type RefreshQueue interface {
	TriggerRefresh(ctx context.Context) (int64, bool, error)
	RecentRuns(ctx context.Context, limit int) ([]tournamentqueue.JobInfo, error)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Config holds the listener limits.
type Config struct {
	RatePerSecond float64
	Burst         int
}

// Server routes HTTP requests to the tournament service.
type Server struct {
	reader   TournamentReader
	queue    RefreshQueue
	authz    tournamentdomain.Authorizer
	tokens   *Tokens
	limiter  *IPRateLimiter
	checks   map[string]HealthCheck
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewServer wires the HTTP surface. A nil queue disables the refresh endpoints.
func NewServer(
	cfg Config,
	reader TournamentReader,
	queue RefreshQueue,
	authz tournamentdomain.Authorizer,
	tokens *Tokens,
	checks map[string]HealthCheck,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Server {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &Server{
		reader:   reader,
		queue:    queue,
		authz:    authz,
		tokens:   tokens,
		limiter:  NewIPRateLimiter(limit, cfg.Burst),
		checks:   checks,
		gatherer: gatherer,
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))
		r.Use(s.tokens.Authenticate)

		r.Get("/tournaments", s.listTournaments)
		r.Get("/tournaments/{alias}", s.getTournament)

		r.Group(func(r chi.Router) {
			r.Use(RequireActor)
			r.Get("/tournaments/{alias}/matches/{match}/scores.{format}", s.downloadScores)
			r.Post("/refresh", s.triggerRefresh)
			r.Get("/refresh/runs", s.refreshRuns)
		})
	})
	return otelhttp.NewHandler(r, "tourney-api")
}

func (s *Server) span(r *http.Request, name string) (context.Context, trace.Span) {
	return s.tracer.Start(r.Context(), "API."+name)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.WarnContext(ctx, "Health check failed", attr.String("check", name), attr.Error(err))
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	writeJSON(w, status, map[string]any{"status": state, "checks": results})
}

func (s *Server) listTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "ListTournaments")
	defer span.End()

	list, err := s.reader.ListTournaments(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// getTournament answers with the public view unless the caller administers
// the tournament. Anonymous callers always get the public view.
func (s *Server) getTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "GetTournament")
	defer span.End()

	viewer, _ := ActorFrom(ctx)
	t, err := s.reader.GetTournament(ctx, viewer, chi.URLParam(r, "alias"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, tournamentdomain.TournamentView(t, viewer, s.authz))
}

func (s *Server) downloadScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "DownloadScores")
	defer span.End()

	format, err := tournamentexport.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "unsupported_format", Error: err.Error()})
		return
	}

	actor, _ := ActorFrom(ctx)
	scores, err := s.reader.MatchScores(ctx, actor, chi.URLParam(r, "alias"), chi.URLParam(r, "match"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	var buf bytes.Buffer
	if err := tournamentexport.Write(&buf, format, scores.MatchName, scores.Rows); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	filename := tournamentexport.Filename(scores.MatchName, format, s.now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) requireSuperuser(w http.ResponseWriter, r *http.Request) bool {
	actor, _ := ActorFrom(r.Context())
	if !s.authz.IsSuperuser(actor) {
		writeJSON(w, http.StatusForbidden, errorBody{Code: "permission_denied", Error: "superuser required"})
		return false
	}
	if s.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Code: "unavailable", Error: "refresh queue is not running"})
		return false
	}
	return true
}

func (s *Server) triggerRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "TriggerRefresh")
	defer span.End()

	if !s.requireSuperuser(w, r) {
		return
	}
	id, enqueued, err := s.queue.TriggerRefresh(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"job_id": id, "enqueued": enqueued})
}

func (s *Server) refreshRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.span(r, "RefreshRuns")
	defer span.End()

	if !s.requireSuperuser(w, r) {
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_limit", Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, 100)
	}
	runs, err := s.queue.RecentRuns(ctx, limit)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain failures to 4xx answers carrying their error code.
// Anything else is logged and answered with a bare 500.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, tournamentexport.ErrNoScores) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "no_scores", Error: err.Error()})
		return
	}
	if !tournamentdomain.IsDomainError(err) {
		s.logger.ErrorContext(ctx, "Request failed", attr.Error(err), attr.ExtractCorrelationID(ctx))
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "internal", Error: http.StatusText(http.StatusInternalServerError)})
		return
	}

	code := tournamentdomain.ErrorCode(err)
	status := http.StatusConflict
	switch code {
	case "tournament_not_found", "match_not_found", "team_not_found":
		status = http.StatusNotFound
	case "permission_denied":
		status = http.StatusForbidden
	case "participant_fetch_failed", "provider_lookup_failed":
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorBody{Code: code, Error: err.Error()})
}
