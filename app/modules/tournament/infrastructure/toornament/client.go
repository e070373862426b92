package toornament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/tourney-bot/internal/observability/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	scopeView        = "organizer:view"
	scopeParticipant = "organizer:participant"

	firstParticipantRange = "participants=0-49"
)

// Config holds the provider credentials and client limits.
type Config struct {
	APIURL        string
	APIKey        string
	ClientID      string
	ClientSecret  string
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
}

// StatusError is returned for any non-2xx response other than 404.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("toornament %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client talks to the Toornament v2 API. Organizer endpoints carry an OAuth
// bearer token for their scope; viewer endpoints only need the API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tokens  map[string]oauth2.TokenSource
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics metrics.ProviderMetrics
	tracer  trace.Tracer
}

var _ tournamentdomain.Provider = (*Client)(nil)

// NewClient builds a client. Tokens are fetched lazily from
// {APIURL}/oauth/v2/token and renewed by the token source when they expire.
func NewClient(cfg Config, logger *slog.Logger, m metrics.ProviderMetrics, tracer trace.Tracer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := max(cfg.Burst, 1)

	baseURL := strings.TrimRight(cfg.APIURL, "/")
	httpClient := &http.Client{Timeout: timeout}

	// The token source keeps this context for refreshes, so it must outlive
	// any single request.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	tokens := make(map[string]oauth2.TokenSource, 2)
	for _, scope := range []string{scopeView, scopeParticipant} {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     baseURL + "/oauth/v2/token",
			Scopes:       []string{scope},
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		tokens[scope] = cc.TokenSource(tokenCtx)
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		tokens:  tokens,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		metrics: m,
		tracer:  tracer,
	}
}

// GetTournament returns nil when the tournament does not exist.
func (c *Client) GetTournament(ctx context.Context, tournamentID string) (*tournamentdomain.ToornamentInfo, error) {
	path := "/organizer/v2/tournaments/" + url.PathEscape(tournamentID)
	var dto tournamentDTO
	found, err := c.getJSON(ctx, "tournament", path, scopeView, &dto)
	if err != nil || !found {
		return nil, err
	}
	return dto.toDomain(), nil
}

// GetParticipant returns nil when the participant does not exist.
func (c *Client) GetParticipant(ctx context.Context, tournamentID, participantID string) (*tournamentdomain.Participant, error) {
	path := fmt.Sprintf("/organizer/v2/tournaments/%s/participants/%s",
		url.PathEscape(tournamentID), url.PathEscape(participantID))
	var dto participantDTO
	found, err := c.getJSON(ctx, "participant", path, scopeParticipant, &dto)
	if err != nil || !found {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

// GetMatch returns nil when the match does not exist.
func (c *Client) GetMatch(ctx context.Context, tournamentID, matchID string) (*tournamentdomain.MatchMetadata, error) {
	path := fmt.Sprintf("/viewer/v2/tournaments/%s/matches/%s",
		url.PathEscape(tournamentID), url.PathEscape(matchID))
	var dto matchDTO
	found, err := c.getJSON(ctx, "match", path, "", &dto)
	if err != nil || !found {
		return nil, err
	}
	return dto.toDomain(), nil
}

// GetParticipants walks the ranged participant list until the provider
// reports the last page. An unknown tournament yields an empty list.
func (c *Client) GetParticipants(ctx context.Context, tournamentID string) ([]tournamentdomain.Participant, error) {
	path := fmt.Sprintf("/viewer/v2/tournaments/%s/participants?sort=alphabetic", url.PathEscape(tournamentID))

	participants := []tournamentdomain.Participant{}
	pageRange := firstParticipantRange
	for {
		resp, err := c.do(ctx, "participants", path, "", http.Header{"Range": []string{pageRange}})
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return participants, nil
		}

		var page []participantDTO
		err = json.NewDecoder(resp.Body).Decode(&page)
		contentRange := resp.Header.Get("Content-Range")
		partial := resp.StatusCode == http.StatusPartialContent
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode participants: %w", err)
		}
		for _, p := range page {
			participants = append(participants, p.toDomain())
		}

		if !partial {
			return participants, nil
		}
		if contentRange == "" {
			c.logger.WarnContext(ctx, "Partial participant page without Content-Range",
				attr.String("tournament_id", tournamentID),
				attr.String("range", pageRange),
			)
			return participants, nil
		}
		next, more, err := nextRange(contentRange, rangeStep)
		if err != nil {
			return nil, err
		}
		if !more {
			return participants, nil
		}
		pageRange = next
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint, path, scope string, out any) (bool, error) {
	resp, err := c.do(ctx, endpoint, path, scope, nil)
	if err != nil || resp == nil {
		return false, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return true, nil
}

// do performs one GET. It returns a nil response for 404 and a *StatusError
// for any other non-2xx status. The caller closes the body.
func (c *Client) do(ctx context.Context, endpoint, path, scope string, header http.Header) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "toornament."+endpoint, trace.WithAttributes(
		attribute.String("toornament.endpoint", endpoint),
	))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		c.metrics.RecordProviderRequest(ctx, endpoint, status, time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("toornament %s: rate limit: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("toornament %s: build request: %w", endpoint, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	if scope != "" {
		tok, err := c.tokens[scope].Token()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "token")
			return nil, fmt.Errorf("toornament %s: access token: %w", endpoint, err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("toornament %s: %w", endpoint, err)
	}
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	switch {
	case status == http.StatusNotFound:
		resp.Body.Close()
		c.logger.DebugContext(ctx, "Toornament resource not found",
			attr.String("endpoint", endpoint),
			attr.String("path", path),
		)
		return nil, nil
	case status < 200 || status > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		statusErr := &StatusError{Endpoint: endpoint, StatusCode: status, Body: strings.TrimSpace(string(body))}
		span.RecordError(statusErr)
		span.SetStatus(codes.Error, "status")
		c.logger.WarnContext(ctx, "Toornament request failed",
			attr.String("endpoint", endpoint),
			attr.Int("status", status),
		)
		return nil, statusErr
	}
	return resp, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
