package tournamentapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// actorClaims carries a chat identity in an HS256 token.
type actorClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Tokens signs and verifies API bearer tokens.
type Tokens struct {
	secret []byte
}

// NewTokens signs with an HS256 shared secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a token for actor valid for ttl.
func (t *Tokens) Issue(actor tournamentdomain.Actor, ttl time.Duration) (string, error) {
	if actor.ID == "" {
		return "", fmt.Errorf("token subject must not be empty")
	}
	now := time.Now()
	claims := &actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: actor.Roles,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the actor a valid token was issued for.
func (t *Tokens) Verify(token string) (tournamentdomain.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &actorClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return tournamentdomain.Actor{}, ErrExpiredToken
		}
		return tournamentdomain.Actor{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*actorClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return tournamentdomain.Actor{}, ErrInvalidToken
	}
	return tournamentdomain.Actor{ID: claims.Subject, Roles: claims.Roles}, nil
}

type actorKey struct{}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(ctx context.Context) (tournamentdomain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(tournamentdomain.Actor)
	return a, ok
}

// Authenticate reads an optional bearer token. A present but invalid token
// is rejected; requests without one continue anonymously.
func (t *Tokens) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "unauthorized", Error: "expected a bearer token"})
			return
		}
		actor, err := t.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "unauthorized", Error: err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

// RequireActor rejects anonymous requests.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ActorFrom(r.Context()); !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Code: "unauthorized", Error: "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
