package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

const tokenKey = "auth_token"

// ProfileAPI is the slice of the platform client the auth service needs.
type ProfileAPI interface {
	Profile(ctx context.Context, token string) (*models.User, error)
}

// Service resolves the current user from the token held in the session. The
// platform's profile endpoint stays the authority; a token that fails there
// is dropped on the spot, mirroring a logout.
type Service struct {
	API ProfileAPI
}

func NewService(api ProfileAPI) *Service {
	return &Service{API: api}
}

// CurrentUser returns the signed-in user, or nil for guests. The caller
// still owns session.Save so a dropped token sticks.
func (s *Service) CurrentUser(ctx context.Context, session *sessions.Session) *models.User {
	token, ok := session.Values[tokenKey].(string)
	if !ok || token == "" {
		return nil
	}

	if tokenExpired(token) {
		slog.Debug("Stored token expired, dropping it")
		delete(session.Values, tokenKey)
		return nil
	}

	user, err := s.API.Profile(ctx, token)
	if err != nil {
		slog.Warn("Failed to fetch profile, dropping token", "error", err)
		delete(session.Values, tokenKey)
		return nil
	}
	return user
}

// SetToken stores a freshly issued token in the session.
func SetToken(session *sessions.Session, token string) {
	session.Values[tokenKey] = token
}

// ClearToken logs the session out.
func ClearToken(session *sessions.Session) {
	delete(session.Values, tokenKey)
}

// tokenExpired reads the exp claim without verifying the signature — the
// backend remains the authority, this only skips a round trip that is sure
// to fail. Unreadable tokens are left for the profile call to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
