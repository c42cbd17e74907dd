package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

type mockProfileAPI struct {
	user  *models.User
	err   error
	calls int
}

func (m *mockProfileAPI) Profile(ctx context.Context, token string) (*models.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func newSession() *sessions.Session {
	return sessions.NewSession(sessions.NewCookieStore([]byte("test-key-32-bytes-long-exactly!!")), "customer-session")
}

func signedToken(t *testing.T, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "u1"})
	s, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestCurrentUser_NoToken(t *testing.T) {
	api := &mockProfileAPI{}
	svc := NewService(api)

	assert.Nil(t, svc.CurrentUser(context.Background(), newSession()))
	assert.Zero(t, api.calls, "no profile call without a token")
}

func TestCurrentUser_ValidToken(t *testing.T) {
	api := &mockProfileAPI{user: &models.User{ID: "u1", Email: "nuwan@example.com"}}
	svc := NewService(api)

	session := newSession()
	SetToken(session, signedToken(t, time.Now().Add(time.Hour)))

	user := svc.CurrentUser(context.Background(), session)
	require.NotNil(t, user)
	assert.Equal(t, "nuwan@example.com", user.Email)
	assert.Equal(t, 1, api.calls)
}

func TestCurrentUser_ExpiredTokenSkipsProfileCall(t *testing.T) {
	api := &mockProfileAPI{user: &models.User{ID: "u1"}}
	svc := NewService(api)

	session := newSession()
	SetToken(session, signedToken(t, time.Now().Add(-time.Hour)))

	assert.Nil(t, svc.CurrentUser(context.Background(), session))
	assert.Zero(t, api.calls, "expired token must not hit the profile endpoint")
	_, hasToken := session.Values[tokenKey]
	assert.False(t, hasToken, "expired token is dropped")
}

func TestCurrentUser_ProfileFailureDropsToken(t *testing.T) {
	api := &mockProfileAPI{err: errors.New("unauthorized")}
	svc := NewService(api)

	session := newSession()
	SetToken(session, signedToken(t, time.Now().Add(time.Hour)))

	assert.Nil(t, svc.CurrentUser(context.Background(), session))
	_, hasToken := session.Values[tokenKey]
	assert.False(t, hasToken)
}

func TestCurrentUser_OpaqueTokenStillChecked(t *testing.T) {
	// A token the client cannot parse goes to the backend anyway.
	api := &mockProfileAPI{user: &models.User{ID: "u1"}}
	svc := NewService(api)

	session := newSession()
	SetToken(session, "opaque-session-token")

	user := svc.CurrentUser(context.Background(), session)
	require.NotNil(t, user)
	assert.Equal(t, 1, api.calls)
}

func TestClearToken(t *testing.T) {
	session := newSession()
	SetToken(session, "tok")
	ClearToken(session)
	_, hasToken := session.Values[tokenKey]
	assert.False(t, hasToken)
}
