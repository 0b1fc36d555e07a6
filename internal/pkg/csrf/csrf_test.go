package csrf

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now time.Time) *Manager {
	m := NewManager(Config{SecretKey: "hard to guess string", TimeLimit: time.Hour})
	m.now = func() time.Time { return now }
	return m
}

// issue returns a token plus a follow-up request carrying the session cookie
func issue(t *testing.T, m *Manager) (string, *http.Request) {
	t.Helper()
	rec := httptest.NewRecorder()
	token, err := m.Issue(rec, httptest.NewRequest(http.MethodGet, "/curso", nil))
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodPost, "/curso", nil)
	next.AddCookie(cookies[0])
	return token, next
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := newTestManager(time.Now())
	token, req := issue(t, m)

	assert.NoError(t, m.Verify(req, token))
}

func TestManager_ReusesExistingSession(t *testing.T) {
	m := newTestManager(time.Now())
	_, req := issue(t, m)

	rec := httptest.NewRecorder()
	token, err := m.Issue(rec, req)
	require.NoError(t, err)

	assert.Empty(t, rec.Result().Cookies())
	assert.NoError(t, m.Verify(req, token))
}

func TestManager_VerifyFailures(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	token, req := issue(t, m)

	t.Run("missing token", func(t *testing.T) {
		assert.ErrorIs(t, m.Verify(req, ""), ErrTokenMissing)
	})

	t.Run("missing cookie", func(t *testing.T) {
		bare := httptest.NewRequest(http.MethodPost, "/curso", nil)
		assert.ErrorIs(t, m.Verify(bare, token), ErrSessionAbsent)
	})

	t.Run("other browser", func(t *testing.T) {
		other := httptest.NewRequest(http.MethodPost, "/curso", nil)
		other.AddCookie(&http.Cookie{Name: CookieName, Value: "someone-else"})
		assert.ErrorIs(t, m.Verify(other, token), ErrTokenInvalid)
	})

	t.Run("tampered", func(t *testing.T) {
		assert.ErrorIs(t, m.Verify(req, token+"x"), ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		foreign := NewManager(Config{SecretKey: "another secret", TimeLimit: time.Hour})
		assert.True(t, errors.Is(foreign.Verify(req, token), ErrTokenInvalid))
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestManager(now.Add(2 * time.Hour))
		assert.ErrorIs(t, later.Verify(req, token), ErrTokenExpired)
	})
}
