package csrf

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName holds the per-browser id the tokens are bound to
const CookieName = "csrf_session"

// Token errors
var (
	ErrTokenMissing  = errors.New("the CSRF token is missing")
	ErrTokenInvalid  = errors.New("the CSRF token is invalid")
	ErrTokenExpired  = errors.New("the CSRF token has expired")
	ErrSessionAbsent = errors.New("the CSRF session cookie is missing")
)

// Config configures a Manager
type Config struct {
	SecretKey string
	TimeLimit time.Duration
	Secure    bool
}

// Manager issues and verifies form tokens. A token is an HS256 JWT whose
// subject must match the CSRF session cookie of the submitting browser.
type Manager struct {
	secret    []byte
	timeLimit time.Duration
	secure    bool
	now       func() time.Time
}

// NewManager creates a new Manager
func NewManager(cfg Config) *Manager {
	return &Manager{
		secret:    []byte(cfg.SecretKey),
		timeLimit: cfg.TimeLimit,
		secure:    cfg.Secure,
		now:       time.Now,
	}
}

// Issue returns a fresh token for the browser behind r, setting the
// session cookie on w when the browser does not carry one yet.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request) (string, error) {
	sessionID := m.sessionID(r)
	if sessionID == "" {
		sessionID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		// Later reads within the same request see the new id
		r.AddCookie(&http.Cookie{Name: CookieName, Value: sessionID})
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.timeLimit)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign CSRF token: %w", err)
	}
	return signed, nil
}

// Verify checks a submitted token against the browser behind r
func (m *Manager) Verify(r *http.Request, token string) error {
	if token == "" {
		return ErrTokenMissing
	}

	sessionID := m.sessionID(r)
	if sessionID == "" {
		return ErrSessionAbsent
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !parsed.Valid || claims.Subject != sessionID {
		return ErrTokenInvalid
	}
	return nil
}

func (m *Manager) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
