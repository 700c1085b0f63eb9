package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/user-crud/internal/models"
)

const (
	// CSRFFormField is the form field carrying the anti-forgery token.
	CSRFFormField = "csrf_token"
	// CSRFHeader is the header alternative to CSRFFormField.
	CSRFHeader = "X-CSRF-Token"

	audienceSession = "session"
	audienceCSRF    = "csrf"
)

var (
	ErrCSRFMissing = errors.New("csrf token missing")
	ErrCSRFInvalid = errors.New("csrf token invalid")
)

// Session is the per-browser state carried in the signed cookie.
type Session struct {
	ID      string
	Flashes []models.Flash
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, models.Flash{Category: category, Message: message})
}

// PopFlashes returns the queued notices and clears the queue.
func (s *Session) PopFlashes() []models.Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Flashes []models.Flash `json:"flashes,omitempty"`
}

// Manager signs and verifies session cookies and anti-forgery tokens.
type Manager struct {
	SecretKey  string        // HMAC key for cookies and tokens
	CookieName string        // Name of the session cookie
	CSRFTTL    time.Duration // Lifetime of an anti-forgery token
	Secure     bool          // Set the Secure attribute on the cookie
}

// Opt configures a Manager.
type Opt func(*Manager)

// WithSecretKey sets the signing key.
func WithSecretKey(key string) Opt {
	return func(m *Manager) { m.SecretKey = key }
}

// WithCookieName overrides the default cookie name.
func WithCookieName(name string) Opt {
	return func(m *Manager) { m.CookieName = name }
}

// WithCSRFTTL sets how long an anti-forgery token stays valid.
func WithCSRFTTL(ttl time.Duration) Opt {
	return func(m *Manager) { m.CSRFTTL = ttl }
}

// WithSecureCookie marks the cookie as HTTPS only.
func WithSecureCookie(secure bool) Opt {
	return func(m *Manager) { m.Secure = secure }
}

// New creates a Manager
func New(opts ...Opt) *Manager {
	m := &Manager{
		CookieName: "session",
		CSRFTTL:    time.Hour,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	return []byte(m.SecretKey), nil
}

func (m *Manager) parse(tokenString string, claims jwt.Claims, audience string, extra ...jwt.ParserOption) error {
	opts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
	}, extra...)
	_, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, opts...)
	return err
}

// Load reads the session from the request cookie. A missing, tampered or
// otherwise unreadable cookie yields a fresh session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil {
		return &Session{ID: uuid.NewString()}
	}

	var claims sessionClaims
	if err := m.parse(cookie.Value, &claims, audienceSession); err != nil || claims.Subject == "" {
		return &Session{ID: uuid.NewString()}
	}

	return &Session{ID: claims.Subject, Flashes: claims.Flashes}
}

// Save writes the session cookie. It must run before the response header.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  s.ID,
			Audience: jwt.ClaimStrings{audienceSession},
		},
		Flashes: s.Flashes,
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.SecretKey))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CSRFToken issues an anti-forgery token bound to the session.
func (m *Manager) CSRFToken(s *Session) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.ID,
		Audience:  jwt.ClaimStrings{audienceCSRF},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.CSRFTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.SecretKey))
}

// ValidateCSRF checks that token was issued by this manager for s and has
// not expired.
func (m *Manager) ValidateCSRF(s *Session, token string) error {
	if token == "" {
		return ErrCSRFMissing
	}

	var claims jwt.RegisteredClaims
	if err := m.parse(token, &claims, audienceCSRF, jwt.WithExpirationRequired()); err != nil {
		return errors.Join(ErrCSRFInvalid, err)
	}
	if claims.Subject != s.ID {
		return ErrCSRFInvalid
	}
	return nil
}

// GetTokenFromRequest extracts the anti-forgery token from the form body or
// the X-CSRF-Token header.
func (m *Manager) GetTokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.PostFormValue(CSRFFormField)); token != "" {
		return token
	}
	return strings.TrimSpace(r.Header.Get(CSRFHeader))
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var sessionKey = contextKey{}

// WithSession stores the session in the context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the session from the context. Returns nil if not present.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// Get returns the session loaded by the middleware, loading it from the
// cookie when the middleware did not run.
func (m *Manager) Get(r *http.Request) *Session {
	if s := FromContext(r.Context()); s != nil {
		return s
	}
	return m.Load(r)
}
