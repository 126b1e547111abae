package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "portal_session"

type contextKey string

const sessionKey contextKey = "session"

// SessionClaims is what the login handler puts into the session cookie.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SessionService issues and validates the signed session token carried in
// the cookie.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if secret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &SessionService{secret: []byte(secret), ttl: ttl}, nil
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) IssueToken(userID, email string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}

// Auth gates every protected route. The session check runs before any
// other validation, so an unauthenticated malformed request still reports
// Unauthorized. Browsers get redirected to /login, API callers get a 401.
func Auth(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				rejectUnauthorized(w, r)
				return
			}

			claims, err := sessions.ValidateToken(cookie.Value)
			if err != nil {
				rejectUnauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// CurrentSession returns the request-scoped session claims. There is no
// ambient session state anywhere else.
func CurrentSession(r *http.Request) (*SessionClaims, error) {
	claims, ok := r.Context().Value(sessionKey).(*SessionClaims)
	if !ok {
		return nil, errors.New("no session in request context")
	}
	return claims, nil
}
