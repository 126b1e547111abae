package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/partpeople/lead-portal/internal/entity"
	"github.com/partpeople/lead-portal/internal/infra/http/middleware"
)

// MockUserRepository - mock for entity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newAuthHandler(t *testing.T, users *MockUserRepository) (*AuthHandler, *middleware.SessionService) {
	t.Helper()
	sessions, err := middleware.NewSessionService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthHandler(users, sessions), sessions
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	return httptest.NewRequest("POST", "/login", bytes.NewReader(body))
}

func TestHandleLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:           "user-1",
		Email:        "jeanette@partpeople.dev",
		Name:         "Jeanette",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	t.Run("Valid Credentials Set The Session Cookie", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		handler, sessions := newAuthHandler(t, users)

		w := httptest.NewRecorder()
		handler.HandleLogin(w, loginRequest(t, user.Email, "correct-horse"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.Email)
		assert.NotContains(t, w.Body.String(), "PasswordHash")

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie, "session cookie missing")
		assert.True(t, cookie.HttpOnly)

		claims, err := sessions.ValidateToken(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

		handler, _ := newAuthHandler(t, users)

		w := httptest.NewRecorder()
		handler.HandleLogin(w, loginRequest(t, user.Email, "wrong"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Unknown User Gets The Same Message", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByEmail", mock.Anything, "nobody@partpeople.dev").
			Return(nil, entity.ErrUserNotFound)

		handler, _ := newAuthHandler(t, users)

		w := httptest.NewRecorder()
		handler.HandleLogin(w, loginRequest(t, "nobody@partpeople.dev", "whatever"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("Missing Fields", func(t *testing.T) {
		handler, _ := newAuthHandler(t, new(MockUserRepository))

		w := httptest.NewRecorder()
		handler.HandleLogin(w, loginRequest(t, user.Email, ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleLogout(t *testing.T) {
	handler, _ := newAuthHandler(t, new(MockUserRepository))

	w := httptest.NewRecorder()
	handler.HandleLogout(w, httptest.NewRequest("POST", "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
