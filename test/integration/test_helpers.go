//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Anoop2208prakash/LMS/internal/config"
	"github.com/Anoop2208prakash/LMS/internal/handler"
	"github.com/Anoop2208prakash/LMS/internal/middleware"
	"github.com/Anoop2208prakash/LMS/internal/repository"
	"github.com/Anoop2208prakash/LMS/internal/router"
	"github.com/Anoop2208prakash/LMS/internal/service"
)

func newAuthServer(t *testing.T) (*httptest.Server, *repository.MemoryUserRepository) {
	t.Helper()

	store := repository.NewMemoryUserRepository()
	authService := service.NewAuthService(
		store,
		service.NewPasswordHasher(),
		service.NewTokenManager("test-secret", 15*time.Minute),
	)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	cfg := &config.Config{
		ServerPort:     "5000",
		DatabaseURL:    "postgres://unused",
		JWTSecret:      "test-secret",
		JWTTTL:         15 * time.Minute,
		RequestTimeout: 30 * time.Second,
		CORSOrigins:    []string{"*"},
	}

	server := httptest.NewServer(router.New(cfg, authMiddleware, authHandler))
	t.Cleanup(server.Close)
	return server, store
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getWithToken(t *testing.T, url string, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAndLogin(t *testing.T, serverURL string, username string, email string, password string) (int64, string) {
	t.Helper()

	resp := postJSON(t, serverURL+"/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &registered)

	resp = postJSON(t, serverURL+"/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loggedIn)
	require.NotEmpty(t, loggedIn.Token)

	return registered.ID, loggedIn.Token
}
