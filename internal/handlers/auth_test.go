package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": testUser, "password": "wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var eb errorBody
	decode(t, raw, &eb)
	assert.Equal(t, "Invalid credentials", eb.Message)

	resp, _ = do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": "ghost", "password": "x"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw = do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"password": "x"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, raw, &eb)
	assert.Equal(t, "username", eb.Field)

	resp, _ = do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": testUser, "password": testPassword},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	op, err := env.store.GetOperatorByUsername(context.Background(), testUser)
	require.NoError(t, err)
	assert.NotNil(t, op.LastSeen)

	env.audit.Wait()
	page, err := env.store.ListAuditLogs(context.Background(), storage.AuditFilter{EntityType: string(models.EntitySession)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp, raw := do(t, env.app, request{method: http.MethodGet, path: "/api/auth/me", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var op struct {
		Username     string `json:"username"`
		PasswordHash string `json:"passwordHash"`
	}
	decode(t, raw, &op)
	assert.Equal(t, testUser, op.Username)
	assert.Empty(t, op.PasswordHash)

	resp, _ = do(t, env.app, request{
		method:  http.MethodGet,
		path:    "/api/auth/me",
		cookies: []*http.Cookie{{Name: "session", Value: token}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireSessionRejects(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]request{
		"no credentials": {method: http.MethodGet, path: "/api/keys"},
		"garbage token":  {method: http.MethodGet, path: "/api/keys", token: "not-a-jwt"},
		"wrong secret":   {method: http.MethodGet, path: "/api/keys", token: signToken(t, "other", time.Hour)},
		"expired":        {method: http.MethodGet, path: "/api/keys", token: signToken(t, testSecret, -time.Hour)},
		"api key only":   {method: http.MethodGet, path: "/api/bts", apiKey: "sk_whatever"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			resp, raw := do(t, env.app, req)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			var eb errorBody
			decode(t, raw, &eb)
			assert.Equal(t, "Unauthorized", eb.Message)
		})
	}
}

func TestSessionOfDisabledOperator(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	ctx := context.Background()

	key := &models.APIKey{Key: "sk_fallback", Owner: "Partner"}
	require.NoError(t, env.store.CreateAPIKey(ctx, key))
	seedSubscriber(t, env, "628120000001", false)

	resp, _ := do(t, env.app, request{method: http.MethodGet, path: "/api/keys", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	op, err := env.store.GetOperatorByUsername(ctx, testUser)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Operator{}).Where("id = ?", op.ID).Update("is_active", false).Error)

	for _, path := range []string{"/api/keys", "/api/bts", "/api/auth/me", "/api/msisdn/lookup?msisdn=628120000001"} {
		resp, _ = do(t, env.app, request{method: http.MethodGet, path: path, token: token})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	// An API key still works next to the dead session, and is metered.
	resp, _ = do(t, env.app, request{
		method: http.MethodGet,
		path:   "/api/msisdn/lookup?msisdn=628120000001",
		token:  token,
		apiKey: key.Key,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), usageOf(t, env, key.Key))

	require.NoError(t, env.db.Where("id = ?", op.ID).Delete(&models.Operator{}).Error)
	resp, _ = do(t, env.app, request{method: http.MethodGet, path: "/api/keys", token: token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp, _ := do(t, env.app, request{
		method:  http.MethodPost,
		path:    "/api/auth/logout",
		cookies: []*http.Cookie{{Name: "session", Value: token}},
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp, raw := do(t, env.app, request{
		method: http.MethodPut,
		path:   "/api/auth/change-password",
		token:  token,
		body:   map[string]string{"oldPassword": "nope", "newPassword": "brand-new"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var eb errorBody
	decode(t, raw, &eb)
	assert.Equal(t, "oldPassword", eb.Field)

	resp, _ = do(t, env.app, request{
		method: http.MethodPut,
		path:   "/api/auth/change-password",
		token:  token,
		body:   map[string]string{"oldPassword": testPassword, "newPassword": "brand-new"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, env.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": testUser, "password": "brand-new"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGoogleNotConfigured(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := do(t, env.app, request{method: http.MethodGet, path: "/api/auth/google/login"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = do(t, env.app, request{method: http.MethodGet, path: "/api/auth/google/callback?state=a&code=b"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, raw := do(t, env.app, request{method: http.MethodGet, path: "/api/auth/google/config"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Enabled bool `json:"enabled"`
	}
	decode(t, raw, &body)
	assert.False(t, body.Enabled)
}
