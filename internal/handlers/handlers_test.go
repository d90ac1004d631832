package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RaX911/API-Key-Project/internal/config"
	"github.com/RaX911/API-Key-Project/internal/database"
	"github.com/RaX911/API-Key-Project/internal/handlers"
	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/routes"
	"github.com/RaX911/API-Key-Project/internal/services"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret"
	testUser     = "operator"
	testPassword = "s3cret-pass"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *storage.GormStore
	audit *services.AuditService
	cfg   *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		DBDriver:         config.DriverSQLite,
		JwtSecret:        testSecret,
		CorsAllowOrigins: "http://localhost:5000",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite("file:handlers_" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := storage.NewGormStore(db)
	audit := services.NewAuditService(store)
	// Runs before the database is closed.
	t.Cleanup(audit.Wait)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateOperator(context.Background(), &models.Operator{
		Username:     testUser,
		PasswordHash: string(hash),
		IsActive:     true,
	}))

	cfg := testConfig()
	app := fiber.New()
	routes.SetupRoutes(app, cfg, handlers.New(store, audit, cfg))

	return &testEnv{app: app, db: db, store: store, audit: audit, cfg: cfg}
}

type request struct {
	method  string
	path    string
	body    interface{}
	token   string
	apiKey  string
	cookies []*http.Cookie
}

func do(t *testing.T, app *fiber.App, r request) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if r.body != nil {
		switch b := r.body.(type) {
		case string:
			body = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			body = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if r.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.token)
	}
	if r.apiKey != "" {
		req.Header.Set("x-api-key", r.apiKey)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

type errorBody struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

type pageBody[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// login signs in through the API and returns the session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp, raw := do(t, e.app, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"username": testUser, "password": testPassword},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	decode(t, raw, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// signToken mints a session token without going through the store.
func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"operator_id": 1,
		"username":    testUser,
		"session_id":  uuid.NewString(),
		"exp":         time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func ptr[T any](v T) *T { return &v }

func newTower(operator string) *models.BtsTower {
	return &models.BtsTower{
		CellID:      "CID-" + uuid.NewString()[:8],
		Lac:         "LAC-1",
		Mcc:         "510",
		Mnc:         "10",
		Lat:         -6.2,
		Long:        106.8,
		Address:     ptr("Jakarta"),
		Operator:    operator,
		NetworkType: models.Network4G,
	}
}
