package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, dsn string) *config.Config {
	return &config.Config{
		AppPort:   ":0",
		BodyLimit: 1024 * 1024,
		Database:  config.DatabaseConfig{Driver: driver, DSN: dsn},
		Logger:    config.LoggerConfig{Level: "error", Format: "json"},
	}
}

func sqliteDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func getJSON(t *testing.T, a *App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestNew_MemoryDriver(t *testing.T) {
	a := newTestApp(t, testConfig(config.DriverMemory, ""))
	assert.Nil(t, a.AuthService)

	status, body := getJSON(t, a, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["database"])
	assert.Equal(t, "disabled", body["rabbitmq"])

	status, body = getJSON(t, a, "/Product")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "API end points are working", body["message"])

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNew_SQLiteDriver(t *testing.T) {
	a := newTestApp(t, testConfig(config.DriverSQLite, sqliteDSN()))
	assert.NotNil(t, a.AuthService)

	status, body := getJSON(t, a, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "connected", body["database"])

	req := httptest.NewRequest(http.MethodPost, "/Product/AddNewProduct",
		strings.NewReader(`{"productId":1,"name":"Widget","category":"Tools","price":2.5,"quantity":3,"sku":"W-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestNew_AuthGuardsMutatingRoutes(t *testing.T) {
	cfg := testConfig(config.DriverSQLite, sqliteDSN())
	cfg.Auth = config.AuthConfig{Enabled: true, JWTSecret: "app_test_secret"}
	a := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodDelete, "/Product/DeleteOne/1", nil)
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	status, _ := getJSON(t, a, "/Product/GetOne?id=1")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNew_BadDatabase(t *testing.T) {
	_, err := New(testConfig(config.DriverPostgres, "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"), zerolog.Nop())
	assert.Error(t, err)
}

func TestAuditProductEvent(t *testing.T) {
	handler := auditProductEvent(zerolog.Nop())

	body, err := json.Marshal(models.ProductEvent{
		ID:          uuid.NewString(),
		Type:        models.EventProductCreated,
		ProductDBID: 1,
		ProductID:   42,
		OccurredAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, handler(amqp.Delivery{Body: body}))
	assert.NoError(t, handler(amqp.Delivery{Body: []byte("not json")}))
}
