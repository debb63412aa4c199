package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"asset-registry-api/internal/config"
	"asset-registry-api/internal/database"
	"asset-registry-api/internal/handler"
	"asset-registry-api/internal/repository"
	"asset-registry-api/internal/router"
	"asset-registry-api/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// IntegrationTestSuite holds the test dependencies
type IntegrationTestSuite struct {
	DB     *sql.DB
	Router http.Handler
	Config *config.Config
}

// envelope mirrors the API response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		Port:     3000,
		LogLevel: "debug",
		Database: config.DatabaseConfig{
			Driver:         driver,
			URL:            os.Getenv("TEST_DATABASE_URL"),
			ConnectTimeout: 5 * time.Second,
			MaxOpenConns:   5,
			MaxIdleConns:   5,
		},
		Security: config.SecurityConfig{
			RateLimitRPS:    1000,
			RateLimitBurst:  1000,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			EnableCORS:      true,
			AllowedOrigins:  []string{"*"},
		},
	}
}

func newSuite(t *testing.T, cfg *config.Config, employees repository.EmployeeStore, systems repository.SystemStore, check handler.HealthCheck) *IntegrationTestSuite {
	t.Helper()
	logger := zaptest.NewLogger(t)

	schema := repository.NewSchemaValidator()
	employees = repository.Validated("Employee", employees, schema)
	systems = repository.Validated("System", systems, schema)

	return &IntegrationTestSuite{
		Config: cfg,
		Router: router.NewRouter(router.Handlers{
			Employees: handler.NewRecordHandler(service.NewEmployeeService(employees, logger), logger),
			Systems:   handler.NewRecordHandler(service.NewSystemService(systems, logger), logger),
			Health:    handler.NewHealthHandler(check, cfg.Database.Driver, logger),
		}, cfg, logger),
	}
}

// setupMemorySuite wires the full HTTP stack over in-memory stores.
func setupMemorySuite(t *testing.T) *IntegrationTestSuite {
	t.Helper()
	return newSuite(t, testConfig(config.DriverMemory),
		repository.NewEmployeeMemoryStore(), repository.NewSystemMemoryStore(), nil)
}

// setupPostgresSuite wires the full HTTP stack over a real database. It skips
// unless TEST_DATABASE_URL is set.
func setupPostgresSuite(t *testing.T) *IntegrationTestSuite {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database integration test in short mode")
	}
	cfg := testConfig(config.DriverPostgres)
	if cfg.Database.URL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.InitPostgres(ctx, cfg)
	if err != nil {
		t.Skipf("Failed to connect to test database: %v. Ensure test database is running.", err)
	}
	require.NoError(t, database.EnsureSchema(ctx, db, repository.EmployeeTable, repository.SystemTable))
	cleanDatabase(t, db)

	suite := newSuite(t, cfg,
		repository.NewEmployeePostgresStore(db), repository.NewSystemPostgresStore(db), db.PingContext)
	suite.DB = db

	t.Cleanup(func() {
		cleanDatabase(t, db)
		db.Close()
	})
	return suite
}

// cleanDatabase removes all test data
func cleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{repository.EmployeeTable, repository.SystemTable} {
		if _, err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY"); err != nil {
			t.Logf("Warning: Failed to clean %s: %v", table, err)
		}
	}
}

// createJSONRequest builds a request with body encoded as JSON.
func createJSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// do serves req and decodes the envelope.
func (s *IntegrationTestSuite) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, target), "data: %s", string(env.Data))
}

func employeePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Asha Rao",
		"uniqueId":      "EMP-001",
		"age":           29,
		"email":         "asha@example.com",
		"qualification": "B.Tech",
		"role":          "Engineer",
		"department":    "IT",
		"joiningDate":   "2023-04-01",
		"phoneNumber":   "9876543210",
		"salary":        45000,
		"address": map[string]interface{}{
			"street":  "12 MG Road",
			"pincode": "560001",
		},
		"emergencyContact": map[string]interface{}{
			"name":        "Ravi Rao",
			"phoneNumber": "9123456780",
		},
		"bankDetails": map[string]interface{}{
			"IFSC_Code": "HDFC0A1B2C3",
		},
		"isUsingCompanySystem": true,
		"systemNumber":         "SYS-01",
	}
}

func systemPayload(number string) map[string]interface{} {
	return map[string]interface{}{
		"systemName":   "Design workstation",
		"systemNumber": number,
		"invoiceDate":  "2024-01-15",
		"ram":          "32GB",
		"Storage":      "1TB NVMe",
		"serialNo": map[string]interface{}{
			"processer": "CPU-123",
			"mouse":     "MS-9",
		},
	}
}
