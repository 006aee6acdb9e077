package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gigflow_backend/internal/app"
	"gigflow_backend/internal/auth"
	"gigflow_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestJWTSecret = "integration-test-secret"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.App
}

// NewTestConfig returns a config usable without a file or environment.
func NewTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.DSN = "sqlite"
	cfg.JWT.Secret = TestJWTSecret
	cfg.JWT.TTL = 60
	cfg.Realtime.SendBuffer = 64
	cfg.Realtime.PongWait = 30 * time.Second
	cfg.Realtime.PingPeriod = 25 * time.Second
	cfg.Realtime.WriteWait = time.Second
	return cfg
}

// NewTestServer wires the full application over an in-memory database and
// serves it with httptest.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	QuietLogs()

	db := NewTestDB(t)
	a := app.New(NewTestConfig(), db)
	server := httptest.NewServer(a.Router)

	t.Cleanup(func() {
		a.Bus.Shutdown()
		server.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    a,
	}
}

// Token issues a valid JWT for userID.
func (ts *TestServer) Token(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.IssueToken(TestJWTSecret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// WSURL is the ws:// address of path on the test server.
func (ts *TestServer) WSURL(path string) string {
	return "ws" + strings.TrimPrefix(ts.Server.URL, "http") + path
}

// SendRequest sends body as JSON and returns the response and its body.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(resBody)
}

// DecodeJSON unmarshals a response body into v.
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "decode response: %s", body)
}
