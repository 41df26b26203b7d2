package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypircgen/internal/config"
	"pypircgen/internal/handlers"
	"pypircgen/internal/service"
	"pypircgen/pkg/auth"
	"pypircgen/pkg/models"
	"pypircgen/pkg/pypirc"
)

const validToken = "pypi-abcdefghijklmnopqrstuvwxyzABCDEF"

func newTestRouter(t *testing.T, mode, secret string) (*gin.Engine, afero.Fs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: "5000"}}

	fs := afero.NewMemMapFs()
	writer := pypirc.NewWriter(fs, func() (string, error) { return "/home/user", nil }, "")
	generator := service.NewGenerator(writer, logger)
	checker := service.NewChecker(generator, fs, nil, logger)

	authMiddleware, err := auth.NewMiddleware(mode, secret, logger)
	require.NoError(t, err)

	return NewRouter(cfg, handlers.NewPypircHandler(generator, checker, logger), authMiddleware, logger), fs
}

func TestRouter_GenerateThenCheck(t *testing.T) {
	router, fs := newTestRouter(t, auth.ModeDevelopment, "")

	body, _ := json.Marshal(map[string]string{"pypi_token": validToken, "testpypi_token": validToken})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate-pypirc", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	exists, err := afero.Exists(fs, "/home/user/.pypirc")
	require.NoError(t, err)
	assert.True(t, exists)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/pypirc/check?probe=false", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report models.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 0, report.Count(models.SeverityError))
	assert.Equal(t, 0, report.Count(models.SeverityWarning))
}

func TestRouter_V1Generate(t *testing.T) {
	router, _ := newTestRouter(t, auth.ModeDevelopment, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/pypirc", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, auth.ModeJWT, "s3cret")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRouter_JWTProtectsGenerate(t *testing.T) {
	router, fs := newTestRouter(t, auth.ModeJWT, "s3cret")
	body := `{"pypi_token": "` + validToken + `"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate-pypirc", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	exists, _ := afero.Exists(fs, "/home/user/.pypirc")
	assert.False(t, exists)

	token, err := auth.IssueToken("s3cret", "tester", time.Minute)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/generate-pypirc", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
