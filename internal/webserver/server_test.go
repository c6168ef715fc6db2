package webserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarreach/goalscan/internal/checks"
	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/orchestration"
)

func mustCorpus(t *testing.T, root string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New(root)
	require.NoError(t, err)
	return c
}

func newTestServer(t *testing.T, origins ...string) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	goalsPath := filepath.Join(root, "data", "feature-goals.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(goalsPath), 0o755))
	require.NoError(t, os.WriteFile(goalsPath, []byte(`[{"id":"encoding-clean","title":"Clean text"},{"id":"custom"}]`), 0o644))

	reg, err := checks.BuiltinRegistry(nil)
	require.NoError(t, err)
	store := goals.NewFileStore(goalsPath)
	scanner := orchestration.NewScanner(store, reg, mustCorpus(t, root))

	srv, err := New(Config{
		Store:       store,
		Scanner:     scanner,
		CORSOrigins: origins,
		Out:         &bytes.Buffer{},
	})
	require.NoError(t, err)
	return srv.Handler(), goalsPath
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	reg, err := checks.NewRegistry()
	require.NoError(t, err)
	store := goals.NewFileStore(filepath.Join(t.TempDir(), "g.json"))
	srv, err := New(Config{
		Store:   store,
		Scanner: orchestration.NewScanner(store, reg, mustCorpus(t, ".")),
		Out:     &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr())
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestScanEndpointMergesStoreAndDetectors(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/goals/scan", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Goals []models.ReportEntry `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Goals, 5)

	assert.Equal(t, "encoding-clean", body.Goals[0].ID)
	assert.Equal(t, "Clean text", body.Goals[0].Title)
	assert.Equal(t, models.StatusAchieved, body.Goals[0].Status)

	assert.Equal(t, "custom", body.Goals[1].ID)
	assert.Equal(t, models.StatusWarning, body.Goals[1].Status)

	ids := make([]string, 0, len(body.Goals))
	for _, g := range body.Goals {
		ids = append(ids, g.ID)
		assert.Equal(t, body.Goals[0].LastChecked, g.LastChecked)
	}
	assert.Equal(t, []string{
		"encoding-clean", "custom",
		checks.LegendConsistencyID, checks.TimestampSourceID, checks.FallbackCopyID,
	}, ids)
}

func TestReplaceThenRead(t *testing.T) {
	handler, goalsPath := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{"goals":[{"id":"only"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data, err := os.ReadFile(goalsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "only"`)

	req = httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"goals":[{"id":"only","title":"","description":"","category":"","guidance":""}]}`, rec.Body.String())
}

func TestScanEndpointStoreUnreadable(t *testing.T) {
	handler, goalsPath := newTestServer(t)
	require.NoError(t, os.WriteFile(goalsPath, []byte(`{broken`), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/api/goals/scan", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestUnknownPathReturnsJSON404(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCORSApplied(t *testing.T) {
	handler, _ := newTestServer(t, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

// freePort asks the kernel for an unused loopback port.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	reg, err := checks.NewRegistry()
	require.NoError(t, err)
	store := goals.NewFileStore(filepath.Join(t.TempDir(), "g.json"))
	port := freePort(t)
	out := &bytes.Buffer{}
	srv, err := New(Config{
		Port:    port,
		Store:   store,
		Scanner: orchestration.NewScanner(store, reg, mustCorpus(t, ".")),
		Out:     out,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	healthURL := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		resp.Body.Close() //nolint:errcheck
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond, "server never answered")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, out.String(), fmt.Sprintf("http://localhost:%d", port))
}
