package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/modsearch/pkg/dataset"
	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	log.SetLevel(log.FatalLevel)
}

const testData = `{"mods":[{"name":"Alpha","creator":"Eli2","description":"first"},{"name":"Beta","creator":"x","description":"second"}],
"words":[["alpha",1,0],["alphatool",2,0],["beta",1,1]]}`

type countingLoader struct {
	inner *dataset.Loader
	calls int
}

func (l *countingLoader) Load() {
	l.calls++
	l.inner.Load()
}

func setup(t *testing.T) (*gin.Engine, *search.Index, *countingLoader, string) {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "search-data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(testData), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("const mods = [];"), 0644))

	idx := search.NewIndex()
	loader := &countingLoader{inner: dataset.NewLoader(dataset.NewSource(dataPath), idx)}
	api := NewAPI(idx, loader, Options{DataPath: dataPath, PublicDir: dir})
	return NewRouter(api), idx, loader, dir
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSearchEndpoint(t *testing.T) {
	router, idx, loader, _ := setup(t)

	first := get(t, router, "/api/search?q=alp")
	require.Equal(t, http.StatusOK, first.Code)
	<-idx.Done()

	w := get(t, router, "/api/search?q=ALP")
	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.State)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, ModResult{Name: "Alpha", Creator: "Eli2", Description: "first", Word: "alpha", Rank: 1}, resp.Results[0])
	assert.Equal(t, 1, loader.calls, "load is triggered by the first search only")

	w = get(t, router, "/api/search?q=")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Results)
}

func TestStatusEndpoint(t *testing.T) {
	router, _, _, _ := setup(t)

	w := get(t, router, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "uninitialized", resp.State)
	assert.Equal(t, 0, resp.Stats["mods"])
}

func TestDataAndStaticFiles(t *testing.T) {
	router, _, _, _ := setup(t)

	w := get(t, router, "/search-data.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, testData, w.Body.String())

	w = get(t, router, "/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mods")

	w = get(t, router, "/missing.css")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _, _, _ := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
