package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"numkit/adapters/memory"
	"numkit/app"
	"numkit/internal"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard)
	calc := app.NewCalculatorService(memory.NewHistoryRepository(), logger, 2)
	docs := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("docs:" + r.URL.Path))
	})
	return NewServer(calc, docs, logger)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w, body := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestStatisticEndpoints(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		want float64
	}{
		{"/api/stats/mean", 5},
		{"/api/stats/variance", 4},
		{"/api/stats/stddev", 2},
		{"/api/stats/median", 4.5},
		{"/api/stats/range", 7},
	}
	for _, tt := range tests {
		w, body := do(t, s, http.MethodPost, tt.path, `{"values":[2,4,4,4,5,5,7,9]}`)
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Equal(t, tt.want, body["value"], tt.path)
		assert.NotEmpty(t, body["computation_id"], tt.path)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, body := do(t, s, http.MethodPost, "/api/stats/summary", `{"values":[1,2,3,4],"label":"q1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "q1", body["label"])

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 2.5, summary["median"])
	assert.Equal(t, 4.0, summary["count"])
}

func TestColumnsEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, body := do(t, s, http.MethodPost, "/api/stats/columns",
		`{"columns":[{"name":"a","values":[1,3]},{"name":"b","values":[10]}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	columns := body["columns"].([]interface{})
	require.Len(t, columns, 2)
	assert.Equal(t, "a", columns[0].(map[string]interface{})["name"])
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty sample", http.MethodPost, "/api/stats/mean", `{"values":[]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown statistic", http.MethodPost, "/api/stats/mode-ish", `{"values":[1]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"malformed json", http.MethodPost, "/api/stats/mean", `{"values":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"divide by zero", http.MethodPost, "/api/arithmetic/divide", `{"a":6,"b":0}`, http.StatusUnprocessableEntity, "DIVISION_BY_ZERO"},
		{"negative exponent", http.MethodPost, "/api/arithmetic/power", `{"a":2,"b":-1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"geometry arity", http.MethodPost, "/api/geometry/circle_area", `{"args":[]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"power overflow", http.MethodPost, "/api/arithmetic/power", `{"a":2,"b":64}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"add overflow", http.MethodPost, "/api/arithmetic/add", `{"a":9223372036854775807,"b":1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"complex divide by zero", http.MethodPost, "/api/complex/divide", `{"args":[1,2,0,0]}`, http.StatusUnprocessableEntity, "DIVISION_BY_ZERO"},
		{"complex arity", http.MethodPost, "/api/complex/add", `{"args":[1,2,3]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown complex op", http.MethodPost, "/api/complex/sqrt", `{"args":[1,2]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"bad id", http.MethodGet, "/api/history/not-a-uuid", "", http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown id", http.MethodGet, "/api/history/0190d7a4-7c1e-7000-8000-000000000000", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad limit", http.MethodGet, "/api/history?limit=ten", "", http.StatusBadRequest, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, s, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestArithmeticAndGeometryEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/arithmetic/divide", `{"a":6,"b":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.5, body["value"])

	w, body = do(t, s, http.MethodPost, "/api/arithmetic/factorial", `{"a":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 120.0, body["value"])

	w, body = do(t, s, http.MethodPost, "/api/geometry/distance", `{"args":[0,0,3,4]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "distance", body["measure"])
	assert.Equal(t, 5.0, body["value"])
}

func TestComplexEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/complex/add", `{"args":[1,2,3,-4]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "add", body["operation"])
	assert.NotEmpty(t, body["computation_id"])
	z := body["result"].(map[string]interface{})["complex"].(map[string]interface{})
	assert.Equal(t, 4.0, z["real"])
	assert.Equal(t, -2.0, z["imaginary"])
	assert.Equal(t, "4-2i", z["text"])

	w, body = do(t, s, http.MethodPost, "/api/complex/magnitude", `{"args":[3,4]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5.0, body["result"].(map[string]interface{})["scalar"])

	w, body = do(t, s, http.MethodPost, "/api/complex/to-polar", `{"args":[0,2]}`)
	require.Equal(t, http.StatusOK, w.Code)
	polar := body["result"].(map[string]interface{})["polar"].(map[string]interface{})
	assert.Equal(t, 2.0, polar["magnitude"])
	assert.InDelta(t, math.Pi/2, polar["phase"], 1e-12)

	w, body = do(t, s, http.MethodGet, "/api/history?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	latest := body["computations"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "complex", latest["kind"])
}

func TestHistoryEndpoints(t *testing.T) {
	s := newTestServer(t)

	_, created := do(t, s, http.MethodPost, "/api/stats/mean", `{"values":[1,2,3]}`)
	do(t, s, http.MethodPost, "/api/arithmetic/add", `{"a":1,"b":2}`)

	w, body := do(t, s, http.MethodGet, "/api/history?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])
	latest := body["computations"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "arithmetic", latest["kind"])

	id := created["computation_id"].(string)
	w, body = do(t, s, http.MethodGet, "/api/history/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mean", body["operation"])
	assert.Equal(t, 2.0, body["result"])
}

func TestDocsMounted(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/docs/operations.md", &bytes.Buffer{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs:/operations.md", w.Body.String())
}
