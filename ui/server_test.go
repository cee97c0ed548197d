package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"diabex/domain/dataset"
	"diabex/internal"
	"diabex/internal/cleaning"
	loader "diabex/internal/dataset"
	"diabex/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../internal/dataset/testdata/diabetes_head.csv"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := session.New(context.Background(), loader.NewLoader(internal.Discard), cleaning.DefaultPolicy(), fixture, internal.Discard)
	require.NoError(t, err)
	return NewServer(s, Config{SampleRows: 3}, internal.Discard)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestSession(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/session")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, float64(20), body["rows"])
	assert.Len(t, body["columns"], len(dataset.Schema))
}

func TestSample(t *testing.T) {
	srv := newTestServer(t)

	w := get(t, srv, "/api/sample")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["rows"], 3)

	w = get(t, srv, "/api/sample?n=2&view=raw")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	rows := body["rows"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, float64(148), first[dataset.ColGlucose])
	assert.Equal(t, float64(0), first[dataset.ColInsulin])
}

func TestSample_InvalidN(t *testing.T) {
	srv := newTestServer(t)
	for _, target := range []string{"/api/sample?n=0", "/api/sample?n=abc"} {
		w := get(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "INVALID_INPUT", decode(t, w)["code"])
	}
}

func TestUnknownView(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/summary?view=cooked")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, w)["code"])
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/summary")
	require.Equal(t, http.StatusOK, w.Code)

	summary := decode(t, w)["summary"].([]any)
	require.Len(t, summary, len(dataset.Schema))
	first := summary[0].(map[string]any)
	assert.Equal(t, dataset.ColPregnancies, first["column"])
	assert.Equal(t, float64(20), first["count"])
	assert.Contains(t, first, "50%")
}

func TestZeros_RawVersusClean(t *testing.T) {
	srv := newTestServer(t)

	raw := decode(t, get(t, srv, "/api/zeros?view=raw"))["zeros"].(map[string]any)
	assert.Equal(t, float64(11), raw[dataset.ColInsulin])
	assert.Equal(t, float64(9), raw[dataset.ColSkinThickness])

	clean := decode(t, get(t, srv, "/api/zeros"))["zeros"].(map[string]any)
	assert.Equal(t, float64(0), clean[dataset.ColInsulin])
	assert.Equal(t, float64(0), clean[dataset.ColSkinThickness])
	assert.Equal(t, float64(2), clean[dataset.ColPregnancies])
}

func TestMissing(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/missing")
	require.Equal(t, http.StatusOK, w.Code)

	missing := decode(t, w)["missing"].(map[string]any)
	assert.Len(t, missing, len(dataset.Schema))
	for name, count := range missing {
		assert.Equal(t, float64(0), count, name)
	}
}

func TestOutcome(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/outcome")
	require.Equal(t, http.StatusOK, w.Code)

	dist := decode(t, w)["distribution"].([]any)
	require.Len(t, dist, 2)
	body, err := json.Marshal(dist)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"outcome":0,"count":7},{"outcome":1,"count":13}]`, string(body))
}

func TestCorrelation(t *testing.T) {
	srv := newTestServer(t)

	w := get(t, srv, "/api/correlation")
	require.Equal(t, http.StatusOK, w.Code)
	matrix := decode(t, w)["matrix"].(map[string]any)
	assert.Len(t, matrix["columns"], len(dataset.Schema))

	w = get(t, srv, "/api/correlation?columns=Glucose,Outcome")
	require.Equal(t, http.StatusOK, w.Code)
	matrix = decode(t, w)["matrix"].(map[string]any)
	values := matrix["values"].([]any)
	require.Len(t, values, 2)
	assert.Equal(t, float64(1), values[0].([]any)[0])
	assert.Equal(t, values[0].([]any)[1], values[1].([]any)[0])
}

func TestCorrelation_InvalidSelection(t *testing.T) {
	srv := newTestServer(t)
	for _, target := range []string{
		"/api/correlation?columns=Glucose",
		"/api/correlation?columns=Glucose,Nope",
		"/api/correlation?columns=",
	} {
		w := get(t, srv, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "INVALID_SELECTION", decode(t, w)["code"], target)
	}
}

func TestBoxplots(t *testing.T) {
	srv := newTestServer(t)

	w := get(t, srv, "/api/boxplots?columns=Insulin&columns=BMI")
	require.Equal(t, http.StatusOK, w.Code)
	boxes := decode(t, w)["boxplots"].([]any)
	require.Len(t, boxes, 2)
	assert.Equal(t, dataset.ColInsulin, boxes[0].(map[string]any)["column"])

	w = get(t, srv, "/api/boxplots?columns=Nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_COLUMN", decode(t, w)["code"])

	w = get(t, srv, "/api/boxplots")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SELECTION", decode(t, w)["code"])
}

func TestReport(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/report?view=raw")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Summary Statistics")
	assert.NotContains(t, w.Body.String(), "Cleaning")
}
