package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpgdash/app"
	"mpgdash/domain/car"
	"mpgdash/internal/catalog"
	"mpgdash/internal/store"
	"mpgdash/internal/testkit"
	"mpgdash/ports"
)

type fixtureLoader struct{}

func (fixtureLoader) Load(path string) (*car.Dataset, error) {
	return testkit.FixtureDataset(), nil
}

func newTestServer(t *testing.T, views ports.ViewStorePort) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dashboard := app.NewDashboard(fixtureLoader{}, views, "fixture.csv")
	s := NewServer(dashboard)
	require.NoError(t, s.Initialize(false))
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, s *Server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestOverviewDefaultsToWholeDataset(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "of 15")
	assert.Contains(t, body, "Average MPG")
	assert.Contains(t, body, `href="/">Reset`)
	for _, origin := range []string{"Europe", "Japan", "Usa"} {
		assert.Contains(t, body, origin)
	}
}

func TestOverviewAppliesQueryFilter(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/?f=1&origin=Japan&cyl=4&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	// Four Japanese 4-cylinder cars in the fixture, averaging 31.5 mpg.
	assert.Contains(t, body, ">4<")
	assert.Contains(t, body, "31.5")
	assert.Contains(t, body, "36.1")
}

func TestOverviewSubmittedEmptySelection(t *testing.T) {
	s := newTestServer(t, nil)

	// The f marker without any checkboxes is a deliberate deselection.
	w := get(t, s, "/?f=1&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "No cars match the current selection")
	assert.Contains(t, body, "—")
	assert.NotContains(t, body, "/charts/trend.png")
}

func TestAnalysisShowsCorrelations(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/analysis?f=1&origin=Japan&cyl=4&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "/charts/scatter.png?x=weight")
	assert.Contains(t, body, "/charts/scatter.png?x=horsepower")
	assert.Contains(t, body, "(r = ")
}

func TestDataPageListsFilteredRows(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/data?f=1&origin=Usa&cyl=8&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Showing 2 of 15 cars")
	assert.Contains(t, body, "chevrolet chevelle malibu")
	assert.Contains(t, body, "ford torino")
	assert.NotContains(t, body, "toyota corona")
}

func TestDataPageShowsCatalogMetadata(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dashboard := app.NewDashboard(fixtureLoader{}, nil, "fixture.csv")
	dashboard.SetAbout(catalog.Entry{
		Title:       "Auto MPG",
		Description: "Fuel economy of 1970s-80s cars.",
		Source:      "UCI Machine Learning Repository",
	})
	s := NewServer(dashboard)
	require.NoError(t, s.Initialize(false))

	w := get(t, s, "/data")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Fuel economy of 1970s-80s cars.")
	assert.Contains(t, body, "Source: UCI Machine Learning Repository")
}

func TestChartEndpointsServePNG(t *testing.T) {
	s := newTestServer(t, nil)

	targets := []string{
		"/charts/trend.png",
		"/charts/cylinders.png",
		"/charts/origins.png",
		"/charts/scatter.png?x=weight",
		"/charts/scatter.png?x=horsepower",
		// Empty selections still produce an image.
		"/charts/trend.png?f=1",
	}
	for _, target := range targets {
		w := get(t, s, target)
		require.Equal(t, http.StatusOK, w.Code, target)
		require.Equal(t, "image/png", w.Header().Get("Content-Type"), target)

		_, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err, target)
	}
}

func TestExportCSVDownload(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/export/csv?f=1&origin=Usa&cyl=8&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "mpg_filtered.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,origin,cylinders,model_year,weight,horsepower,mpg", lines[0])
	assert.Contains(t, lines[1], "chevrolet chevelle malibu")
}

func TestExportXLSXDownload(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/export/xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "mpg_filtered.xlsx")
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestExportReportDownload(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/export/report.md?f=1&origin=Japan&cyl=4&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "mpg_report.md")

	body := w.Body.String()
	assert.Contains(t, body, "# Fuel Efficiency Report")
	assert.Contains(t, body, "Japan")
}

func TestAPISummary(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/api/summary?f=1&origin=Japan&cyl=4&from=1970&to=1982")
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(4), payload["cars_shown"])
	assert.Equal(t, float64(15), payload["cars_total"])
	assert.InDelta(t, 31.525, payload["average_mpg"], 1e-9)
}

func TestAPISummaryEmptySelectionIsNull(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/api/summary?f=1")
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(0), payload["cars_shown"])
	assert.Nil(t, payload["average_mpg"])
	assert.Nil(t, payload["best_mpg"])
}

func TestSavedViewLifecycle(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "views.db"))
	require.NoError(t, err)
	defer st.Close()

	s := newTestServer(t, st)

	// Save the current selection under a name.
	w := postForm(t, s, "/views", url.Values{
		"name":  {"japan compacts"},
		"state": {"f=1&origin=Japan&cyl=4&from=1970&to=1982"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "origin=Japan")

	views, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	// Applying redirects to the stored selection.
	w = get(t, s, "/views/"+views[0].ID+"/apply")
	require.Equal(t, http.StatusSeeOther, w.Code)
	loc := w.Header().Get("Location")
	assert.Contains(t, loc, "origin=Japan")
	assert.Contains(t, loc, "cyl=4")

	// The overview lists the saved view.
	w = get(t, s, "/")
	assert.Contains(t, w.Body.String(), "japan compacts")

	// Deleting removes it.
	w = postForm(t, s, "/views/"+views[0].ID+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	views, err = st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestSaveViewWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)

	w := postForm(t, s, "/views", url.Values{"name": {"x"}, "state": {"f=1"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestApplyUnknownViewIs404(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "views.db"))
	require.NoError(t, err)
	defer st.Close()

	s := newTestServer(t, st)

	w := get(t, s, "/views/no-such-view/apply")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)

	w := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
