package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraweave/core/pkg/api"
	"github.com/astraweave/core/pkg/llmiface"
	"github.com/astraweave/core/pkg/scheduler"
	"github.com/astraweave/core/pkg/world"
)

func newTestServer(t *testing.T) (*api.Server, *world.World) {
	t.Helper()
	w := world.New()
	app := scheduler.New(w, 0.1, nil)
	s := api.NewServer(app, llmiface.DefaultRegistry(), nil)
	return s, w
}

func doRequest(s *api.Server, method, path string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthReportsOK(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
}

func TestSnapshotReturnsEntityComponents(t *testing.T) {
	s, w := newTestServer(t)
	e := w.Spawn("grunt", world.IVec2{X: 3, Y: 4}, 1, 80, 30)

	rec := doRequest(s, http.MethodGet, "/snapshot/"+strconv.FormatUint(uint64(e.ID), 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view api.EntityView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "grunt", view.Name)
	assert.Equal(t, [2]int32{3, 4}, view.Pos)
	assert.Equal(t, int32(80), view.HP)
	assert.Equal(t, int32(30), view.Ammo)
	assert.Equal(t, uint8(1), view.Team)
}

func TestSnapshotUnknownEntityReturns404(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/snapshot/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshotRejectsNonNumericEntity(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/snapshot/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTickWithoutBodyAdvancesOneTick(t *testing.T) {
	s, w := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/tick", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TickResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TicksRun)
	assert.InDelta(t, w.Time(), resp.WorldT, 1e-9)
}

func TestTickWithBodyAdvancesRequestedCount(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/tick", []byte(`{"ticks":5}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TickResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TicksRun)
	assert.InDelta(t, 0.5, resp.WorldT, 1e-9)
}

func TestToolsReturnsDefaultRegistryContents(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/tools", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ToolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Tools)
}
