package httpadapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"svw.info/sumgrid/internal/domain"
	"svw.info/sumgrid/internal/generator"
	"svw.info/sumgrid/internal/ports"
	"svw.info/sumgrid/internal/session"
	"svw.info/sumgrid/internal/usecase"
)

type noopTask struct{}

func (noopTask) Stop() bool { return true }

type noopSched struct{}

func (noopSched) After(d time.Duration, fn func()) ports.Task { return noopTask{} }

func newRouter() chi.Router {
	cfg := session.Config{Seed: func() int64 { return 7 }}
	uc := usecase.NewService(cfg, generator.New(), noopSched{}, nil)
	h := New(uc, 1)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func do(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) sessionResp {
	t.Helper()
	var resp sessionResp
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateAndSnapshot(t *testing.T) {
	r := newRouter()

	w := do(t, r, http.MethodPost, "/api/session", map[string]int{"level": 5})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 5, created.Snapshot.Level)
	require.Equal(t, 300, created.Snapshot.TimeLeft)
	require.Equal(t, domain.InProgress, created.Snapshot.State)

	w = do(t, r, http.MethodGet, "/api/session/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, created.Snapshot.Targets, decode(t, w).Snapshot.Targets)
}

func TestCreateDefaultsLevel(t *testing.T) {
	r := newRouter()
	w := do(t, r, http.MethodPost, "/api/session", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, decode(t, w).Snapshot.Level)
}

func TestCellIntent(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", map[string]int{"level": 5})).ID

	w := do(t, r, http.MethodPost, "/api/session/"+id+"/cell", cellReq{Index: 0, Value: "5"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Applied)
	require.True(t, *resp.Applied)
	require.Equal(t, "5", resp.Snapshot.Cells[0])

	// Rejected input is reported, not erred.
	w = do(t, r, http.MethodPost, "/api/session/"+id+"/cell", cellReq{Index: 0, Value: "x"})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	require.False(t, *resp.Applied)
	require.Equal(t, "5", resp.Snapshot.Cells[0])
}

func TestHintAndReset(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", map[string]int{"level": 5})).ID

	resp := decode(t, do(t, r, http.MethodPost, "/api/session/"+id+"/hint", nil))
	require.True(t, *resp.Applied)
	filled := 0
	for _, v := range resp.Snapshot.Cells {
		if v != "" {
			filled++
		}
	}
	require.Equal(t, 1, filled)

	resp = decode(t, do(t, r, http.MethodPost, "/api/session/"+id+"/reset", nil))
	for _, v := range resp.Snapshot.Cells {
		require.Equal(t, "", v)
	}
}

func TestSubmitIncomplete(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", map[string]int{"level": 5})).ID

	resp := decode(t, do(t, r, http.MethodPost, "/api/session/"+id+"/submit", nil))
	require.False(t, *resp.Applied)
	require.Equal(t, domain.InProgress, resp.Snapshot.State)
}

func TestNextWhileInProgress(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", nil)).ID

	resp := decode(t, do(t, r, http.MethodPost, "/api/session/"+id+"/next", nil))
	require.False(t, *resp.Applied)
	require.Equal(t, 1, resp.Snapshot.Level)
}

func TestUnknownSession(t *testing.T) {
	r := newRouter()

	w := do(t, r, http.MethodGet, "/api/session/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/session/00000000-0000-4000-8000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", nil)).ID

	w := do(t, r, http.MethodDelete, "/api/session/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/session/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadJSONBody(t *testing.T) {
	r := newRouter()
	id := decode(t, do(t, r, http.MethodPost, "/api/session", nil)).ID

	req := httptest.NewRequest(http.MethodPost, "/api/session/"+id+"/cell", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
