package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/store"
)

type fakeController struct {
	status app.Status
}

func (f *fakeController) Status() app.Status { return f.status }
func (f *fakeController) SetEnabled(on bool) { f.status.Enabled = on }

func newTestServer(t *testing.T) (*Server, *store.Store, *fakeController) {
	t.Helper()

	log := logging.NewNop()
	st, err := store.New(log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctrl := &fakeController{status: app.Status{Enabled: true, Frames: 42, Current: gesture.PalmOpen}}
	table := action.DefaultTable(action.NewRunner(0, log, nil), log, action.Defaults{
		Targets:   action.DefaultTargets("linux"),
		Shortcuts: action.DefaultShortcuts("linux"),
	})

	s := New(Config{
		Controller: ctrl,
		Store:      st,
		Table:      table,
		Metrics:    metrics.New(),
		Hub:        NewHub(log),
		Log:        log,
	})
	return s, st, ctrl
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "ok", response["status"])
		assert.Contains(t, response, "uptime")
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			rec := do(s, method, "/api/health", "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		}
	})
}

func TestServer_OptionalRoutes(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{"/api/status", "/api/dispatches", "/api/gestures", "/api/stream", "/metrics", "/api/nonexistent"} {
		rec := do(s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestServer_Status(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st app.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.True(t, st.Enabled)
	assert.EqualValues(t, 42, st.Frames)
	assert.Equal(t, gesture.PalmOpen, st.Current)
}

func TestServer_Enabled(t *testing.T) {
	s, _, ctrl := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		body     string
		wantCode int
		wantOn   bool
	}{
		{"disable", http.MethodPut, `{"enabled": false}`, http.StatusOK, false},
		{"enable", http.MethodPut, `{"enabled": true}`, http.StatusOK, true},
		{"missing field", http.MethodPut, `{}`, http.StatusBadRequest, true},
		{"bad json", http.MethodPut, `nope`, http.StatusBadRequest, true},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, tt.method, "/api/enabled", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOn, ctrl.status.Enabled)
		})
	}
}

func TestServer_Dispatches(t *testing.T) {
	s, st, _ := newTestServer(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty journal is an empty array", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/dispatches", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	first, err := st.Dispatches().Record(ctx, gesture.Dispatch{Label: gesture.ThumbUp, Action: "open_browser", At: base})
	require.NoError(t, err)
	_, err = st.Dispatches().Record(ctx, gesture.Dispatch{Label: gesture.SwipeLeft, Action: "switch_left", At: base.Add(3 * time.Second)})
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/dispatches?limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var list []store.DispatchRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, gesture.SwipeLeft, list[0].Gesture)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/dispatches?limit=-2", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/dispatches/"+first.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got store.DispatchRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "open_browser", got.Action)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/dispatches/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Gestures(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/gestures", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []gestureBinding
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, len(gesture.Labels))

	byGesture := make(map[string]gestureBinding)
	for _, b := range list {
		byGesture[b.Gesture] = b
	}
	assert.Equal(t, "open_notepad", byGesture["palm_open"].Action)
	assert.Empty(t, byGesture["ok_sign"].Action)
}

func TestServer_Metrics(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "mudra_frames_processed_total"))
}

func TestHub_BroadcastsDispatch(t *testing.T) {
	hub := NewHub(logging.NewNop())
	ts := httptest.NewServer(hub)
	defer ts.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hub.OnDispatch(gesture.Dispatch{Label: gesture.PeaceSign, Action: "open_calculator", At: at})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev DispatchEvent
	require.NoError(t, conn.ReadJSON(&ev))

	assert.Equal(t, DispatchEvent{Gesture: "peace_sign", Action: "open_calculator", Timestamp: at.UnixMilli()}, ev)
}

func TestHub_CloseDisconnects(t *testing.T) {
	hub := NewHub(logging.NewNop())
	ts := httptest.NewServer(hub)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	hub.Close()
	assert.Zero(t, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)

	// Hub no longer accepts clients.
	hub.OnDispatch(gesture.Dispatch{Label: gesture.PalmOpen})
}
