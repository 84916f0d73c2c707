package share

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(t *testing.T, snapshot Snapshot) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(0, snapshot, testLogger())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dialViewer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForViewers(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", s.Viewers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastStrokeReachesViewers(t *testing.T) {
	s, ts := testServer(t, func() ([]byte, error) { return nil, nil })

	first := dialViewer(t, ts)
	second := dialViewer(t, ts)
	waitForViewers(t, s, 2)

	committed := state.Stroke{
		ID:     "s1",
		Shape:  state.ShapePen,
		Points: []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Style:  state.Style{Color: "#000000", Width: 4},
	}
	s.BroadcastStroke(committed)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, "stroke", ev.Type)
		require.NotNil(t, ev.Stroke)
		assert.Equal(t, committed.ID, ev.Stroke.ID)
		assert.Equal(t, committed.Points, ev.Stroke.Points)
	}
}

func TestBroadcastRefresh(t *testing.T) {
	s, ts := testServer(t, func() ([]byte, error) { return nil, nil })
	conn := dialViewer(t, ts)
	waitForViewers(t, s, 1)

	s.BroadcastRefresh()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "refresh", ev.Type)
	assert.Nil(t, ev.Stroke)
}

func TestViewerDisconnectIsRemoved(t *testing.T) {
	s, ts := testServer(t, func() ([]byte, error) { return nil, nil })
	conn := dialViewer(t, ts)
	waitForViewers(t, s, 1)

	conn.Close()
	waitForViewers(t, s, 0)
}

func TestSnapshotEndpoint(t *testing.T) {
	payload := []byte("fake-png")
	_, ts := testServer(t, func() ([]byte, error) { return payload, nil })

	resp, err := http.Get(ts.URL + "/board.png")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}

func TestSnapshotEndpointError(t *testing.T) {
	_, ts := testServer(t, func() ([]byte, error) {
		return nil, assert.AnError
	})

	resp, err := http.Get(ts.URL + "/board.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestShareLinkFormat(t *testing.T) {
	s := NewServer(8888, func() ([]byte, error) { return nil, nil }, testLogger())
	link := s.ShareLink()
	assert.True(t, strings.HasPrefix(link, URLScheme))
	assert.True(t, strings.HasSuffix(link, ":8888"))
}
