package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/api"
	"github.com/vytor/funzone/internal/background"
	"github.com/vytor/funzone/internal/jobs"
	"github.com/vytor/funzone/internal/metrics"
	"github.com/vytor/funzone/internal/repository/memory"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
	"github.com/vytor/funzone/internal/services"
	"github.com/vytor/funzone/internal/testutil/mocks"
	"github.com/vytor/funzone/internal/worker"
)

type testServer struct {
	srv    *httptest.Server
	client *http.Client
	mailer *mocks.MockMailer
	clock  *scheduler.Manual
}

func newTestServer(t *testing.T, ready map[string]api.ReadyCheck) *testServer {
	t.Helper()
	m := metrics.New()
	clock := scheduler.NewManual(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	scores := memory.NewScoreRepository()
	results := memory.NewResultRepository()

	pool := worker.NewPool(1, 8)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	mailer := new(mocks.MockMailer)
	s := &api.Server{
		GameService: services.NewGameService(scores, jobs.NewWorkerQueue(pool, results), m, services.GameServiceConfig{
			Scheduler: clock,
			NewSource: func() rng.Source { return rng.NewScripted([]int{0}, nil) },
		}),
		StatsService:   services.NewStatsService(results, scores),
		ContactService: services.NewContactService(mailer, "me@example.com", "", m),
		Metrics:        m,
		ReadyChecks:    ready,
		Background: api.BackgroundConfig{
			Options:   background.Options{Nodes: 5},
			FPS:       60,
			Scheduler: scheduler.NewReal(),
			NewSource: func() rng.Source { return rng.New(7) },
		},
		CORSOrigin: "https://portfolio.example.com",
	}

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{srv: srv, client: &http.Client{Jar: jar}, mailer: mailer, clock: clock}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t, map[string]api.ReadyCheck{
		"db":    func(context.Context) error { return nil },
		"redis": func(context.Context) error { return stderrors.New("connection refused") },
	})

	resp, body := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, body = ts.do(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "redis unavailable", string(body))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := ts.do(t, http.MethodGet, "/api/games", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode(t, body)["games"].([]any)
	assert.Len(t, list, 6)
	assert.Equal(t, "reaction", list[0].(map[string]any)["id"])
}

func TestMemoryGameOverHTTP(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := ts.do(t, http.MethodPost, "/api/games/memory/start", map[string]string{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	session := decode(t, body)["session"].(map[string]any)
	assert.Equal(t, "playing", session["status"])
	assert.NotEmpty(t, resp.Header.Get("Set-Cookie"), "first request issues a visitor cookie")

	var last map[string]any
	for i := 0; i < 6; i++ {
		resp, _ = ts.do(t, http.MethodPost, "/api/games/memory/input", map[string]int{"index": i})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body = ts.do(t, http.MethodPost, "/api/games/memory/input", map[string]int{"index": i + 6})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		last = decode(t, body)
	}

	outcome := last["outcome"].(map[string]any)
	assert.Equal(t, true, outcome["finished"])
	state := last["state"].(map[string]any)
	assert.Equal(t, true, state["newBest"])
	result := state["result"].(map[string]any)
	assert.Equal(t, true, result["won"])
	score := result["score"].(float64)
	assert.Greater(t, score, 0.0)

	_, body = ts.do(t, http.MethodGet, "/api/games/memory/menu", nil)
	entries := decode(t, body)["entries"].([]any)
	require.Len(t, entries, 3)
	assert.Equal(t, score, entries[0].(map[string]any)["best"])

	_, body = ts.do(t, http.MethodGet, "/api/games/memory/best?key=easy", nil)
	best := decode(t, body)["best"].(map[string]any)
	assert.Equal(t, score, best["value"])

	_, body = ts.do(t, http.MethodGet, "/api/scores", nil)
	scores := decode(t, body)["scores"].([]any)
	require.Len(t, scores, 1)
	assert.Equal(t, "Memory Match", scores[0].(map[string]any)["game_name"])

	require.Eventually(t, func() bool {
		_, body := ts.do(t, http.MethodGet, "/api/stats", nil)
		return decode(t, body)["total_plays"] == 1.0
	}, 2*time.Second, 10*time.Millisecond)

	resp, body = ts.do(t, http.MethodPost, "/api/games/memory/retry", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "playing", decode(t, body)["session"].(map[string]any)["status"])

	resp, body = ts.do(t, http.MethodPost, "/api/games/memory/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "menu", decode(t, body)["session"].(map[string]any)["status"])
}

func TestVisitorsAreIsolated(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, _ := ts.do(t, http.MethodPost, "/api/games/memory/start", map[string]string{"difficulty": "easy"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	other := &http.Client{}
	r, err := other.Get(ts.srv.URL + "/api/games/memory/state")
	require.NoError(t, err)
	defer r.Body.Close()
	var st map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&st))
	assert.Equal(t, "menu", st["session"].(map[string]any)["status"])
}

func TestGameErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, body := ts.do(t, http.MethodPost, "/api/games/pong/start", map[string]string{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, body)["error"].(map[string]any)["code"])

	resp, body = ts.do(t, http.MethodPost, "/api/games/quiz/start", map[string]string{"difficulty": "legendary"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, body)["error"].(map[string]any)["code"])

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/games/quiz/start", strings.NewReader("{nope"))
	require.NoError(t, err)
	r, err := ts.client.Do(req)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/games/memory/retry", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/games/memory/best", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendContact(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	resp, body := ts.do(t, http.MethodPost, "/send", map[string]string{
		"name": "Ada", "email": "ada@example.com", "subject": "Hi", "message": "Hello there",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Email sent successfully!", decode(t, body)["message"])
	ts.mailer.AssertExpectations(t)
}

func TestSendContact_Failures(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.mailer.On("Send", mock.Anything, mock.Anything).Return(stderrors.New("smtp down"))

	resp, body := ts.do(t, http.MethodPost, "/send", map[string]string{"name": "Ada", "email": "ada@example.com", "message": "hi"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error sending email.", decode(t, body)["message"])

	resp, body = ts.do(t, http.MethodPost, "/send", map[string]string{"name": "Ada", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, body)["message"], "email")
	ts.mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)
	req, err := http.NewRequest(http.MethodOptions, ts.srv.URL+"/send", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://portfolio.example.com")

	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://portfolio.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = ts.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.do(t, http.MethodGet, "/api/games", nil)

	resp, body := ts.do(t, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/games",status="200"} 1`)
}

func TestBackgroundStream(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws/background?w=300&h=200"
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{"https://portfolio.example.com"}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	var frame map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, "frame", frame["t"])
	assert.Equal(t, 300.0, frame["w"])
	assert.Len(t, frame["nodes"], 5)

	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{"t": "resize", "w": 640, "h": 480}))
	for frame["w"] != 640.0 {
		require.NoError(t, wsjson.Read(ctx, conn, &frame))
	}
	assert.Equal(t, 480.0, frame["h"])

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}

func TestBackgroundStream_NonFiniteSizeUsesDefault(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws/background?w=NaN&h=-Inf"
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{"https://portfolio.example.com"}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	var frame map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, 1280.0, frame["w"])
	assert.Equal(t, 720.0, frame["h"])

	// the stream keeps going once valid frames are flowing
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	assert.Equal(t, "frame", frame["t"])

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}
