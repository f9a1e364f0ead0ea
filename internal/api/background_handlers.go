package api

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/vytor/funzone/internal/background"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
)

const (
	defaultCanvasWidth  = 1280
	defaultCanvasHeight = 720
	maxCanvasSide       = 8192
	frameWriteTimeout   = 5 * time.Second
)

// clientMessage is what the page sends over the background socket.
type clientMessage struct {
	Type   string  `json:"t"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
}

type frameMessage struct {
	Type string `json:"t"`
	background.Frame
}

func canvasSide(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return clampSide(v, def)
}

func clampSide(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return def
	}
	return min(v, maxCanvasSide)
}

func (s *Server) acceptOptions() *websocket.AcceptOptions {
	if s.CORSOrigin == "" || s.CORSOrigin == "*" {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	host := s.CORSOrigin
	if u, err := url.Parse(s.CORSOrigin); err == nil && u.Host != "" {
		host = u.Host
	}
	return &websocket.AcceptOptions{OriginPatterns: []string{host}}
}

// handleBackground streams the node network to one canvas. Each connection
// runs its own animator, stopped when either side closes.
func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("background")

	q := r.URL.Query()
	width := canvasSide(q.Get("w"), defaultCanvasWidth)
	height := canvasSide(q.Get("h"), defaultCanvasHeight)

	conn, err := websocket.Accept(w, r, s.acceptOptions())
	if err != nil {
		log.Warn("websocket accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	sched := s.Background.Scheduler
	if sched == nil {
		sched = scheduler.NewReal()
	}
	newSource := s.Background.NewSource
	if newSource == nil {
		newSource = rng.NewFromTime
	}

	anim := background.NewAnimator(background.NewNetwork(width, height, newSource(), s.Background.Options), sched, s.Background.FPS)
	frames := anim.Start()
	defer anim.Stop()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readClient(ctx, cancel, conn, anim)

	log.Debug("background stream opened: %.0fx%.0f", width, height)
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			log.Debug("background stream closed")
			return
		case <-s.Background.Done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, frameWriteTimeout)
			err := wsjson.Write(wctx, conn, frameMessage{Type: "frame", Frame: f})
			wcancel()
			if err != nil {
				log.Debug("frame write failed: %v", err)
				return
			}
		}
	}
}

// readClient applies resize messages until the socket closes, then cancels
// the stream.
func readClient(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, anim *background.Animator) {
	defer cancel()
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		if msg.Type == "resize" && msg.Width > 0 && msg.Height > 0 {
			anim.Resize(clampSide(msg.Width, defaultCanvasWidth), clampSide(msg.Height, defaultCanvasHeight))
		}
	}
}
