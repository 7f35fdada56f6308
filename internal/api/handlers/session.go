package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wonny/stockscore/backend/internal/catalog"
	"github.com/wonny/stockscore/backend/internal/history"
	"github.com/wonny/stockscore/backend/internal/selection"
	"github.com/wonny/stockscore/backend/pkg/logger"
)

const (
	writeWait           = 10 * time.Second
	sessionPongWait     = 60 * time.Second
	sessionPingInterval = (sessionPongWait * 9) / 10
)

// SessionHandler runs one detail-view selection session per WebSocket
// connection. ⭐ SSOT: 상세 화면 선택 상태는 연결 단위로만 존재
//
// Opening a connection synthesizes a fresh series and resets the selection
// to today; closing it discards all session state.
type SessionHandler struct {
	catalog     *catalog.Catalog
	synthesizer *history.Synthesizer
	historyDays int
	upgrader    websocket.Upgrader
	logger      *logger.Logger

	// Keep-alive timing; browsers cannot initiate pings, so the server must.
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewSessionHandler creates a new selection session handler
func NewSessionHandler(cat *catalog.Catalog, synth *history.Synthesizer, historyDays int, log *logger.Logger) *SessionHandler {
	if historyDays < 1 {
		historyDays = history.DefaultDays
	}
	return &SessionHandler{
		catalog:     cat,
		synthesizer: synth,
		historyDays: historyDays,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 프론트엔드 단일 세션 모델이므로 오리진 제한 없음
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:       log,
		pingInterval: sessionPingInterval,
		pongWait:     sessionPongWait,
	}
}

// selectMessage is a client request to move the selection.
type selectMessage struct {
	Action string `json:"action"` // "select" or "today"
	Date   string `json:"date,omitempty"`
}

// comparisonPayload mirrors selection.Comparison for the wire.
type comparisonPayload struct {
	IsComparing  bool                 `json:"isComparing"`
	SelectedDate string               `json:"selectedDate"`
	TodayDate    string               `json:"todayDate"`
	ScoreDelta   int                  `json:"scoreDelta"`
	PriceDelta   float64              `json:"priceDelta"`
	ChangeDelta  float64              `json:"changeDelta"`
	Display      HistoryPointResponse `json:"display"`
}

// sessionFrame is a server push to the detail view.
type sessionFrame struct {
	Type       string                 `json:"type"` // "snapshot" or "comparison"
	Ticker     string                 `json:"ticker"`
	History    []HistoryPointResponse `json:"history,omitempty"`
	Comparison comparisonPayload      `json:"comparison"`
}

// Serve upgrades the connection and runs the selection loop
// GET /ws/stocks/{ticker}
func (h *SessionHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]

	if _, err := h.catalog.Lookup(ticker); err != nil {
		respondError(w, http.StatusNotFound, "Stock not found: "+ticker)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	series := h.synthesizer.Synthesize(ticker, h.historyDays)
	coord, err := selection.NewCoordinator(series)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to create coordinator")
		return
	}

	log := h.logger.WithField("ticker", ticker)
	log.Debug("Selection session opened")

	// Initial snapshot: full series + today-vs-today comparison
	if err := h.writeFrame(conn, sessionFrame{
		Type:       "snapshot",
		Ticker:     ticker,
		History:    toHistoryResponse(series),
		Comparison: toComparisonPayload(coord),
	}); err != nil {
		log.WithError(err).Error("Failed to write snapshot")
		return
	}

	conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.pongWait))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go h.pingLoop(conn, stopPing, log)

	for {
		var msg selectMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Selection session closed unexpectedly")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.pongWait))

		switch msg.Action {
		case "select":
			if err := coord.SelectDate(msg.Date); err != nil {
				if errors.Is(err, selection.ErrInvalidSelection) {
					// Contract violation from the client; log and keep state.
					log.WithField("date", msg.Date).Warn("Ignoring selection outside loaded series")
					continue
				}
				log.WithError(err).Error("Selection failed")
				continue
			}
		case "today":
			coord.SelectToday()
		default:
			log.WithField("action", msg.Action).Warn("Ignoring unknown session action")
			continue
		}

		if err := h.writeFrame(conn, sessionFrame{
			Type:       "comparison",
			Ticker:     ticker,
			Comparison: toComparisonPayload(coord),
		}); err != nil {
			log.WithError(err).Error("Failed to write comparison frame")
			return
		}
	}
}

// pingLoop sends periodic pings so an idle detail view keeps its selection
// state; the pong handler pushes the read deadline forward on each reply.
// WriteControl is safe to call concurrently with the frame writes.
func (h *SessionHandler) pingLoop(conn *websocket.Conn, stop <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("Failed to send ping")
				return
			}
		}
	}
}

func (h *SessionHandler) writeFrame(conn *websocket.Conn, frame sessionFrame) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(frame)
}

func toHistoryResponse(series history.Series) []HistoryPointResponse {
	result := make([]HistoryPointResponse, len(series))
	for i, p := range series {
		result[i] = HistoryPointResponse{
			Date:   p.DateString(),
			Score:  p.Score,
			Price:  p.Price,
			Change: p.Change,
		}
	}
	return result
}

func toComparisonPayload(coord *selection.Coordinator) comparisonPayload {
	cmp := coord.Comparison()
	return comparisonPayload{
		IsComparing:  cmp.IsComparing,
		SelectedDate: coord.Selected().DateString(),
		TodayDate:    coord.Today().DateString(),
		ScoreDelta:   cmp.ScoreDelta,
		PriceDelta:   cmp.PriceDelta,
		ChangeDelta:  cmp.ChangeDelta,
		Display: HistoryPointResponse{
			Date:   cmp.Display.DateString(),
			Score:  cmp.Display.Score,
			Price:  cmp.Display.Price,
			Change: cmp.Display.Change,
		},
	}
}
