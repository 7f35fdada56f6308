package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/stockscore/backend/internal/catalog"
	"github.com/wonny/stockscore/backend/internal/history"
	"github.com/wonny/stockscore/backend/pkg/logger"
)

// StockHandler handles stock data API endpoints
// ⭐ SSOT: 종목 데이터 API 핸들러는 이 구조체에서만
type StockHandler struct {
	catalog     *catalog.Catalog
	synthesizer *history.Synthesizer
	historyDays int
	logger      *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(cat *catalog.Catalog, synth *history.Synthesizer, historyDays int, log *logger.Logger) *StockHandler {
	if historyDays < 1 {
		historyDays = history.DefaultDays
	}
	return &StockHandler{
		catalog:     cat,
		synthesizer: synth,
		historyDays: historyDays,
		logger:      log,
	}
}

// HistoryPointResponse represents a history point for API response
type HistoryPointResponse struct {
	Date   string  `json:"date"`
	Score  int     `json:"score"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// GetStocks returns the full catalog in stored order
// GET /api/v1/stocks
func (h *StockHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	stocks := h.catalog.All()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(stocks),
			"items": stocks,
		},
	})
}

// GetBuyableStocks returns instruments with an active buy signal
// GET /api/v1/stocks/buyable
func (h *StockHandler) GetBuyableStocks(w http.ResponseWriter, r *http.Request) {
	stocks := h.catalog.Buyable()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(stocks),
			"items": stocks,
		},
	})
}

// GetTopStocks returns the primary-score ranking
// GET /api/v1/stocks/top?count=10
func (h *StockHandler) GetTopStocks(w http.ResponseWriter, r *http.Request) {
	count := h.parseCount(r)
	stocks := h.catalog.TopByScore(count)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(stocks),
			"items": stocks,
		},
	})
}

// GetTopAlternateStocks returns the alternate-model ranking
// GET /api/v1/stocks/top/alternate?count=10
func (h *StockHandler) GetTopAlternateStocks(w http.ResponseWriter, r *http.Request) {
	count := h.parseCount(r)
	stocks := h.catalog.TopByAlternateScore(count)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count": len(stocks),
			"items": stocks,
		},
	})
}

// GetStock returns one instrument by ticker
// GET /api/v1/stocks/{ticker}
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]

	stock, err := h.catalog.Lookup(ticker)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Stock not found: "+ticker)
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to look up stock")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve stock")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stock,
	})
}

// GetStockHistory returns a freshly synthesized score/price series
// GET /api/v1/stocks/{ticker}/history?days=30
func (h *StockHandler) GetStockHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]

	// The synthesizer handles any ticker, but the detail route only exists
	// for catalog instruments.
	if _, err := h.catalog.Lookup(ticker); err != nil {
		respondError(w, http.StatusNotFound, "Stock not found: "+ticker)
		return
	}

	days := h.historyDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 365 {
			days = d
		}
	}

	series := h.synthesizer.Synthesize(ticker, days)

	result := make([]HistoryPointResponse, len(series))
	for i, p := range series {
		result[i] = HistoryPointResponse{
			Date:   p.DateString(),
			Score:  p.Score,
			Price:  p.Price,
			Change: p.Change,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"ticker": ticker,
			"days":   len(result),
			"items":  result,
		},
	})
}

// parseCount reads the count query parameter (default: 10, capped at catalog size)
func (h *StockHandler) parseCount(r *http.Request) int {
	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}
	if count > h.catalog.Len() {
		count = h.catalog.Len()
	}
	return count
}
