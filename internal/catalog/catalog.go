package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Lookup when a ticker is not in the catalog.
// 정상적인 결과임 (잘못된 티커 라우트). 호출자는 404 폴백으로 처리
var ErrNotFound = errors.New("ticker not found")

// Instrument is one tradable entity tracked by the scoring service.
type Instrument struct {
	Ticker    string  `json:"ticker" yaml:"ticker"`
	Name      string  `json:"name" yaml:"name"`
	Score     int     `json:"score" yaml:"score"`
	Price     float64 `json:"price" yaml:"price"`
	Change    float64 `json:"change" yaml:"change"`
	IsBuyable bool    `json:"isBuyable" yaml:"is_buyable"`
	// AlternateScore is the second scoring model's output.
	// nil means the model has not scored this instrument; ranking treats it as 0.
	AlternateScore *int `json:"alternateScore,omitempty" yaml:"alternate_score,omitempty"`
}

// Catalog is the read-only instrument table for the process lifetime.
// ⭐ SSOT: 종목 마스터 데이터는 이 구조체에서만 조회
type Catalog struct {
	instruments []Instrument
	byTicker    map[string]int
}

// New builds a catalog from a seed slice. Insertion order is preserved and
// becomes the tie-break order for rankings. Duplicate tickers are rejected.
func New(instruments []Instrument) (*Catalog, error) {
	byTicker := make(map[string]int, len(instruments))
	for i, inst := range instruments {
		if inst.Ticker == "" {
			return nil, fmt.Errorf("instrument %d: ticker is required", i)
		}
		if _, exists := byTicker[inst.Ticker]; exists {
			return nil, fmt.Errorf("duplicate ticker %s", inst.Ticker)
		}
		byTicker[inst.Ticker] = i
	}

	return &Catalog{
		instruments: append([]Instrument(nil), instruments...),
		byTicker:    byTicker,
	}, nil
}

// Len returns the number of instruments in the catalog.
func (c *Catalog) Len() int {
	return len(c.instruments)
}

// All returns every instrument in stored order.
func (c *Catalog) All() []Instrument {
	return append([]Instrument(nil), c.instruments...)
}

// Lookup finds an instrument by exact, case-sensitive ticker.
func (c *Catalog) Lookup(ticker string) (Instrument, error) {
	idx, ok := c.byTicker[ticker]
	if !ok {
		return Instrument{}, fmt.Errorf("lookup %q: %w", ticker, ErrNotFound)
	}
	return c.instruments[idx], nil
}

// Buyable returns instruments flagged with a buy signal, in stored order.
func (c *Catalog) Buyable() []Instrument {
	result := make([]Instrument, 0)
	for _, inst := range c.instruments {
		if inst.IsBuyable {
			result = append(result, inst)
		}
	}
	return result
}

// TopByScore returns up to n instruments ranked by primary score, descending.
// Ties keep catalog order (stable sort), so rankings are reproducible.
func (c *Catalog) TopByScore(n int) []Instrument {
	return c.topBy(n, func(inst Instrument) int { return inst.Score })
}

// TopByAlternateScore ranks by the alternate model's score, descending.
// Instruments without an alternate score rank as 0.
func (c *Catalog) TopByAlternateScore(n int) []Instrument {
	return c.topBy(n, func(inst Instrument) int {
		if inst.AlternateScore == nil {
			return 0
		}
		return *inst.AlternateScore
	})
}

func (c *Catalog) topBy(n int, key func(Instrument) int) []Instrument {
	ranked := append([]Instrument(nil), c.instruments...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
