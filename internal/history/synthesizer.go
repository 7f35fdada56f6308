package history

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// DefaultDays is the standard length of a synthesized series.
const DefaultDays = 30

// Point is one day of a synthesized score/price trajectory.
type Point struct {
	Date   time.Time
	Score  int
	Price  float64
	Change float64
}

// DateString returns the point's calendar date in ISO form.
func (p Point) DateString() string {
	return p.Date.Format("2006-01-02")
}

// Series is an ordered run of daily points, oldest first, "today" last.
type Series []Point

// Last returns the most recent point ("today").
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// At finds the point for a calendar date.
func (s Series) At(date time.Time) (Point, bool) {
	for _, p := range s {
		if sameDay(p.Date, date) {
			return p, true
		}
	}
	return Point{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BaseParams anchor a ticker's synthesized trajectory.
type BaseParams struct {
	Score int
	Price float64
}

// defaultBase is used for any ticker without known base parameters.
// 알 수 없는 티커도 항상 전체 시리즈를 생성함 (에러 없음)
var defaultBase = BaseParams{Score: 70, Price: 100}

// DefaultBaseParams returns the base score/price table for the seed universe.
// The bases sit below the instruments' current values so the recency drift
// lands the series near "today's" quote.
func DefaultBaseParams() map[string]BaseParams {
	return map[string]BaseParams{
		"NVDA":  {Score: 85, Price: 820},
		"AAPL":  {Score: 80, Price: 180},
		"MSFT":  {Score: 78, Price: 400},
		"GOOGL": {Score: 75, Price: 165},
		"AMZN":  {Score: 72, Price: 175},
		"META":  {Score: 70, Price: 480},
		"TSLA":  {Score: 65, Price: 230},
		"AMD":   {Score: 62, Price: 150},
		"NFLX":  {Score: 60, Price: 600},
		"CRM":   {Score: 58, Price: 280},
	}
}

// Synthesizer produces 30-day score/price histories from base parameters.
// ⭐ SSOT: 히스토리 합성은 이 구조체에서만
//
// The noise source is injected so tests can pin exact output sequences;
// production uses a time-seeded source. Two production calls for the same
// ticker share shape (day count, date range, trend) but not exact values.
type Synthesizer struct {
	base map[string]BaseParams

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSynthesizer creates a synthesizer over the given base parameter table.
// A nil table falls back to the seed universe; a nil source gets time-seeded.
func NewSynthesizer(base map[string]BaseParams, rng *rand.Rand) *Synthesizer {
	if base == nil {
		base = DefaultBaseParams()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		base: base,
		rng:  rng,
		now:  time.Now,
	}
}

// Synthesize generates a fresh series of days points ending at today.
// Any ticker, known or not, yields a full series; days <= 0 means DefaultDays.
func (s *Synthesizer) Synthesize(ticker string, days int) Series {
	if days <= 0 {
		days = DefaultDays
	}

	bp, ok := s.base[ticker]
	if !ok {
		bp = defaultBase
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	series := make(Series, 0, days)

	// Offset i counts days before today; i=0 is today. A linear drift term
	// rewards recency so the series trends upward toward the latest point.
	for i := days - 1; i >= 0; i-- {
		date := midnight(today.AddDate(0, 0, -i))
		drift := float64(days - 1 - i)

		scoreVariation := math.Sin(float64(i)*0.3)*10 + s.rng.Float64()*8 - 4
		priceVariation := math.Sin(float64(i)*0.2)*bp.Price*0.05 + s.rng.Float64()*bp.Price*0.03
		changeVariation := (s.rng.Float64() - 0.5) * 6

		series = append(series, Point{
			Date:   date,
			Score:  int(math.Round(clamp(float64(bp.Score)+scoreVariation+drift*0.3, 0, 100))),
			Price:  round2(bp.Price + priceVariation + drift*1.5),
			Change: round2(changeVariation),
		})
	}

	return series
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
