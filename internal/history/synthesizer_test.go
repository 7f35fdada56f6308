package history

import (
	"math/rand"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
}

func newTestSynthesizer(seed int64) *Synthesizer {
	s := NewSynthesizer(nil, rand.New(rand.NewSource(seed)))
	s.now = fixedNow
	return s
}

func TestSynthesize_Shape(t *testing.T) {
	s := newTestSynthesizer(1)

	for _, ticker := range []string{"NVDA", "AAPL", "ZZZZ"} {
		series := s.Synthesize(ticker, DefaultDays)

		if len(series) != DefaultDays {
			t.Fatalf("%s: got %d points, want %d", ticker, len(series), DefaultDays)
		}

		// Dates strictly ascend by one calendar day, ending today
		last, _ := series.Last()
		if last.DateString() != "2026-08-29" {
			t.Errorf("%s: last date = %s, want 2026-08-29", ticker, last.DateString())
		}
		for i := 1; i < len(series); i++ {
			want := series[i-1].Date.AddDate(0, 0, 1)
			if series[i].DateString() != want.Format("2006-01-02") {
				t.Errorf("%s: date[%d] = %s, want %s", ticker, i, series[i].DateString(), want.Format("2006-01-02"))
			}
		}
	}
}

func TestSynthesize_Bounds(t *testing.T) {
	s := newTestSynthesizer(7)

	// Many runs across the whole base table; bounds must always hold.
	tickers := []string{"NVDA", "AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "AMD", "NFLX", "CRM", "UNKNOWN"}
	for run := 0; run < 50; run++ {
		for _, ticker := range tickers {
			for _, p := range s.Synthesize(ticker, DefaultDays) {
				if p.Score < 0 || p.Score > 100 {
					t.Fatalf("%s: score %d out of [0,100]", ticker, p.Score)
				}
				if p.Price < 0 {
					t.Fatalf("%s: negative price %f", ticker, p.Price)
				}
				if p.Change < -3 || p.Change > 3 {
					t.Fatalf("%s: change %f out of [-3,3]", ticker, p.Change)
				}
			}
		}
	}
}

func TestSynthesize_SeededReproducibility(t *testing.T) {
	a := newTestSynthesizer(42).Synthesize("NVDA", DefaultDays)
	b := newTestSynthesizer(42).Synthesize("NVDA", DefaultDays)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSynthesize_ShapeStableAcrossCalls(t *testing.T) {
	// Two calls on one synthesizer draw different noise but share shape:
	// same day count and the same date range.
	s := newTestSynthesizer(3)

	a := s.Synthesize("NVDA", DefaultDays)
	b := s.Synthesize("NVDA", DefaultDays)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].DateString() != b[i].DateString() {
			t.Errorf("date[%d] differs: %s vs %s", i, a[i].DateString(), b[i].DateString())
		}
	}
}

func TestSynthesize_UnknownTickerUsesDefaults(t *testing.T) {
	// Default base price is 100; with ±5% oscillation, up to 3% noise and at
	// most 43.5 total drift, every price stays inside [95, 151.5].
	s := newTestSynthesizer(9)

	for _, p := range s.Synthesize("ZZZZ", DefaultDays) {
		if p.Price < 95 || p.Price > 151.5 {
			t.Fatalf("unknown ticker price %f outside default-base envelope", p.Price)
		}
	}
}

func TestSynthesize_DayCount(t *testing.T) {
	s := newTestSynthesizer(5)

	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "default on zero", days: 0, want: DefaultDays},
		{name: "default on negative", days: -5, want: DefaultDays},
		{name: "explicit short", days: 7, want: 7},
		{name: "single day", days: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := s.Synthesize("AAPL", tt.days)
			if len(series) != tt.want {
				t.Errorf("got %d points, want %d", len(series), tt.want)
			}
			last, _ := series.Last()
			if last.DateString() != "2026-08-29" {
				t.Errorf("last date = %s, want today", last.DateString())
			}
		})
	}
}

func TestSeries_At(t *testing.T) {
	s := newTestSynthesizer(11)
	series := s.Synthesize("MSFT", DefaultDays)

	// Member lookup ignores time-of-day
	target := series[10].Date.Add(9 * time.Hour)
	p, ok := series.At(target)
	if !ok {
		t.Fatal("expected to find point for member date")
	}
	if p != series[10] {
		t.Errorf("At returned %+v, want %+v", p, series[10])
	}

	if _, ok := series.At(fixedNow().AddDate(0, 0, 1)); ok {
		t.Error("found point for tomorrow, want miss")
	}
}

func TestSeries_Last_Empty(t *testing.T) {
	var empty Series
	if _, ok := empty.Last(); ok {
		t.Error("Last on empty series reported ok")
	}
}
