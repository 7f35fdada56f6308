// Package selection tracks which historical day a detail view is comparing
// against today.
package selection

import (
	"errors"
	"fmt"

	"github.com/wonny/stockscore/backend/internal/history"
)

// ErrInvalidSelection is returned when a point outside the loaded series is
// selected. Legitimate UI input never produces this; callers log and ignore.
var ErrInvalidSelection = errors.New("selected point is not in the loaded series")

// Comparison is the derived view state for the detail summary card.
type Comparison struct {
	IsComparing bool
	ScoreDelta  int
	PriceDelta  float64
	ChangeDelta float64

	// Display carries the values the summary shows: the selected day's when
	// comparing, today's otherwise.
	Display history.Point
}

// Coordinator owns the day-selection state for one open detail view.
// ⭐ SSOT: 날짜 선택/비교 상태는 이 구조체에서만
//
// State: Viewing(selected=today) initially, Viewing(selected=d) after a chart
// click. The view is torn down (and the coordinator discarded) on navigation;
// today never changes once the series is loaded.
type Coordinator struct {
	series   history.Series
	today    history.Point
	selected history.Point
}

// NewCoordinator builds a coordinator over a freshly synthesized series.
// The selection starts at the last point ("today").
func NewCoordinator(series history.Series) (*Coordinator, error) {
	today, ok := series.Last()
	if !ok {
		return nil, fmt.Errorf("coordinator requires a non-empty series")
	}
	return &Coordinator{
		series:   series,
		today:    today,
		selected: today,
	}, nil
}

// Series returns the loaded series.
func (c *Coordinator) Series() history.Series {
	return c.series
}

// Today returns the fixed most-recent point.
func (c *Coordinator) Today() history.Point {
	return c.today
}

// Selected returns the currently selected point.
func (c *Coordinator) Selected() history.Point {
	return c.selected
}

// SelectPoint sets the selection to p. Membership in the loaded series is
// checked by calendar date; an outside point leaves the state unchanged and
// returns ErrInvalidSelection.
func (c *Coordinator) SelectPoint(p history.Point) error {
	member, ok := c.series.At(p.Date)
	if !ok {
		return fmt.Errorf("select %s: %w", p.DateString(), ErrInvalidSelection)
	}
	c.selected = member
	return nil
}

// SelectDate selects the series point for a calendar date in ISO form.
func (c *Coordinator) SelectDate(date string) error {
	for _, p := range c.series {
		if p.DateString() == date {
			c.selected = p
			return nil
		}
	}
	return fmt.Errorf("select %s: %w", date, ErrInvalidSelection)
}

// SelectToday resets the selection to today ("back to today" action).
func (c *Coordinator) SelectToday() {
	c.selected = c.today
}

// IsComparing reports whether a day other than today is selected.
func (c *Coordinator) IsComparing() bool {
	return c.selected.DateString() != c.today.DateString()
}

// Comparison derives the comparison state exposed to the view.
// Deltas are today minus selected; they are only meaningful when comparing.
func (c *Coordinator) Comparison() Comparison {
	comparing := c.IsComparing()

	display := c.today
	if comparing {
		display = c.selected
	}

	return Comparison{
		IsComparing: comparing,
		ScoreDelta:  c.today.Score - c.selected.Score,
		PriceDelta:  c.today.Price - c.selected.Price,
		ChangeDelta: c.today.Change - c.selected.Change,
		Display:     display,
	}
}
