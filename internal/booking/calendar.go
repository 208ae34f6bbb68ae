// Package booking holds the reservation flow: month calendar, slot selection,
// customer form, confirmation and submission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

var ErrDayOutOfMonth = errors.New("day is outside the displayed month")

// DayLookup answers whether a single day can still be booked.
type DayLookup interface {
	DayAvailable(ctx context.Context, date time.Time) (bool, error)
}

type DayLookupFunc func(ctx context.Context, date time.Time) (bool, error)

func (f DayLookupFunc) DayAvailable(ctx context.Context, date time.Time) (bool, error) {
	return f(ctx, date)
}

// AlwaysAvailable is used for resources without per-day capacity.
var AlwaysAvailable = DayLookupFunc(func(context.Context, time.Time) (bool, error) { return true, nil })

// FailingLookup reports err for every day, which leaves every day available.
func FailingLookup(err error) DayLookup {
	return DayLookupFunc(func(context.Context, time.Time) (bool, error) { return true, err })
}

type Day struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Weekday   int    `json:"weekday"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// Calendar tracks one selected date and the availability of every day in its month.
type Calendar struct {
	selected     time.Time
	availability map[string]bool
	err          string
}

func NewCalendar(selected time.Time) *Calendar {
	return &Calendar{
		selected:     dateOnly(selected),
		availability: map[string]bool{},
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) Selected() time.Time { return c.selected }

func (c *Calendar) SelectedDate() string { return models.FormatDate(c.selected) }

func (c *Calendar) DaysInMonth() int {
	return models.DaysIn(c.selected.Year(), c.selected.Month())
}

// SelectDay moves the selection to day n of the displayed month.
func (c *Calendar) SelectDay(n int) error {
	if n < 1 || n > c.DaysInMonth() {
		return fmt.Errorf("%w: %d", ErrDayOutOfMonth, n)
	}
	c.selected = time.Date(c.selected.Year(), c.selected.Month(), n, 0, 0, 0, 0, time.UTC)
	return nil
}

// SetDate changes the selected date, dropping availability of a previous month.
func (c *Calendar) SetDate(d time.Time) {
	d = dateOnly(d)
	if d.Year() != c.selected.Year() || d.Month() != c.selected.Month() {
		c.availability = map[string]bool{}
	}
	c.selected = d
}

// Refresh asks lookup about every day of the displayed month, in order, and
// returns the number of lookups made. A failed lookup leaves the day available.
func (c *Calendar) Refresh(ctx context.Context, lookup DayLookup) int {
	c.err = ""
	n := c.DaysInMonth()
	fresh := make(map[string]bool, n)
	for day := 1; day <= n; day++ {
		date := time.Date(c.selected.Year(), c.selected.Month(), day, 0, 0, 0, 0, time.UTC)
		ok, err := lookup.DayAvailable(ctx, date)
		if err != nil {
			c.err = MsgAvailability
			ok = true
		}
		fresh[models.FormatDate(date)] = ok
	}
	c.availability = fresh
	return n
}

// IsAvailable is false only when a lookup explicitly said so.
func (c *Calendar) IsAvailable(date string) bool {
	return c.availability[date] != false
}

func (c *Calendar) Err() string { return c.err }

func (c *Calendar) Days() []Day {
	n := c.DaysInMonth()
	out := make([]Day, 0, n)
	for day := 1; day <= n; day++ {
		date := time.Date(c.selected.Year(), c.selected.Month(), day, 0, 0, 0, 0, time.UTC)
		key := models.FormatDate(date)
		out = append(out, Day{
			Date:      key,
			Day:       day,
			Weekday:   int(date.Weekday()),
			Available: c.IsAvailable(key),
			Selected:  day == c.selected.Day(),
		})
	}
	return out
}
