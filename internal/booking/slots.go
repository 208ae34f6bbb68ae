package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

var (
	ErrSlotUnavailable = errors.New("time slot is already taken")
	ErrUnknownSlot     = errors.New("not a bookable time slot")
)

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// SlotBoard is the single-choice list of salt cave sessions for one date.
type SlotBoard struct {
	slots    []Slot
	selected string
}

// NewSlotBoard marks a slot taken when any reservation row carries its time.
func NewSlotBoard(reservations []models.SaltCaveReservation) *SlotBoard {
	taken := takenSlots(reservations)
	slots := make([]Slot, 0, len(models.SlotTimes))
	for _, t := range models.SlotTimes {
		slots = append(slots, Slot{Time: t, Available: !taken[t]})
	}
	return &SlotBoard{slots: slots}
}

func takenSlots(reservations []models.SaltCaveReservation) map[string]bool {
	taken := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		taken[models.NormalizeSlot(r.Time)] = true
	}
	return taken
}

// HasFreeSlot reports whether at least one of the 11 sessions is still open.
func HasFreeSlot(reservations []models.SaltCaveReservation) bool {
	taken := takenSlots(reservations)
	for _, t := range models.SlotTimes {
		if !taken[t] {
			return true
		}
	}
	return false
}

func (b *SlotBoard) Slots() []Slot {
	out := make([]Slot, len(b.slots))
	for i, s := range b.slots {
		s.Selected = s.Time == b.selected
		out[i] = s
	}
	return out
}

func (b *SlotBoard) Selected() string { return b.selected }

func (b *SlotBoard) IsAvailable(t string) bool {
	t = models.NormalizeSlot(t)
	for _, s := range b.slots {
		if s.Time == t {
			return s.Available
		}
	}
	return false
}

func (b *SlotBoard) FreeCount() int {
	n := 0
	for _, s := range b.slots {
		if s.Available {
			n++
		}
	}
	return n
}

// Select picks a slot. Taken slots are disabled: the call fails and the
// previous selection stays.
func (b *SlotBoard) Select(t string) error {
	t = models.NormalizeSlot(t)
	for _, s := range b.slots {
		if s.Time != t {
			continue
		}
		if !s.Available {
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, t)
		}
		b.selected = t
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSlot, t)
}

func (b *SlotBoard) Clear() { b.selected = "" }

// MonthIndex answers per-day lookups for one month from a single range read.
type MonthIndex struct {
	year  int
	month time.Month
	byDay map[string][]models.SaltCaveReservation
}

func NewMonthIndex(year int, month time.Month, reservations []models.SaltCaveReservation) *MonthIndex {
	idx := &MonthIndex{year: year, month: month, byDay: map[string][]models.SaltCaveReservation{}}
	for _, r := range reservations {
		idx.byDay[r.Date] = append(idx.byDay[r.Date], r)
	}
	return idx
}

// MonthBounds returns the first and last date of the month as YYYY-MM-DD.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, models.DaysIn(year, month), 0, 0, 0, 0, time.UTC)
	return models.FormatDate(first), models.FormatDate(last)
}

func (m *MonthIndex) DayAvailable(_ context.Context, date time.Time) (bool, error) {
	if date.Year() != m.year || date.Month() != m.month {
		return true, fmt.Errorf("%s is outside %d-%02d", models.FormatDate(date), m.year, m.month)
	}
	return HasFreeSlot(m.byDay[models.FormatDate(date)]), nil
}

type RoomOption struct {
	models.Option
	Booked int `json:"booked"`
}

// RoomBoard lists the full room catalog with the number of overlapping stays
// per room type. The catalog is not reduced by occupancy.
func RoomBoard(reservations []models.MotelReservation) []RoomOption {
	booked := map[string]int{}
	for _, r := range reservations {
		if r.Status == models.StatusCancelled {
			continue
		}
		booked[r.RoomType]++
	}
	out := make([]RoomOption, 0, len(models.RoomTypes))
	for _, o := range models.RoomTypes {
		out = append(out, RoomOption{Option: o, Booked: booked[o.ID]})
	}
	return out
}
