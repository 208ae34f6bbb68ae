package booking

import (
	"context"
	"errors"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

// Store is what the flow reads availability from and writes reservations to.
type Store interface {
	SaltCaveDay(ctx context.Context, date string) ([]models.SaltCaveReservation, error)
	SaltCaveMonth(ctx context.Context, year int, month time.Month) (DayLookup, error)
	MotelOverlapping(ctx context.Context, from, to string) ([]models.MotelReservation, error)
	SubmitSaltCave(ctx context.Context, r *models.SaltCaveReservation) (*models.SaltCaveReservation, error)
	SubmitMotel(ctx context.Context, r *models.MotelReservation) (*models.MotelReservation, error)
}

// Flow walks one customer through date, slot or room, details, confirmation
// and submission.
type Flow struct {
	resource models.Resource
	store    Store

	Calendar *Calendar
	Slots    *SlotBoard
	Rooms    []RoomOption
	Form     Form

	checkOut time.Time
	pending  *Summary
	err      string
}

func NewFlow(resource models.Resource, store Store, date time.Time) *Flow {
	cal := NewCalendar(date)
	return &Flow{
		resource: resource,
		store:    store,
		Calendar: cal,
		Slots:    NewSlotBoard(nil),
		Rooms:    RoomBoard(nil),
		checkOut: cal.Selected().AddDate(0, 0, 1),
	}
}

func (f *Flow) Resource() models.Resource { return f.resource }

func (f *Flow) Err() string { return f.err }

func (f *Flow) CheckOut() time.Time { return f.checkOut }

// SetCheckOut sets the motel departure date. Dates not after check-in fall
// back to the next day.
func (f *Flow) SetCheckOut(d time.Time) {
	d = dateOnly(d)
	if !d.After(f.Calendar.Selected()) {
		d = f.Calendar.Selected().AddDate(0, 0, 1)
	}
	f.checkOut = d
}

// Load fetches availability for the selected date and refreshes the calendar.
// Read failures leave everything available and set the error message.
func (f *Flow) Load(ctx context.Context) {
	f.err = ""
	date := f.Calendar.SelectedDate()

	switch f.resource {
	case models.ResourceSaltCave:
		previous := f.Slots.Selected()
		reservations, err := f.store.SaltCaveDay(ctx, date)
		if err != nil {
			f.err = MsgFetch
			reservations = nil
		}
		f.Slots = NewSlotBoard(reservations)
		if previous != "" {
			if err := f.Slots.Select(previous); errors.Is(err, ErrSlotUnavailable) && f.err == "" {
				f.err = MsgSlotTaken
			}
		}

		lookup, err := f.store.SaltCaveMonth(ctx, f.Calendar.Selected().Year(), f.Calendar.Selected().Month())
		if err != nil {
			lookup = FailingLookup(err)
		}
		f.Calendar.Refresh(ctx, lookup)

	case models.ResourceMotel:
		reservations, err := f.store.MotelOverlapping(ctx, date, models.FormatDate(f.checkOut))
		if err != nil {
			f.err = MsgFetch
			reservations = nil
		}
		f.Rooms = RoomBoard(reservations)
		f.Calendar.Refresh(ctx, AlwaysAvailable)
	}

	if f.err == "" {
		f.err = f.Calendar.Err()
	}
}

// SelectDay picks day n of the displayed month and reloads availability.
func (f *Flow) SelectDay(ctx context.Context, n int) error {
	if err := f.Calendar.SelectDay(n); err != nil {
		return err
	}
	f.Slots.Clear()
	f.SetCheckOut(f.checkOut)
	f.Load(ctx)
	return nil
}

func (f *Flow) SelectSlot(t string) error {
	return f.Slots.Select(t)
}

func (f *Flow) stay() Stay {
	return Stay{
		Date:     f.Calendar.Selected(),
		CheckOut: f.checkOut,
		Time:     f.Slots.Selected(),
	}
}

// Review validates the form and opens the confirmation step.
func (f *Flow) Review() (*Summary, error) {
	s, err := f.Form.Validate(f.resource, f.stay())
	if err != nil {
		f.err = err.Error()
		return nil, err
	}
	f.err = ""
	f.pending = s
	return s, nil
}

// Pending is the summary awaiting confirmation, nil when the step is closed.
func (f *Flow) Pending() *Summary { return f.pending }

// Cancel closes the confirmation step. The form keeps its values.
func (f *Flow) Cancel() { f.pending = nil }

// Confirm submits the pending summary once. On success the customer fields
// are cleared, the confirmation closes and availability is reloaded.
func (f *Flow) Confirm(ctx context.Context) (models.Reservation, error) {
	if f.pending == nil {
		err := invalid(MsgNothingPending)
		f.err = err.Error()
		return models.Reservation{}, err
	}

	var (
		out models.Reservation
		err error
	)
	switch f.resource {
	case models.ResourceSaltCave:
		var created *models.SaltCaveReservation
		created, err = f.store.SubmitSaltCave(ctx, f.pending.SaltCave())
		out = models.Reservation{Resource: f.resource, SaltCave: created}
	default:
		var created *models.MotelReservation
		created, err = f.store.SubmitMotel(ctx, f.pending.Motel())
		out = models.Reservation{Resource: f.resource, Motel: created}
	}

	if err != nil {
		if errors.Is(err, models.ErrSlotTaken) {
			f.pending = nil
			f.Load(ctx)
			f.err = MsgSlotTaken
			return models.Reservation{}, err
		}
		f.err = MsgCreateFailed
		return models.Reservation{}, err
	}

	f.Form.Clear()
	f.Slots.Clear()
	f.pending = nil
	f.Load(ctx)
	return out, nil
}

// View is the JSON shape of the flow state.
type View struct {
	Resource models.Resource `json:"resource"`
	Date     string          `json:"date"`
	CheckOut string          `json:"check_out,omitempty"`
	Days     []Day           `json:"days"`
	Slots    []Slot          `json:"slots,omitempty"`
	Tickets  []models.Option `json:"tickets,omitempty"`
	Rooms    []RoomOption    `json:"rooms,omitempty"`
	Pending  *Summary        `json:"pending,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (f *Flow) View() View {
	v := View{
		Resource: f.resource,
		Date:     f.Calendar.SelectedDate(),
		Days:     f.Calendar.Days(),
		Pending:  f.pending,
		Error:    f.err,
	}
	if f.resource == models.ResourceSaltCave {
		v.Slots = f.Slots.Slots()
		v.Tickets = models.TicketTypes
	} else {
		v.CheckOut = models.FormatDate(f.checkOut)
		v.Rooms = f.Rooms
	}
	return v
}
