package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps reservations in memory and counts calls.
type memStore struct {
	saltCave    []models.SaltCaveReservation
	motel       []models.MotelReservation
	monthReads  int
	lookups     int
	dayErr      error
	monthErr    error
	submitErr   error
	submissions int
}

func (m *memStore) SaltCaveDay(_ context.Context, date string) ([]models.SaltCaveReservation, error) {
	if m.dayErr != nil {
		return nil, m.dayErr
	}
	var out []models.SaltCaveReservation
	for _, r := range m.saltCave {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) SaltCaveMonth(_ context.Context, year int, month time.Month) (DayLookup, error) {
	m.monthReads++
	if m.monthErr != nil {
		return nil, m.monthErr
	}
	idx := NewMonthIndex(year, month, m.saltCave)
	return DayLookupFunc(func(ctx context.Context, d time.Time) (bool, error) {
		m.lookups++
		return idx.DayAvailable(ctx, d)
	}), nil
}

func (m *memStore) MotelOverlapping(_ context.Context, from, to string) ([]models.MotelReservation, error) {
	var out []models.MotelReservation
	for _, r := range m.motel {
		if r.CheckIn < to && r.CheckOut > from {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) SubmitSaltCave(_ context.Context, r *models.SaltCaveReservation) (*models.SaltCaveReservation, error) {
	m.submissions++
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	for _, existing := range m.saltCave {
		if existing.Date == r.Date && models.NormalizeSlot(existing.Time) == r.Time {
			return nil, models.ErrSlotTaken
		}
	}
	created := *r
	created.ID = uuid.New()
	created.Time = r.Time + ":00"
	m.saltCave = append(m.saltCave, created)
	return &created, nil
}

func (m *memStore) SubmitMotel(_ context.Context, r *models.MotelReservation) (*models.MotelReservation, error) {
	m.submissions++
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	created := *r
	created.ID = uuid.New()
	m.motel = append(m.motel, created)
	return &created, nil
}

func day(s string) time.Time {
	d, _ := models.ParseDate(s)
	return d
}

func fillForm(f *Flow) {
	f.Form = Form{Name: "Anna Nowak", Email: "anna@example.com", Phone: "600100200"}
}

func TestCalendar_OneLookupPerDay(t *testing.T) {
	for _, tc := range []struct {
		date string
		want int
	}{
		{"2026-02-10", 28},
		{"2024-02-10", 29},
		{"2026-04-01", 30},
		{"2026-10-15", 31},
	} {
		store := &memStore{}
		f := NewFlow(models.ResourceSaltCave, store, day(tc.date))
		f.Load(context.Background())

		assert.Equal(t, tc.want, store.lookups, tc.date)
		assert.Equal(t, 1, store.monthReads, tc.date)
		assert.Len(t, f.Calendar.Days(), tc.want)
	}
}

func TestCalendar_FullDayUnavailable(t *testing.T) {
	store := &memStore{}
	for _, slot := range models.SlotTimes {
		store.saltCave = append(store.saltCave, models.SaltCaveReservation{Date: "2026-10-20", Time: slot + ":00"})
	}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(context.Background())

	for _, d := range f.Calendar.Days() {
		assert.Equal(t, d.Date != "2026-10-20", d.Available, d.Date)
	}
}

func TestCalendar_FailsOpen(t *testing.T) {
	store := &memStore{monthErr: errors.New("store unavailable")}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(context.Background())

	assert.Equal(t, MsgAvailability, f.Err())
	for _, d := range f.Calendar.Days() {
		assert.True(t, d.Available)
	}

	c := NewCalendar(day("2026-10-15"))
	assert.True(t, c.IsAvailable("2026-10-03"), "days default to available before any lookup")
}

func TestCalendar_SelectDay(t *testing.T) {
	c := NewCalendar(day("2026-02-10"))
	require.NoError(t, c.SelectDay(28))
	assert.Equal(t, "2026-02-28", c.SelectedDate())
	assert.ErrorIs(t, c.SelectDay(29), ErrDayOutOfMonth)
	assert.ErrorIs(t, c.SelectDay(0), ErrDayOutOfMonth)
	assert.Equal(t, "2026-02-28", c.SelectedDate())
}

func TestSlotBoard_TakenSlotRejectsSelection(t *testing.T) {
	b := NewSlotBoard([]models.SaltCaveReservation{{Date: "2026-10-15", Time: "12:00:00"}})
	require.NoError(t, b.Select("11:00"))

	assert.False(t, b.IsAvailable("12:00"))
	assert.ErrorIs(t, b.Select("12:00"), ErrSlotUnavailable)
	assert.Equal(t, "11:00", b.Selected())
	assert.ErrorIs(t, b.Select("09:00"), ErrUnknownSlot)
	assert.Equal(t, 10, b.FreeCount())
}

func TestSlotBoard_CancelledRowStillBlocks(t *testing.T) {
	b := NewSlotBoard([]models.SaltCaveReservation{{Date: "2026-10-15", Time: "10:00", Status: models.StatusCancelled}})
	assert.False(t, b.IsAvailable("10:00"))
}

func TestHasFreeSlot(t *testing.T) {
	var rows []models.SaltCaveReservation
	assert.True(t, HasFreeSlot(rows))
	for _, slot := range models.SlotTimes[:10] {
		rows = append(rows, models.SaltCaveReservation{Time: slot})
	}
	assert.True(t, HasFreeSlot(rows))
	rows = append(rows, models.SaltCaveReservation{Time: "20:00:00"})
	assert.False(t, HasFreeSlot(rows))
}

func TestForm_Validate(t *testing.T) {
	stay := Stay{Date: day("2026-10-15"), Time: "14:00"}
	valid := Form{Name: "Anna", Email: "anna@example.com", Phone: "600"}

	for name, tc := range map[string]struct {
		form Form
		stay Stay
		msg  string
	}{
		"missing name":   {Form{Email: "a@b.pl", Phone: "1"}, stay, MsgMissingFields},
		"blank phone":    {Form{Name: "A", Email: "a@b.pl", Phone: "   "}, stay, MsgMissingFields},
		"missing time":   {valid, Stay{Date: stay.Date}, MsgMissingTime},
		"bad email":      {Form{Name: "A", Email: "nope", Phone: "1"}, stay, MsgInvalidEmail},
		"zero people":    {Form{Name: "A", Email: "a@b.pl", Phone: "1", PartySize: "0"}, stay, MsgPartySize},
		"text people":    {Form{Name: "A", Email: "a@b.pl", Phone: "1", PartySize: "dwa"}, stay, MsgPartySize},
		"unknown ticket": {Form{Name: "A", Email: "a@b.pl", Phone: "1", Option: "vip"}, stay, MsgBadOption},
	} {
		_, err := tc.form.Validate(models.ResourceSaltCave, tc.stay)
		require.Error(t, err, name)
		assert.True(t, IsValidation(err), name)
		assert.Equal(t, tc.msg, err.Error(), name)
	}

	s, err := valid.Validate(models.ResourceSaltCave, stay)
	require.NoError(t, err)
	assert.Equal(t, 1, s.PartySize)
	assert.Equal(t, "normal", s.OptionID)
	assert.Equal(t, 21, s.Price)
	assert.Equal(t, "14:00", s.Time)
}

func TestForm_MotelStay(t *testing.T) {
	f := Form{Name: "A", Email: "a@b.pl", Phone: "1", PartySize: "2", Option: "quad"}

	_, err := f.Validate(models.ResourceMotel, Stay{Date: day("2026-10-15"), CheckOut: day("2026-10-15")})
	require.Error(t, err)
	assert.Equal(t, MsgBadStay, err.Error())

	s, err := f.Validate(models.ResourceMotel, Stay{Date: day("2026-10-15"), CheckOut: day("2026-10-18")})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Nights)
	assert.Equal(t, 280, s.Price)
	assert.Equal(t, "2026-10-18", s.CheckOut)
}

func TestPartySize_UnmarshalJSON(t *testing.T) {
	var p PartySize
	require.NoError(t, p.UnmarshalJSON([]byte(`3`)))
	n, err := p.Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, p.UnmarshalJSON([]byte(`"4"`)))
	n, err = p.Int()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, p.UnmarshalJSON([]byte(`null`)))
	n, err = p.Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFlow_MissingFieldsIssueNoWrite(t *testing.T) {
	store := &memStore{}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(context.Background())
	require.NoError(t, f.SelectSlot("14:00"))

	_, err := f.Review()
	require.Error(t, err)
	assert.Equal(t, MsgMissingFields, f.Err())
	assert.Nil(t, f.Pending())

	_, err = f.Confirm(context.Background())
	require.Error(t, err)
	assert.Zero(t, store.submissions)
}

func TestFlow_CancelKeepsForm(t *testing.T) {
	store := &memStore{}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	fillForm(f)
	require.NoError(t, f.SelectSlot("15:00"))
	_, err := f.Review()
	require.NoError(t, err)

	f.Cancel()
	assert.Nil(t, f.Pending())
	assert.Equal(t, "Anna Nowak", f.Form.Name)
	assert.Zero(t, store.submissions)
}

func TestFlow_BookDay15At14(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-01"))
	require.NoError(t, f.SelectDay(ctx, 15))
	assert.Equal(t, 11, f.Slots.FreeCount())

	fillForm(f)
	require.NoError(t, f.SelectSlot("14:00"))
	s, err := f.Review()
	require.NoError(t, err)
	assert.Same(t, s, f.Pending())

	created, err := f.Confirm(ctx)
	require.NoError(t, err)
	require.NotNil(t, created.SaltCave)
	assert.Equal(t, models.StatusPending, created.SaltCave.Status)
	assert.Equal(t, "normal", created.SaltCave.TicketType)
	assert.Equal(t, 1, store.submissions)

	assert.Nil(t, f.Pending())
	assert.Empty(t, f.Form.Name)
	assert.Empty(t, f.Form.Email)
	assert.Empty(t, f.Form.Phone)
	assert.Empty(t, f.Slots.Selected())

	for _, slot := range f.Slots.Slots() {
		assert.Equal(t, slot.Time != "14:00", slot.Available, slot.Time)
	}
	assert.Equal(t, 10, f.Slots.FreeCount())
}

func TestFlow_SlotTakenAtSubmit(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(ctx)
	fillForm(f)
	require.NoError(t, f.SelectSlot("18:00"))
	_, err := f.Review()
	require.NoError(t, err)

	store.saltCave = append(store.saltCave, models.SaltCaveReservation{Date: "2026-10-15", Time: "18:00:00"})

	_, err = f.Confirm(ctx)
	assert.ErrorIs(t, err, models.ErrSlotTaken)
	assert.Equal(t, MsgSlotTaken, f.Err())
	assert.Equal(t, "Anna Nowak", f.Form.Name)
	assert.False(t, f.Slots.IsAvailable("18:00"))
}

func TestFlow_ReloadDropsSlotTakenMeanwhile(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(ctx)
	require.NoError(t, f.SelectSlot("16:00"))

	f.Load(ctx)
	assert.Equal(t, "16:00", f.Slots.Selected())
	assert.Empty(t, f.Err())

	store.saltCave = append(store.saltCave, models.SaltCaveReservation{Date: "2026-10-15", Time: "16:00:00"})
	f.Load(ctx)
	assert.Empty(t, f.Slots.Selected())
	assert.Equal(t, MsgSlotTaken, f.Err())
}

func TestFlow_WriteFailureKeepsForm(t *testing.T) {
	ctx := context.Background()
	store := &memStore{submitErr: errors.New("connection reset")}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	fillForm(f)
	require.NoError(t, f.SelectSlot("10:00"))
	_, err := f.Review()
	require.NoError(t, err)

	_, err = f.Confirm(ctx)
	require.Error(t, err)
	assert.Equal(t, MsgCreateFailed, f.Err())
	assert.Equal(t, "anna@example.com", f.Form.Email)
	assert.NotNil(t, f.Pending())
	assert.Equal(t, 1, store.submissions)
}

func TestFlow_DayReadFailureLeavesSlotsOpen(t *testing.T) {
	store := &memStore{dayErr: errors.New("timeout")}
	f := NewFlow(models.ResourceSaltCave, store, day("2026-10-15"))
	f.Load(context.Background())

	assert.Equal(t, MsgFetch, f.Err())
	assert.Equal(t, 11, f.Slots.FreeCount())
}

func TestFlow_Motel(t *testing.T) {
	ctx := context.Background()
	store := &memStore{motel: []models.MotelReservation{
		{CheckIn: "2026-10-14", CheckOut: "2026-10-16", RoomType: "triple", Status: models.StatusConfirmed},
		{CheckIn: "2026-10-16", CheckOut: "2026-10-18", RoomType: "triple", Status: models.StatusPending},
	}}
	f := NewFlow(models.ResourceMotel, store, day("2026-10-15"))
	f.SetCheckOut(day("2026-10-16"))
	f.Load(ctx)

	require.Len(t, f.Rooms, len(models.RoomTypes))
	for _, r := range f.Rooms {
		if r.ID == "triple" {
			assert.Equal(t, 1, r.Booked)
		} else {
			assert.Zero(t, r.Booked)
		}
	}

	fillForm(f)
	f.Form.Option = "double-private"
	f.Form.PartySize = "2"
	_, err := f.Review()
	require.NoError(t, err)
	created, err := f.Confirm(ctx)
	require.NoError(t, err)
	require.NotNil(t, created.Motel)
	assert.Equal(t, "2026-10-15", created.Motel.CheckIn)
	assert.Equal(t, "2026-10-16", created.Motel.CheckOut)
	assert.Equal(t, 2, created.Motel.NumberOfGuests)
	assert.Equal(t, models.StatusPending, created.Motel.Status)
}

func TestFlow_SetCheckOutNotAfterCheckIn(t *testing.T) {
	f := NewFlow(models.ResourceMotel, &memStore{}, day("2026-10-15"))
	f.SetCheckOut(day("2026-10-10"))
	assert.Equal(t, "2026-10-16", models.FormatDate(f.CheckOut()))
}
