package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fastRetry = helpers.RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}

func newBookingService(repo models.ReservationRepo, locker SlotLocker) *BookingService {
	return NewBookingService(NewAvailabilityService(repo, fastRetry, nil), repo, locker, nil)
}

func saltCaveRequest(slot string) *models.SaltCaveReservation {
	return &models.SaltCaveReservation{
		Date:           "2026-10-15",
		Time:           slot,
		TicketType:     "normal",
		NumberOfPeople: 2,
		Customer: models.Customer{
			CustomerName:  "Anna Nowak",
			CustomerEmail: "anna@example.com",
			CustomerPhone: "600100200",
		},
	}
}

func TestAvailability_RetriesThenSucceeds(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").Return(nil, errors.New("timeout")).Once()
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").
		Return([]models.SaltCaveReservation{{Date: "2026-10-15", Time: "14:00:00"}}, nil).Once()

	svc := NewAvailabilityService(repo, fastRetry, nil)
	out, err := svc.SaltCaveDay(context.Background(), "2026-10-15")
	require.NoError(t, err)
	assert.Len(t, out, 1)
	repo.AssertNumberOfCalls(t, "ListSaltCaveByDate", 2)
}

func TestAvailability_GivesUpAfterThreeAttempts(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").Return(nil, errors.New("down"))

	svc := NewAvailabilityService(repo, fastRetry, nil)
	free, err := svc.DayHasFreeSlot(context.Background(), "2026-10-15")
	require.Error(t, err)
	assert.True(t, free, "failed reads report the day as available")
	repo.AssertNumberOfCalls(t, "ListSaltCaveByDate", 3)
}

func TestAvailability_MonthIsOneRangeQuery(t *testing.T) {
	repo := new(mockReservationRepo)
	var full []models.SaltCaveReservation
	for _, slot := range models.SlotTimes {
		full = append(full, models.SaltCaveReservation{Date: "2026-02-14", Time: slot})
	}
	repo.On("ListSaltCaveInRange", mock.Anything, "2026-02-01", "2026-02-28").Return(full, nil).Once()

	svc := NewAvailabilityService(repo, fastRetry, nil)
	lookup, err := svc.SaltCaveMonth(context.Background(), 2026, time.February)
	require.NoError(t, err)

	for d := 1; d <= 28; d++ {
		ok, err := lookup.DayAvailable(context.Background(), time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, d != 14, ok, "day %d", d)
	}
	repo.AssertExpectations(t)
}

func TestAvailability_RejectsBadDate(t *testing.T) {
	svc := NewAvailabilityService(new(mockReservationRepo), fastRetry, nil)
	_, err := svc.SaltCaveDay(context.Background(), "15.10.2026")
	assert.Error(t, err)
}

func TestSubmitSaltCave_InsertsPending(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").
		Return([]models.SaltCaveReservation{{Date: "2026-10-15", Time: "13:00:00"}}, nil)
	repo.On("CreateSaltCave", mock.Anything, mock.AnythingOfType("*models.SaltCaveReservation")).
		Return(func(_ context.Context, r *models.SaltCaveReservation) *models.SaltCaveReservation { return r }, nil)

	req := saltCaveRequest("14:00:00")
	req.Status = models.StatusConfirmed

	created, err := newBookingService(repo, NewLocalSlotLocker()).SubmitSaltCave(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "14:00", created.Time)
	assert.NotEqual(t, [16]byte{}, [16]byte(created.ID))
	repo.AssertNumberOfCalls(t, "CreateSaltCave", 1)
}

func TestSubmitSaltCave_TakenSlotSkipsInsert(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").
		Return([]models.SaltCaveReservation{{Date: "2026-10-15", Time: "14:00:00", Status: models.StatusCancelled}}, nil)

	_, err := newBookingService(repo, NewLocalSlotLocker()).SubmitSaltCave(context.Background(), saltCaveRequest("14:00"))
	assert.ErrorIs(t, err, models.ErrSlotTaken)
	repo.AssertNotCalled(t, "CreateSaltCave", mock.Anything, mock.Anything)
}

func TestSubmitSaltCave_WriteFailureIsNotRetried(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("ListSaltCaveByDate", mock.Anything, "2026-10-15").Return(nil, nil)
	repo.On("CreateSaltCave", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := newBookingService(repo, NewLocalSlotLocker()).SubmitSaltCave(context.Background(), saltCaveRequest("10:00"))
	require.Error(t, err)
	repo.AssertNumberOfCalls(t, "CreateSaltCave", 1)
}

func TestSubmitSaltCave_Invalid(t *testing.T) {
	repo := new(mockReservationRepo)
	svc := newBookingService(repo, NewLocalSlotLocker())

	req := saltCaveRequest("09:00")
	_, err := svc.SubmitSaltCave(context.Background(), req)
	assert.Error(t, err)

	req = saltCaveRequest("10:00")
	req.NumberOfPeople = 0
	_, err = svc.SubmitSaltCave(context.Background(), req)
	assert.Error(t, err)

	repo.AssertNotCalled(t, "CreateSaltCave", mock.Anything, mock.Anything)
}

// slotRepo keeps salt cave rows in memory so concurrent writers can race.
type slotRepo struct {
	mockReservationRepo
	mu   sync.Mutex
	rows []models.SaltCaveReservation
}

func (r *slotRepo) ListSaltCaveByDate(_ context.Context, date string) ([]models.SaltCaveReservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SaltCaveReservation
	for _, row := range r.rows {
		if row.Date == date {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *slotRepo) CreateSaltCave(_ context.Context, res *models.SaltCaveReservation) (*models.SaltCaveReservation, error) {
	time.Sleep(5 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *res)
	return res, nil
}

func TestSubmitSaltCave_ConcurrentSameSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &slotRepo{}
	svc := newBookingService(repo, NewRedisSlotLocker(client, time.Second))

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitSaltCave(context.Background(), saltCaveRequest("16:00"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, models.ErrSlotTaken)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, repo.rows, 1)
}

func TestRedisSlotLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	locker := NewRedisSlotLocker(client, time.Minute)
	release, ok, err := locker.Acquire(ctx, "2026-10-15", "14:00")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.Acquire(ctx, "2026-10-15", "14:00")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = locker.Acquire(ctx, "2026-10-15", "15:00")
	require.NoError(t, err)
	assert.True(t, ok)

	release()
	_, ok, err = locker.Acquire(ctx, "2026-10-15", "14:00")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalSlotLocker(t *testing.T) {
	locker := NewLocalSlotLocker()
	release, ok, _ := locker.Acquire(context.Background(), "2026-10-15", "10:00")
	require.True(t, ok)
	_, ok, _ = locker.Acquire(context.Background(), "2026-10-15", "10:00")
	assert.False(t, ok)
	release()
	release()
	_, ok, _ = locker.Acquire(context.Background(), "2026-10-15", "10:00")
	assert.True(t, ok)
}

func TestSubmitMotel(t *testing.T) {
	repo := new(mockReservationRepo)
	repo.On("CreateMotel", mock.Anything, mock.AnythingOfType("*models.MotelReservation")).
		Return(func(_ context.Context, r *models.MotelReservation) *models.MotelReservation { return r }, nil)
	svc := newBookingService(repo, nil)

	req := &models.MotelReservation{
		CheckIn: "2026-10-15", CheckOut: "2026-10-17", RoomType: "triple", NumberOfGuests: 3,
		Customer: models.Customer{CustomerName: "Jan", CustomerEmail: "jan@example.com", CustomerPhone: "1"},
	}
	created, err := svc.SubmitMotel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	bad := *req
	bad.CheckOut = "2026-10-15"
	_, err = svc.SubmitMotel(context.Background(), &bad)
	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "CreateMotel", 1)
}
