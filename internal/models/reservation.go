package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Resource string

const (
	ResourceSaltCave Resource = "salt_cave"
	ResourceMotel    Resource = "motel"
)

const (
	SaltCaveTable = "salt_cave_reservations"
	MotelTable    = "motel_reservations"
)

var ErrUnknownResource = errors.New("unknown reservation resource")

// ParseResource accepts both the store spelling ("salt_cave") and the URL spelling ("salt-cave").
func ParseResource(s string) (Resource, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case string(ResourceSaltCave):
		return ResourceSaltCave, nil
	case string(ResourceMotel):
		return ResourceMotel, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

func (r Resource) Table() string {
	if r == ResourceSaltCave {
		return SaltCaveTable
	}
	return MotelTable
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

type Customer struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
}

type SaltCaveReservation struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	Date           string            `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time           string            `db:"time" json:"time" validate:"required"`
	TicketType     string            `db:"ticket_type" json:"ticket_type" validate:"required"`
	NumberOfPeople int               `db:"number_of_people" json:"number_of_people" validate:"min=1"`
	Status         ReservationStatus `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled"`
	Customer
}

type MotelReservation struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	CheckIn        string            `db:"check_in" json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut       string            `db:"check_out" json:"check_out" validate:"required,datetime=2006-01-02"`
	RoomType       string            `db:"room_type" json:"room_type" validate:"required"`
	NumberOfGuests int               `db:"number_of_guests" json:"number_of_guests" validate:"min=1"`
	Status         ReservationStatus `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled"`
	Customer
}

// Reservation is the resource-agnostic view used by the admin dashboard.
type Reservation struct {
	Resource Resource             `json:"resource"`
	SaltCave *SaltCaveReservation `json:"salt_cave,omitempty"`
	Motel    *MotelReservation    `json:"motel,omitempty"`
}

func (r Reservation) ID() uuid.UUID {
	if r.SaltCave != nil {
		return r.SaltCave.ID
	}
	if r.Motel != nil {
		return r.Motel.ID
	}
	return uuid.Nil
}

func (r Reservation) Status() ReservationStatus {
	if r.SaltCave != nil {
		return r.SaltCave.Status
	}
	if r.Motel != nil {
		return r.Motel.Status
	}
	return ""
}

func (r Reservation) Customer() Customer {
	if r.SaltCave != nil {
		return r.SaltCave.Customer
	}
	if r.Motel != nil {
		return r.Motel.Customer
	}
	return Customer{}
}

func (r Reservation) CreatedAt() time.Time {
	if r.SaltCave != nil {
		return r.SaltCave.CreatedAt
	}
	if r.Motel != nil {
		return r.Motel.CreatedAt
	}
	return time.Time{}
}

// sortTimeLayout is fixed width so keys compare in time order as strings.
const sortTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SortKey returns the value used when ordering reservations by field.
func (r Reservation) SortKey(field string) string {
	c := r.Customer()
	switch field {
	case "customer_name":
		return strings.ToLower(c.CustomerName)
	case "customer_email":
		return strings.ToLower(c.CustomerEmail)
	case "status":
		return string(r.Status())
	case "date", "check_in":
		if r.SaltCave != nil {
			return r.SaltCave.Date + " " + r.SaltCave.Time
		}
		if r.Motel != nil {
			return r.Motel.CheckIn
		}
	}
	return r.CreatedAt().UTC().Format(sortTimeLayout)
}

// SlotTimes are the hourly salt cave sessions, 10:00 through 20:00.
var SlotTimes = func() []string {
	out := make([]string, 0, 11)
	for hour := 10; hour <= 20; hour++ {
		out = append(out, fmt.Sprintf("%02d:00", hour))
	}
	return out
}()

var slotPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(:\d{2})?$`)

// NormalizeSlot turns store time values like "14:00:00" into the "14:00" slot label.
func NormalizeSlot(t string) string {
	t = strings.TrimSpace(t)
	m := slotPattern.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return hour + ":" + m[2]
}

func IsSlot(t string) bool {
	n := NormalizeSlot(t)
	for _, s := range SlotTimes {
		if s == n {
			return true
		}
	}
	return false
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
