package booking

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

// User-visible messages.
const (
	MsgMissingFields  = "Proszę wypełnić wszystkie pola formularza"
	MsgMissingTime    = "Proszę wybrać godzinę seansu"
	MsgSlotTaken      = "Wybrana godzina jest już zarezerwowana. Wybierz inną godzinę."
	MsgBadOption      = "Wybrano nieprawidłowy rodzaj biletu lub pokoju"
	MsgPartySize      = "Liczba osób musi być liczbą całkowitą większą od zera"
	MsgInvalidEmail   = "Proszę podać poprawny adres email"
	MsgBadStay        = "Data wyjazdu musi być późniejsza niż data przyjazdu"
	MsgAvailability   = "Nie udało się sprawdzić dostępności. Spróbuj ponownie później."
	MsgFetch          = "Nie udało się pobrać rezerwacji. Spróbuj ponownie później."
	MsgCreateFailed   = "Nie udało się utworzyć rezerwacji. Spróbuj ponownie później."
	MsgNothingPending = "Brak rezerwacji do potwierdzenia"
)

// ValidationError carries the message shown to the customer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// PartySize accepts a JSON number or a numeric string.
type PartySize string

func (p *PartySize) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = ""
		return nil
	}
	*p = PartySize(strings.Trim(s, `"`))
	return nil
}

// Int returns the party size, 1 when unset.
func (p PartySize) Int() (int, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, invalid(MsgPartySize)
	}
	return n, nil
}

// Form is the customer detail form shared by both resources.
type Form struct {
	Name      string    `json:"customer_name"`
	Email     string    `json:"customer_email"`
	Phone     string    `json:"customer_phone"`
	PartySize PartySize `json:"party_size"`
	Option    string    `json:"option"`
}

// Clear resets the customer fields after a successful booking. The chosen
// option stays, as on the site.
func (f *Form) Clear() {
	f.Name, f.Email, f.Phone = "", "", ""
	f.PartySize = ""
}

func (f Form) customer() models.Customer {
	return models.Customer{
		CustomerName:  strings.TrimSpace(f.Name),
		CustomerEmail: strings.TrimSpace(f.Email),
		CustomerPhone: strings.TrimSpace(f.Phone),
	}
}

// Stay is the date part of a booking: one day plus a slot for the salt cave,
// a check-in/check-out range for the motel.
type Stay struct {
	Date     time.Time
	CheckOut time.Time
	Time     string
}

// Validate checks the form against the chosen stay and builds the summary.
// Checks run in order and stop at the first failure.
func (f Form) Validate(resource models.Resource, stay Stay) (*Summary, error) {
	c := f.customer()
	if c.CustomerName == "" || c.CustomerEmail == "" || c.CustomerPhone == "" {
		return nil, invalid(MsgMissingFields)
	}
	if resource == models.ResourceSaltCave && strings.TrimSpace(stay.Time) == "" {
		return nil, invalid(MsgMissingTime)
	}
	if err := models.Validate.Var(c.CustomerEmail, "email"); err != nil {
		return nil, invalid(MsgInvalidEmail)
	}
	size, err := f.PartySize.Int()
	if err != nil {
		return nil, err
	}

	optionID := strings.TrimSpace(f.Option)
	if optionID == "" {
		optionID = models.DefaultOption(resource)
	}
	opt, err := models.LookupOption(resource, optionID)
	if err != nil {
		return nil, invalid(MsgBadOption)
	}

	s := &Summary{
		Resource:   resource,
		Date:       models.FormatDate(stay.Date),
		PartySize:  size,
		OptionID:   opt.ID,
		OptionName: opt.Name,
		Price:      opt.Price,
		Customer:   c,
	}
	switch resource {
	case models.ResourceSaltCave:
		if !models.IsSlot(stay.Time) {
			return nil, invalid(MsgMissingTime)
		}
		s.Time = models.NormalizeSlot(stay.Time)
	case models.ResourceMotel:
		if !stay.CheckOut.After(stay.Date) {
			return nil, invalid(MsgBadStay)
		}
		s.CheckOut = models.FormatDate(stay.CheckOut)
		s.Nights = int(stay.CheckOut.Sub(stay.Date).Hours() / 24)
	}
	return s, nil
}
