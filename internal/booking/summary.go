package booking

import (
	"github.com/joshua-takyi/gogols/internal/models"
)

// Summary is what the customer confirms before anything is written.
type Summary struct {
	Resource   models.Resource `json:"resource"`
	Date       string          `json:"date"`
	CheckOut   string          `json:"check_out,omitempty"`
	Nights     int             `json:"nights,omitempty"`
	Time       string          `json:"time,omitempty"`
	PartySize  int             `json:"party_size"`
	OptionID   string          `json:"option_id"`
	OptionName string          `json:"option_name"`
	Price      int             `json:"price"`
	Customer   models.Customer `json:"customer"`
}

func (s *Summary) SaltCave() *models.SaltCaveReservation {
	return &models.SaltCaveReservation{
		Date:           s.Date,
		Time:           s.Time,
		TicketType:     s.OptionID,
		NumberOfPeople: s.PartySize,
		Status:         models.StatusPending,
		Customer:       s.Customer,
	}
}

func (s *Summary) Motel() *models.MotelReservation {
	return &models.MotelReservation{
		CheckIn:        s.Date,
		CheckOut:       s.CheckOut,
		RoomType:       s.OptionID,
		NumberOfGuests: s.PartySize,
		Status:         models.StatusPending,
		Customer:       s.Customer,
	}
}
