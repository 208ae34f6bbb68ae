package models

import (
	"errors"
	"fmt"
)

var ErrUnknownOption = errors.New("unknown ticket or room type")

// Option is a priced entry of a catalog. Prices are in PLN.
type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

var TicketTypes = []Option{
	{ID: "normal", Name: "Bilet Normalny", Price: 21},
	{ID: "reduced", Name: "Bilet Ulgowy", Price: 17},
	{ID: "normal-pass", Name: "Karnet Normalny", Price: 180},
	{ID: "reduced-pass", Name: "Karnet Ulgowy", Price: 140},
	{ID: "family-1-1", Name: "Karnet 1+1", Price: 288},
	{ID: "family-2-1", Name: "Karnet 2+1", Price: 450},
	{ID: "family-2-2", Name: "Karnet 2+2", Price: 576},
}

var RoomTypes = []Option{
	{ID: "single-shared", Name: "Pokój 1-osobowy z łazienką ogólną", Price: 90},
	{ID: "single-private", Name: "Pokój 1-osobowy z łazienką", Price: 120},
	{ID: "double-shared", Name: "Pokój 2-osobowy z łazienką ogólną", Price: 120},
	{ID: "double-private", Name: "Pokój 2-osobowy z łazienką", Price: 160},
	{ID: "triple", Name: "Pokój 3-osobowy z łazienką", Price: 210},
	{ID: "quad", Name: "Pokój 4-osobowy z łazienką", Price: 280},
}

func Catalog(r Resource) []Option {
	if r == ResourceSaltCave {
		return TicketTypes
	}
	return RoomTypes
}

// DefaultOption is preselected when a booking request names no option.
func DefaultOption(r Resource) string {
	return Catalog(r)[0].ID
}

func LookupOption(r Resource, id string) (Option, error) {
	for _, o := range Catalog(r) {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %q", ErrUnknownOption, id)
}

// PriceOf maps an option id through the catalog, 0 when unknown.
func PriceOf(r Resource, id string) int {
	o, err := LookupOption(r, id)
	if err != nil {
		return 0
	}
	return o.Price
}
