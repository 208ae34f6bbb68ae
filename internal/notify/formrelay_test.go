package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saltCave() models.Reservation {
	return models.Reservation{
		Resource: models.ResourceSaltCave,
		SaltCave: &models.SaltCaveReservation{
			Date:           "2026-10-15",
			Time:           "14:00:00",
			TicketType:     "normal",
			NumberOfPeople: 2,
			Status:         models.StatusConfirmed,
			Customer:       models.Customer{CustomerName: "Jan", CustomerEmail: "jan@example.com", CustomerPhone: "1"},
		},
	}
}

func TestFormRelay_PostsMessage(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewFormRelay(srv.URL, srv.Client()).SendConfirmation(context.Background(), saltCave())
	require.NoError(t, err)

	assert.Equal(t, "jan@example.com", got.Email)
	assert.Contains(t, got.Subject, "Grota Solna")
	assert.Contains(t, got.Message, "15 października 2026")
	assert.Contains(t, got.Message, "Godzina: 14:00<")
	assert.Contains(t, got.Message, "Bilet Normalny")
}

func TestFormRelay_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"bad email"}`))
	}))
	defer srv.Close()

	err := NewFormRelay(srv.URL, srv.Client()).SendConfirmation(context.Background(), saltCave())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestConfirmationMessage_Motel(t *testing.T) {
	msg, err := ConfirmationMessage(models.Reservation{
		Resource: models.ResourceMotel,
		Motel: &models.MotelReservation{
			CheckIn: "2026-01-03", CheckOut: "2026-01-05", RoomType: "quad", NumberOfGuests: 4,
			Customer: models.Customer{CustomerEmail: "guest@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", msg.Email)
	assert.Contains(t, msg.Subject, "Pensjonat")
	assert.Contains(t, msg.Message, "3 stycznia 2026")
	assert.Contains(t, msg.Message, "Pokój 4-osobowy z łazienką")

	_, err = ConfirmationMessage(models.Reservation{})
	assert.Error(t, err)
}
