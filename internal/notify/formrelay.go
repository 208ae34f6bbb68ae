// Package notify sends reservation confirmation messages through a form relay.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joshua-takyi/gogols/internal/models"
)

const DefaultEndpoint = "https://formspree.io/f/xgegkbzv"

const (
	saltCaveAddress = "ul. Kamieńskiego 221/U1, 51-126 Wrocław"
	motelAddress    = "ul. Milicka 60, 51-126 Wrocław"
)

// Message is the JSON body accepted by the relay.
type Message struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Notifier interface {
	SendConfirmation(ctx context.Context, r models.Reservation) error
}

type FormRelay struct {
	endpoint string
	client   *http.Client
}

func NewFormRelay(endpoint string, client *http.Client) *FormRelay {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FormRelay{endpoint: endpoint, client: client}
}

func (f *FormRelay) SendConfirmation(ctx context.Context, r models.Reservation) error {
	msg, err := ConfirmationMessage(r)
	if err != nil {
		return err
	}
	return f.Post(ctx, msg)
}

// Post delivers one message. Any non-2xx answer is an error.
func (f *FormRelay) Post(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode relay message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

var polishMonths = [...]string{
	"stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

// FormatPolishDate renders "2026-10-15" as "15 października 2026".
func FormatPolishDate(date string) string {
	d, err := models.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d", d.Day(), polishMonths[d.Month()-1], d.Year())
}

// ConfirmationMessage builds the Polish confirmation mail for a reservation.
func ConfirmationMessage(r models.Reservation) (Message, error) {
	var b strings.Builder
	e := html.EscapeString

	switch {
	case r.SaltCave != nil:
		sc := r.SaltCave
		b.WriteString("<h2>Potwierdzenie rezerwacji w Grocie Solnej &amp; Saunie</h2>\n")
		b.WriteString("<p>Drogi Kliencie,</p>\n<p>Twoja rezerwacja została potwierdzona. Szczegóły:</p>\n<ul>\n")
		fmt.Fprintf(&b, "<li>Data: %s</li>\n", e(FormatPolishDate(sc.Date)))
		fmt.Fprintf(&b, "<li>Godzina: %s</li>\n", e(models.NormalizeSlot(sc.Time)))
		fmt.Fprintf(&b, "<li>Liczba osób: %d</li>\n", sc.NumberOfPeople)
		fmt.Fprintf(&b, "<li>Rodzaj biletu: %s</li>\n", e(optionName(models.ResourceSaltCave, sc.TicketType)))
		fmt.Fprintf(&b, "</ul>\n<p>Adres: %s</p>\n", saltCaveAddress)
		return Message{
			Email:   sc.CustomerEmail,
			Subject: "Potwierdzenie rezerwacji - Grota Solna & Sauna Gogol's",
			Message: b.String(),
		}, nil

	case r.Motel != nil:
		m := r.Motel
		b.WriteString("<h2>Potwierdzenie rezerwacji w Pensjonacie</h2>\n")
		b.WriteString("<p>Drogi Kliencie,</p>\n<p>Twoja rezerwacja została potwierdzona. Szczegóły:</p>\n<ul>\n")
		fmt.Fprintf(&b, "<li>Check-in: %s</li>\n", e(FormatPolishDate(m.CheckIn)))
		fmt.Fprintf(&b, "<li>Check-out: %s</li>\n", e(FormatPolishDate(m.CheckOut)))
		fmt.Fprintf(&b, "<li>Liczba gości: %d</li>\n", m.NumberOfGuests)
		fmt.Fprintf(&b, "<li>Typ pokoju: %s</li>\n", e(optionName(models.ResourceMotel, m.RoomType)))
		fmt.Fprintf(&b, "</ul>\n<p>Adres: %s</p>\n", motelAddress)
		return Message{
			Email:   m.CustomerEmail,
			Subject: "Potwierdzenie rezerwacji - Pensjonat Gogol's",
			Message: b.String(),
		}, nil
	}
	return Message{}, fmt.Errorf("reservation has no payload")
}

func optionName(r models.Resource, id string) string {
	if o, err := models.LookupOption(r, id); err == nil {
		return o.Name
	}
	return id
}
