package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gogols/internal/booking"
	"github.com/joshua-takyi/gogols/internal/models"
)

type reservationRequest struct {
	Date     string `json:"date" binding:"required"`
	CheckOut string `json:"check_out"`
	Time     string `json:"time"`
	booking.Form
	TicketType string `json:"ticket_type"`
	RoomType   string `json:"room_type"`
	Confirm    bool   `json:"confirm"`
}

func (r *reservationRequest) option() string {
	if strings.TrimSpace(r.Form.Option) != "" {
		return r.Form.Option
	}
	if r.TicketType != "" {
		return r.TicketType
	}
	return r.RoomType
}

func Catalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"tickets": models.TicketTypes,
			"rooms":   models.RoomTypes,
			"slots":   models.SlotTimes,
		}, ""))
	}
}

// newFlow builds a loaded flow for date and, for the motel, checkOut.
func newFlow(c *gin.Context, resource models.Resource, store booking.Store, date, checkOut string) (*booking.Flow, bool) {
	d := time.Now().UTC()
	if date != "" {
		parsed, err := models.ParseDate(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return nil, false
		}
		d = parsed
	}

	f := booking.NewFlow(resource, store, d)
	if resource == models.ResourceMotel && checkOut != "" {
		co, err := models.ParseDate(checkOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return nil, false
		}
		if !co.After(f.Calendar.Selected()) {
			c.JSON(http.StatusBadRequest, models.CodedErrorResponse("validation", booking.MsgBadStay))
			return nil, false
		}
		f.SetCheckOut(co)
	}
	f.Load(c.Request.Context())
	return f, true
}

// Calendar returns the month view for the requested date. Read failures still
// answer 200 with every day available and the error message set.
func Calendar(resource models.Resource, store booking.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := newFlow(c, resource, store, c.Query("date"), c.Query("check_out"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(f.View(), ""))
	}
}

// DayChecker answers whether a salt cave day still has an open session.
type DayChecker interface {
	DayHasFreeSlot(ctx context.Context, date string) (bool, error)
}

// DayAvailability reports one day. A failed read answers available with the
// availability message set.
func DayAvailability(svc DayChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if _, err := models.ParseDate(date); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		free, err := svc.DayHasFreeSlot(c.Request.Context(), date)
		out := gin.H{"date": date, "available": free}
		if err != nil {
			out["error"] = booking.MsgAvailability
		}
		c.JSON(http.StatusOK, models.SuccessResponse(out, ""))
	}
}

// reviewRequest binds the body, loads availability, picks the slot and
// validates the form. It answers the request itself on failure.
func reviewRequest(c *gin.Context, resource models.Resource, store booking.Store) (*booking.Flow, *reservationRequest, bool) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload: "+err.Error()))
		return nil, nil, false
	}

	f, ok := newFlow(c, resource, store, req.Date, req.CheckOut)
	if !ok {
		return nil, nil, false
	}

	if resource == models.ResourceSaltCave && strings.TrimSpace(req.Time) != "" {
		if err := f.SelectSlot(req.Time); err != nil {
			switch {
			case errors.Is(err, booking.ErrSlotUnavailable):
				c.JSON(http.StatusConflict, models.CodedErrorResponse("slot_taken", booking.MsgSlotTaken))
			default:
				c.JSON(http.StatusBadRequest, models.CodedErrorResponse("validation", booking.MsgMissingTime))
			}
			return nil, nil, false
		}
	}

	f.Form = req.Form
	f.Form.Option = req.option()
	if _, err := f.Review(); err != nil {
		c.JSON(http.StatusBadRequest, models.CodedErrorResponse("validation", err.Error()))
		return nil, nil, false
	}
	return f, &req, true
}

// PreviewReservation returns the confirmation summary without writing anything.
func PreviewReservation(resource models.Resource, store booking.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, _, ok := reviewRequest(c, resource, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"summary":      f.Pending(),
			"availability": f.View(),
		}, ""))
	}
}

// CreateReservation writes the reservation once the customer has confirmed it.
func CreateReservation(resource models.Resource, store booking.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, req, ok := reviewRequest(c, resource, store)
		if !ok {
			return
		}
		if !req.Confirm {
			c.JSON(http.StatusBadRequest, models.ApiResponse{
				Success: false,
				Error:   "reservation must be confirmed",
				Code:    "confirmation_required",
				Data:    f.Pending(),
			})
			return
		}

		created, err := f.Confirm(c.Request.Context())
		if err != nil {
			switch {
			case errors.Is(err, models.ErrSlotTaken):
				c.JSON(http.StatusConflict, models.ApiResponse{
					Success: false,
					Error:   f.Err(),
					Code:    "slot_taken",
					Data:    f.View(),
				})
			case booking.IsValidation(err):
				c.JSON(http.StatusBadRequest, models.CodedErrorResponse("validation", err.Error()))
			default:
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, models.CodedErrorResponse("create_failed", f.Err()))
			}
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"reservation":  created,
			"availability": f.View(),
		}, "Reservation created successfully"))
	}
}
