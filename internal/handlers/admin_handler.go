package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gogols/internal/middleware"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/services"
)

func actor(c *gin.Context) string {
	if claims, ok := middleware.AdminClaims(c); ok {
		return claims.Email
	}
	return ""
}

func ListReservations(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := resourceParam(c)
		if !ok {
			return
		}
		q := services.ListQuery{
			Search: c.Query("q"),
			Status: models.ReservationStatus(c.Query("status")),
			Sort:   c.Query("sort"),
			Dir:    c.Query("dir"),
		}
		out, err := a.ListReservations(c.Request.Context(), resource, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(out, len(out)))
	}
}

func ChangeReservationStatus(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := resourceParam(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			Status models.ReservationStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload: "+err.Error()))
			return
		}

		updated, err := a.ChangeStatus(c.Request.Context(), actor(c), resource, id, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Reservation status updated"))
	}
}

func DeleteReservation(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := resourceParam(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := a.DeleteReservation(c.Request.Context(), actor(c), resource, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Reservation deleted"))
	}
}

func ListAudit(a *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
		if err != nil || limit <= 0 || limit > 500 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}
		entries, err := a.ListAudit(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(entries, len(entries)))
	}
}
