package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gogols/internal/middleware"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/services"
)

func ListContent(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.ListContent(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(out, len(out)))
	}
}

func UpdateContent(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var update models.ContentUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload: "+err.Error()))
			return
		}

		var adminID string
		if claims, ok := middleware.AdminClaims(c); ok {
			adminID = claims.UserID()
		}
		updated, err := s.UpdateContent(c.Request.Context(), adminID, id, update)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Content updated"))
	}
}

func ListImages(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.ListImages(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(out, len(out)))
	}
}

func UploadImage(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.ImageUpload
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload: "+err.Error()))
			return
		}
		img, err := s.UploadImage(c.Request.Context(), actor(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(img, "Image uploaded"))
	}
}

func SetImageActive(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			IsActive *bool `json:"is_active" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload: "+err.Error()))
			return
		}
		img, err := s.SetImageActive(c.Request.Context(), actor(c), id, *req.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(img, "Image updated"))
	}
}

func Stats(s *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(out, len(out)))
	}
}
