package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gogols/internal/helpers"
	"github.com/joshua-takyi/gogols/internal/middleware"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/joshua-takyi/gogols/internal/services"
)

// Login checks admin credentials and sets the session cookie.
func Login(a *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		sess, err := a.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if statusFor(err) == http.StatusUnauthorized {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
				return
			}
			respondError(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			middleware.SessionCookie,
			sess.Token,
			int(a.TTL().Seconds()),
			"/",
			"", // let Gin pick current domain
			secureCookies,
			true,
		)
		c.JSON(http.StatusOK, models.SuccessResponse(sess, "Logged in"))
	}
}

// Logout revokes the current session and clears the cookie.
func Logout(a *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.AdminClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}
		if err := a.Logout(c.Request.Context(), claims); err != nil {
			respondError(c, err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookies, true)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out"))
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.AdminClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(helpers.AdminIdentity{
			ID:       claims.UserID(),
			Email:    claims.Email,
			FullName: claims.FullName,
			Role:     claims.Role,
		}, ""))
	}
}
