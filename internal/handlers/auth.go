package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/api/internal/middleware"
	"inkwell/api/internal/models"
	"inkwell/api/internal/service"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ImageURL:  user.ImageURL,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
		default:
			h.log.Error().Err(err).Msg("register failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	h.setSessionCookie(c, user)
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_attempts"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		default:
			h.log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		}
		return
	}

	h.setSessionCookie(c, user)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h HandlerSet) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.Security.CookieName, "-deleted-", -1, "/", "", h.cfg.Security.CookieSecure, true)
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h HandlerSet) setSessionCookie(c *gin.Context, user models.User) {
	token := h.sessions.Issue(user)
	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(h.cfg.Security.CookieName, token, maxAge, "/", "", h.cfg.Security.CookieSecure, true)
}
