package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumentor/edumentor-api/internal/models"
	"github.com/edumentor/edumentor-api/internal/service"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/response"
)

// AuthHandler wires registration, login and the notification feed to HTTP
// routes.
type AuthHandler struct {
	auth          *service.AuthService
	notifications *service.NotificationService
}

// NewAuthHandler constructs a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, notifications *service.NotificationService) *AuthHandler {
	return &AuthHandler{auth: auth, notifications: notifications}
}

// Register godoc
// @Summary Register a user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}
	res, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Login godoc
// @Summary Authenticate a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Notifications godoc
// @Summary List a user's notifications
// @Tags Auth
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} models.Notification
// @Router /auth/notifications/{user_id} [get]
func (h *AuthHandler) Notifications(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	notifications, err := h.notifications.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notifications)
}
