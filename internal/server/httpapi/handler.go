// Package httpapi is the thin request layer over the authentication service:
// it parses JSON bodies into typed values, calls the service, and maps typed
// errors to status codes. No business logic lives here.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akimovdo/accountd/internal/common"
	"github.com/akimovdo/accountd/internal/logging"
	"github.com/akimovdo/accountd/internal/server/services"
)

type Handler struct {
	auth   *services.AuthService
	logger logging.Logger
}

func NewHandler(auth *services.AuthService, logger logging.Logger) *Handler {
	return &Handler{auth: auth, logger: logger.With("module", "httpapi")}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/register", h.register)
	r.POST("/api/verify", h.verify)
	r.POST("/api/login", h.login)
	r.GET("/api/session", h.checkSession)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)

	var invalid *common.InvalidInputError
	var delivery *common.DeliveryError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"status": "registered"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "field": invalid.Field})
	case errors.Is(err, common.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
	case errors.As(err, &delivery):
		// the account was created; only the email did not go out
		c.JSON(http.StatusCreated, gin.H{"status": "registered", "warning": "verification email delivery failed"})
	default:
		h.logger.Error(c.Request.Context(), "registration failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"verificationCode"`
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ok, err := h.auth.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.logger.Error(c.Request.Context(), "verification failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "not verified"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": req.Email})
}

func (h *Handler) checkSession(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	c.JSON(http.StatusOK, gin.H{"valid": h.auth.CheckSession(email, token)})
}
