package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/metrics"
	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc     *service.AuthService
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

func NewAuthHandler(svc *service.AuthService, m *metrics.Metrics, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m, log: log}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.Credentials true "Identifier and password"
// @Success 201 {object} model.RegisterResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	h.metrics.ObserveAuth("register", outcomeOf(err))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Infow("user registered", "identifier", user.Identifier)
	c.JSON(http.StatusCreated, model.RegisterResponse{
		Message:    "user registered",
		Identifier: user.Identifier,
	})
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.Credentials true "Identifier and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, hours, err := h.svc.Login(c.Request.Context(), req)
	h.metrics.ObserveAuth("login", outcomeOf(err))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		Token:          token,
		ExpiresInHours: hours,
	})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the presented token before it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthLogoutResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	err := h.svc.Logout(c.Request.Context(), getAuthToken(c), claims)
	h.metrics.ObserveAuth("logout", outcomeOf(err))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.AuthLogoutResponse{Status: "logged_out"})
}

// Me godoc
// @Summary Get current identity
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AuthMeResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, model.AuthMeResponse{
		Identifier: claims.Subject,
		ExpiresAt:  claims.ExpiresAt,
	})
}
