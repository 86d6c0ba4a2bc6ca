package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// AuthHandler processes registration, login and profile lookups.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "malformed registration payload")
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			respondMessage(c, http.StatusBadRequest, "invalid credentials")
			return
		}
		respondError(c, h.logger, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "user registered",
		Token:   token,
		User:    toUserResponse(*user),
	})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "malformed login payload")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			respondMessage(c, http.StatusUnauthorized, "unknown user")
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*user))
}
