package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bkpsdm/asn-monitor-api/internal/service"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
	"github.com/bkpsdm/asn-monitor-api/pkg/response"
)

// AuthHandler serves the administrator login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Administrator login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body service.LoginRequest true "Credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	resp, err := h.auth.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}
