package handler

import (
	"net/http"
	"strconv"

	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/middleware"
	"github.com/notemind/notemind/internal/service"
	"github.com/notemind/notemind/pkg/logger"
	"github.com/notemind/notemind/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the account endpoints. Token-bearing responses also set
// the session cookie so browser clients authenticate without storing the
// token themselves.
type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge int
	cookieSecure bool
}

func NewAuthHandler(authService *service.AuthService, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(constants.CookieToken, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieToken, "", -1, "/", "", h.cookieSecure, true)
}

// Register creates an account and opens a session
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logger.LogAuth(req.Email, "register", false, zap.Error(err))
		respondError(c, err)
		return
	}

	logger.LogAuth(strconv.FormatUint(uint64(response.User.ID), 10), "register", true)

	h.setSessionCookie(c, response.Token)
	c.JSON(http.StatusCreated, response)
}

// Login authenticates an account and opens a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.LogAuth(req.Email, "login", false)
		respondError(c, err)
		return
	}

	logger.LogAuth(strconv.FormatUint(uint64(response.User.ID), 10), "login", true)

	h.setSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// Logout clears the session cookie. The bearer token itself stays valid until
// expiry; logout is a client-side operation.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// Me returns the current user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authService.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(profile))
}

// UpdateDetails updates the current user's name, email or avatar
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	profile, err := h.authService.UpdateDetails(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(profile))
}

// UpdatePassword changes the password after verifying the current one and
// rotates the session.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	userID := middleware.CurrentUserID(c)
	response, err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		logger.LogAuth(strconv.FormatUint(uint64(userID), 10), "update_password", false)
		respondError(c, err)
		return
	}

	logger.LogAuth(strconv.FormatUint(uint64(userID), 10), "update_password", true)

	h.setSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// ForgotPassword issues a reset token for the account
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	resetToken, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		logger.LogAuth(req.Email, "forgot_password", false)
		respondError(c, err)
		return
	}

	logger.LogAuth(req.Email, "forgot_password", true)

	c.JSON(http.StatusOK, dto.ForgotPasswordResponse{
		Success:    true,
		Message:    "Reset token issued",
		ResetToken: resetToken,
	})
}

// ResetPassword consumes a reset token and opens a session with the new
// password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	resetToken := c.Param("resettoken")
	response, err := h.authService.ResetPassword(c.Request.Context(), resetToken, req.Password)
	if err != nil {
		logger.LogAuth("unknown", "reset_password", false)
		respondError(c, err)
		return
	}

	logger.LogAuth(strconv.FormatUint(uint64(response.User.ID), 10), "reset_password", true)

	h.setSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// respondError maps a service error to its HTTP status and standard body.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.GetLogger().Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, constants.BuildErrorResponse(constants.MsgInternalError, nil))
		return
	}
	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}
