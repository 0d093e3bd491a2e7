package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param locale path string true "fr | en"
// @Param request body request_models.RegisterRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /{locale}/auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := a.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, i18n.KeyRegistered)
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate with email and password and return a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param locale path string true "fr | en"
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /{locale}/auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, i18n.KeyLoggedIn)
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags Auth
// @Produce json
// @Param locale path string true "fr | en"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/auth/logout [post]
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.authService.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyLoggedOut)
}

func (a *AuthController) Me(c *gin.Context) {
	out, err := a.authService.Me(c.Request.Context(), middleware.ScopeFrom(c).AccountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

// CheckEmail godoc
// @Summary Tell whether an email is registered
// @Tags Auth
// @Produce json
// @Param locale path string true "fr | en"
// @Param email query string true "Email to look up"
// @Success 200 {object} utils.APIResponse
// @Router /{locale}/auth/check-email [get]
func (a *AuthController) CheckEmail(c *gin.Context) {
	var req request_models.CheckEmailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	exists, err := a.authService.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.EmailCheckResponse{Exists: exists}, i18n.KeyEmailChecked)
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a reset link when the email exists; the answer is the same either way
// @Tags Auth
// @Accept json
// @Produce json
// @Param locale path string true "fr | en"
// @Param request body request_models.ForgotPasswordRequest true "Forgot password payload"
// @Success 200 {object} utils.APIResponse
// @Router /{locale}/auth/forgot-password [post]
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyResetLinkSent)
}

func (a *AuthController) VerifyResetToken(c *gin.Context) {
	var req request_models.VerifyResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.authService.VerifyResetToken(c.Request.Context(), req.Token); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp.ResetTokenStatusResponse{Valid: true}, i18n.KeyResetTokenValid)
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param locale path string true "fr | en"
// @Param request body request_models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /{locale}/auth/reset-password [post]
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.authService.ResetPassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyPasswordReset)
}
