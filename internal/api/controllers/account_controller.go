package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// List godoc
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Param locale path string true "fr | en"
// @Param q query string false "Name, email or company substring"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/accounts [get]
func (a *AccountController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "q")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := a.accountService.List(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (a *AccountController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := a.accountService.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

func (a *AccountController) Create(c *gin.Context) {
	var req request_models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := a.accountService.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

func (a *AccountController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := a.accountService.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

// Delete removes the account with all of its data.
func (a *AccountController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := a.accountService.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}
