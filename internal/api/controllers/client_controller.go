package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type ClientController struct {
	clientService services.ClientServiceInterface
}

func NewClientController(clientService services.ClientServiceInterface) *ClientController {
	return &ClientController{
		clientService: clientService,
	}
}

// List godoc
// @Summary List clients
// @Description Clients of the caller's account; admins see every account
// @Tags Clients
// @Produce json
// @Param locale path string true "fr | en"
// @Param q query string false "Name, email or company substring"
// @Param sort query string false "id | last_name | company_name | created_at"
// @Param order query string false "asc | desc"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/clients [get]
func (p *ClientController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "q")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := p.clientService.List(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (p *ClientController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := p.clientService.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

func (p *ClientController) Create(c *gin.Context) {
	var req request_models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := p.clientService.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

func (p *ClientController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := p.clientService.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

func (p *ClientController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := p.clientService.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}
