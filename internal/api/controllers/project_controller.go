package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
}

func NewProjectController(projectService services.ProjectServiceInterface) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param locale path string true "fr | en"
// @Param client_id query int false "Only projects of this client"
// @Param status query string false "prospect | quote_sent | quote_accepted | started | completed | cancelled"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/projects [get]
func (p *ProjectController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "client_id", "status")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := p.projectService.List(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (p *ProjectController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := p.projectService.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

func (p *ProjectController) Create(c *gin.Context) {
	var req request_models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := p.projectService.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

func (p *ProjectController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := p.projectService.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

func (p *ProjectController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := p.projectService.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}
