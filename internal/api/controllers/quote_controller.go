package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type QuoteController struct {
	quoteService services.QuoteServiceInterface
}

func NewQuoteController(quoteService services.QuoteServiceInterface) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
	}
}

// List godoc
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Param locale path string true "fr | en"
// @Param project_id query int false "Only quotes of this project"
// @Param status query string false "sent | accepted | rejected"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/quotes [get]
func (q *QuoteController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "project_id", "status")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := q.quoteService.List(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (q *QuoteController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := q.quoteService.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

// Create godoc
// @Summary Create a quote
// @Description Expiry defaults to issue date + 30 days; a prospect project moves to quote_sent
// @Tags Quotes
// @Accept json
// @Produce json
// @Param locale path string true "fr | en"
// @Param request body request_models.QuoteRequest true "Quote payload, lines optional"
// @Success 201 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/quotes [post]
func (q *QuoteController) Create(c *gin.Context) {
	var req request_models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := q.quoteService.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

func (q *QuoteController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := q.quoteService.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

func (q *QuoteController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := q.quoteService.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}

// ConvertToInvoice godoc
// @Summary Turn an accepted quote into a draft invoice
// @Tags Quotes
// @Produce json
// @Param locale path string true "fr | en"
// @Param id path int true "Quote id"
// @Success 201 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/quotes/{id}/invoice [post]
func (q *QuoteController) ConvertToInvoice(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := q.quoteService.ConvertToInvoice(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyQuoteConverted)
}
