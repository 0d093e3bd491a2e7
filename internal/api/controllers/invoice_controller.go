package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type InvoiceController struct {
	invoiceService services.InvoiceServiceInterface
}

func NewInvoiceController(invoiceService services.InvoiceServiceInterface) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

// List godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param locale path string true "fr | en"
// @Param project_id query int false "Only invoices of this project"
// @Param status query string false "draft | issued | sent | paid"
// @Param overdue query bool false "Only sent invoices past their due date"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/invoices [get]
func (i *InvoiceController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "project_id", "status", "overdue")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := i.invoiceService.List(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (i *InvoiceController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := i.invoiceService.Get(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

func (i *InvoiceController) Create(c *gin.Context) {
	var req request_models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := i.invoiceService.Create(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

// Update replaces the invoice; marking it paid without a payment date uses today.
func (i *InvoiceController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := i.invoiceService.Update(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

func (i *InvoiceController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := i.invoiceService.Delete(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}
