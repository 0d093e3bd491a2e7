package controllers

import (
	"github.com/gin-gonic/gin"

	"facturo/internal/models/request_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

// InvoiceLineController serves /invoice-lines; access follows the parent invoice.
type InvoiceLineController struct {
	invoiceService services.InvoiceServiceInterface
}

func NewInvoiceLineController(invoiceService services.InvoiceServiceInterface) *InvoiceLineController {
	return &InvoiceLineController{
		invoiceService: invoiceService,
	}
}

func (q *InvoiceLineController) List(c *gin.Context) {
	params, err := utils.ParseListParams(c, "invoice_id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := q.invoiceService.ListLines(c.Request.Context(), middleware.ScopeFrom(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, i18n.KeyFetched)
}

func (q *InvoiceLineController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out, err := q.invoiceService.GetLine(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyFetched)
}

func (q *InvoiceLineController) Create(c *gin.Context) {
	var req request_models.InvoiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := q.invoiceService.CreateLine(c.Request.Context(), middleware.ScopeFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, i18n.KeyCreated)
}

func (q *InvoiceLineController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	var req request_models.InvoiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	out, err := q.invoiceService.UpdateLine(c.Request.Context(), middleware.ScopeFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, i18n.KeyUpdated)
}

func (q *InvoiceLineController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := q.invoiceService.DeleteLine(c.Request.Context(), middleware.ScopeFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, i18n.KeyDeleted)
}
