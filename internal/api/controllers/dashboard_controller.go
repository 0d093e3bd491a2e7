package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Paid, outstanding and overdue amounts, revenue ceiling and charges, monthly revenue series and status counts for the caller's account
// @Tags Dashboard
// @Produce json
// @Param locale path string true "fr | en"
// @Param year query int false "Calendar year (default: current year)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /{locale}/dashboard [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			utils.HandleServiceError(c, utils.ErrInvalidInput)
			return
		}
		year = y
	}

	report, err := p.dashboardService.BuildDashboard(c.Request.Context(), middleware.ScopeFrom(c).AccountID, year)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, i18n.KeyDashboardFetched)
}
