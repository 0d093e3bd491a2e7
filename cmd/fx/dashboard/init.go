package dashboard

import (
	"go.uber.org/fx"

	"facturo/internal/api/controllers"
	"facturo/internal/services"
)

var Module = fx.Provide(
	services.NewDashboardService,
	controllers.NewDashboardController,
)
