package crm_fx

import (
	"go.uber.org/fx"

	"facturo/internal/services"
)

var Module = fx.Provide(
	services.NewClientService,
	services.NewProjectService,
)
