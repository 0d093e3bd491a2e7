package controllers_fx

import (
	"go.uber.org/fx"

	"facturo/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewClientController),
	fx.Provide(controllers.NewProjectController),
	fx.Provide(controllers.NewQuoteController),
	fx.Provide(controllers.NewQuoteLineController),
	fx.Provide(controllers.NewInvoiceController),
	fx.Provide(controllers.NewInvoiceLineController),
)
