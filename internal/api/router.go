// Package api wires controllers and middleware into the gin engine.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/internal/api/controllers"
	"facturo/internal/metrics"
	"facturo/internal/repositories"
	mem "facturo/pkg/memcache"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
)

type RouterParams struct {
	fx.In

	Auth         *controllers.AuthController
	Accounts     *controllers.AccountController
	Clients      *controllers.ClientController
	Projects     *controllers.ProjectController
	Quotes       *controllers.QuoteController
	QuoteLines   *controllers.QuoteLineController
	Invoices     *controllers.InvoiceController
	InvoiceLines *controllers.InvoiceLineController
	Dashboard    *controllers.DashboardController

	Tokens        *utils.TokenManager
	Revoked       mem.RevocationStore
	AccountRepo   repositories.AccountRepository
	Limiter       *middleware.RateLimiter
	Metrics       *metrics.Metrics
	Log           *zap.Logger
	DefaultLocale language.Tag
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log.Named("http")))
	r.Use(middleware.Metrics(p.Metrics))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	root := r.Group("/:locale", middleware.Locale(p.DefaultLocale))
	auth := middleware.JWTAuthMiddleware(p.Tokens, p.Revoked, p.AccountRepo)
	limited := p.Limiter.Handler()

	authGroup := root.Group("/auth")
	authGroup.POST("/register", limited, p.Auth.Register)
	authGroup.POST("/login", limited, p.Auth.Login)
	authGroup.POST("/forgot-password", limited, p.Auth.ForgotPassword)
	authGroup.POST("/reset-password", limited, p.Auth.ResetPassword)
	authGroup.POST("/verify-reset-token", p.Auth.VerifyResetToken)
	authGroup.GET("/check-email", p.Auth.CheckEmail)
	authGroup.POST("/logout", auth, p.Auth.Logout)
	authGroup.GET("/me", auth, p.Auth.Me)

	private := root.Group("", auth)

	accounts := private.Group("/accounts")
	accounts.GET("", middleware.RequireAdmin(), p.Accounts.List)
	accounts.POST("", middleware.RequireAdmin(), p.Accounts.Create)
	accounts.GET("/:id", p.Accounts.Get)
	accounts.PUT("/:id", p.Accounts.Update)
	accounts.DELETE("/:id", p.Accounts.Delete)

	clients := private.Group("/clients")
	clients.GET("", p.Clients.List)
	clients.POST("", p.Clients.Create)
	clients.GET("/:id", p.Clients.Get)
	clients.PUT("/:id", p.Clients.Update)
	clients.DELETE("/:id", p.Clients.Delete)

	projects := private.Group("/projects")
	projects.GET("", p.Projects.List)
	projects.POST("", p.Projects.Create)
	projects.GET("/:id", p.Projects.Get)
	projects.PUT("/:id", p.Projects.Update)
	projects.DELETE("/:id", p.Projects.Delete)

	quotes := private.Group("/quotes")
	quotes.GET("", p.Quotes.List)
	quotes.POST("", p.Quotes.Create)
	quotes.GET("/:id", p.Quotes.Get)
	quotes.PUT("/:id", p.Quotes.Update)
	quotes.DELETE("/:id", p.Quotes.Delete)
	quotes.POST("/:id/invoice", p.Quotes.ConvertToInvoice)

	quoteLines := private.Group("/quote-lines")
	quoteLines.GET("", p.QuoteLines.List)
	quoteLines.POST("", p.QuoteLines.Create)
	quoteLines.GET("/:id", p.QuoteLines.Get)
	quoteLines.PUT("/:id", p.QuoteLines.Update)
	quoteLines.DELETE("/:id", p.QuoteLines.Delete)

	invoices := private.Group("/invoices")
	invoices.GET("", p.Invoices.List)
	invoices.POST("", p.Invoices.Create)
	invoices.GET("/:id", p.Invoices.Get)
	invoices.PUT("/:id", p.Invoices.Update)
	invoices.DELETE("/:id", p.Invoices.Delete)

	invoiceLines := private.Group("/invoice-lines")
	invoiceLines.GET("", p.InvoiceLines.List)
	invoiceLines.POST("", p.InvoiceLines.Create)
	invoiceLines.GET("/:id", p.InvoiceLines.Get)
	invoiceLines.PUT("/:id", p.InvoiceLines.Update)
	invoiceLines.DELETE("/:id", p.InvoiceLines.Delete)

	private.GET("/dashboard", p.Dashboard.GetDashboard)
}
