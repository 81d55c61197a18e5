package api

import (
	"log"
	stdhttp "net/http"

	intconfig "loyaltyadmin/internal/config"
	h "loyaltyadmin/internal/http/handlers"
	"loyaltyadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Investors
		investors := api.Group("/investors")
		investors.GET("/:page", h.GetInvestors)
		investors.GET("/one/:id", h.GetInvestorByID)
		investors.POST("", h.CreateInvestor)
		investors.POST("/import", h.ImportInvestors)
		investors.PATCH("/:id", h.UpdateInvestor)
		investors.DELETE("/:id", h.DeleteInvestor)
		investors.DELETE("", h.DeleteInvestors)

		// Customers
		customers := api.Group("/customers")
		customers.GET("/:page", h.GetCustomers)
		customers.POST("", h.CreateCustomer)
		customers.POST("/import", h.ImportCustomers)
		customers.PATCH("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
		customers.DELETE("", h.DeleteCustomers)

		// Managers
		managers := api.Group("/managers")
		managers.GET("/:page", h.GetManagers)
		managers.POST("", h.CreateManager)
		managers.PATCH("/:id", h.UpdateManager)
		managers.DELETE("/:id", h.DeleteManager)
		managers.DELETE("", h.DeleteManagers)

		// Rewards
		rewards := api.Group("/rewards")
		rewards.GET("/:page", h.GetRewards)
		rewards.POST("", h.CreateReward)
		rewards.PATCH("/:id/approve", h.ApproveReward)
		rewards.PATCH("/:id/reject", h.RejectReward)
		rewards.DELETE("/:id", h.DeleteReward)
		rewards.DELETE("", h.DeleteRewards)

		// Invoices
		invoices := api.Group("/invoices")
		invoices.GET("/report", h.GetInvoiceReportPDF)
		invoices.GET("/:page", h.GetInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.PATCH("/:id", h.UpdateInvoice)
		invoices.DELETE("/:id", h.DeleteInvoice)
		invoices.DELETE("", h.DeleteInvoices)

		// Audit trail (read-only)
		logs := api.Group("/logs")
		logs.GET("/:page", h.GetAuditLogs)
	}

	h.SetRouter(r)
	return r
}
