package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// RouterConfig holds the HTTP API settings
type RouterConfig struct {
	APIToken       string
	Production     bool
	AllowedOrigins []string // nil allows every origin
}

// NewRouter builds the HTTP API: gin routes wrapped in a CORS handler.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1", Auth(cfg.APIToken))
	{
		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id", h.GetSummary)
		api.DELETE("/sessions/:id", h.DeleteSession)

		api.POST("/sessions/:id/accounts", h.AddAccount)
		api.DELETE("/sessions/:id/accounts/:name", h.RemoveAccount)
		api.GET("/sessions/:id/accounts/:name/history", h.GetAccountHistory)
		api.GET("/sessions/:id/accounts/:name/yearly", h.GetYearlyBalances)
		api.POST("/sessions/:id/accounts/:name/deposit", h.Deposit)
		api.POST("/sessions/:id/accounts/:name/withdraw", h.Withdraw)

		api.GET("/sessions/:id/rules", h.ListRules)
		api.POST("/sessions/:id/rules/contributions", h.AddContributionRule)
		api.PUT("/sessions/:id/rules/contributions/:index", h.UpdateContributionRule)
		api.DELETE("/sessions/:id/rules/contributions/:index", h.RemoveContributionRule)
		api.POST("/sessions/:id/rules/withdrawals", h.AddWithdrawalRule)
		api.PUT("/sessions/:id/rules/withdrawals/:index", h.UpdateWithdrawalRule)
		api.DELETE("/sessions/:id/rules/withdrawals/:index", h.RemoveWithdrawalRule)

		api.POST("/sessions/:id/advance", h.AdvanceOneMonth)
		api.POST("/sessions/:id/project", h.Project)
		api.GET("/sessions/:id/balances", h.GetBalances)
	}

	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)
}
