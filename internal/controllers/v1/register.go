// Package v1 implements the v1 HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/ledgerlight/backend/internal/config"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/store"
)

// Options carries the injected configuration for the API handlers.
type Options struct {
	Config config.Config
}

var options Options

// newStore returns a store on the current database connection. It is
// constructed per request since tests reconnect the database.
func newStore() *store.Store {
	return store.New(models.DB)
}

// Register registers all v1 routes with the RouterGroup that is passed.
func Register(group *gin.RouterGroup, opts Options) {
	options = opts

	group.GET("", GetV1)
	group.OPTIONS("", OptionsV1)
	group.DELETE("", Cleanup)

	RegisterTransactionRoutes(group.Group("/transactions"))
	RegisterCategoryRoutes(group.Group("/categories"))
	RegisterRenameRuleRoutes(group.Group("/rename-rules"))
	RegisterImportRoutes(group.Group("/import"))
	RegisterAnalyticsRoutes(group.Group("/analytics"))
}
