package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/mailer"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

// Deps carries everything the route handlers are wired with.
type Deps struct {
	Cfg   *config.Config
	Store *store.Store
	Log   *zap.Logger
	Mail  mailer.Mailer
}

// SetupRoutes is the single entry point that wires up every route
// group under /v1.
func SetupRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/v1")

	protect := middleware.Protect(d.Cfg, d.Store.Users)
	staffOnly := middleware.AllowedTo(models.RoleAdmin, models.RoleManager)
	adminOnly := middleware.AllowedTo(models.RoleAdmin)

	// Public auth routes (no middleware).
	SetupAuthRoutes(v1, d)

	// Catalog browsing is public; catalog writes are staff only.
	SetupCatalogRoutes(v1, d, protect, staffOnly)

	// Profile, wishlist and addresses (JWT protected).
	SetupUserRoutes(v1, d, protect, adminOnly)

	// Cart and checkout (JWT protected).
	SetupCartRoutes(v1, d, protect)
	SetupCouponRoutes(v1, d, protect, staffOnly)
	SetupOrderRoutes(v1, d, protect, staffOnly)
}
