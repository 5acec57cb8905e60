package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hsddev/cake-store/controllers/crud"
	userControllers "github.com/hsddev/cake-store/controllers/user"
	"github.com/hsddev/cake-store/models"
)

// SetupUserRoutes registers account management, wishlist and address
// endpoints. The admin user directory requires the admin role.
func SetupUserRoutes(v1 *gin.RouterGroup, d Deps, protect, adminOnly gin.HandlerFunc) {
	userOpts := crud.Options[models.User]{
		SearchFields: []string{"name", "email"},
		Prepare:      userControllers.PrepareCreate,
	}

	userGroup := v1.Group("/users")
	userGroup.Use(protect)
	{
		// Logged-in user self service. Registered before the :id
		// routes so the admin directory cannot shadow them.
		userGroup.GET("/getMe", userControllers.GetMe())
		userGroup.PUT("/updateMe", userControllers.UpdateMe(d.Store.Users))
		userGroup.PUT("/changeMyPassword", userControllers.ChangeMyPassword(d.Cfg, d.Store.Users))
		userGroup.DELETE("/deleteMe", userControllers.DeactivateMe(d.Store.Users))

		// Admin user directory.
		userGroup.GET("/", adminOnly, crud.GetAll(d.Store.Users, userOpts))
		userGroup.GET("/:id", adminOnly, crud.GetOne(d.Store.Users, userOpts))
		userGroup.POST("/", adminOnly, crud.CreateOne(d.Store.Users, userOpts))
		userGroup.PUT("/:id", adminOnly, userControllers.UpdateUser(d.Store.Users))
		userGroup.PUT("/:id/password", adminOnly, userControllers.UpdateUserPassword(d.Store.Users))
		userGroup.DELETE("/:id", adminOnly, crud.DeleteOne[models.User](d.Store.Users))
	}

	wishlistGroup := v1.Group("/wishlist")
	wishlistGroup.Use(protect)
	{
		wishlistGroup.GET("/", userControllers.GetLoggedUserWishlist(d.Store.Products))
		wishlistGroup.POST("/", userControllers.AddProductToWishlist(d.Store.Users))
		wishlistGroup.DELETE("/:productId", userControllers.RemoveProductFromWishlist(d.Store.Users))
	}

	addressGroup := v1.Group("/addresses")
	addressGroup.Use(protect)
	{
		addressGroup.GET("/", userControllers.GetLoggedUserAddresses())
		addressGroup.POST("/", userControllers.AddAddress(d.Store.Users))
		addressGroup.DELETE("/:addressId", userControllers.RemoveAddress(d.Store.Users))
	}
}
