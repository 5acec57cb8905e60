package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/hsddev/cake-store/controllers/cart"
)

// SetupCartRoutes registers the logged-in user's shopping cart.
func SetupCartRoutes(v1 *gin.RouterGroup, d Deps, protect gin.HandlerFunc) {
	engine := cartControllers.NewEngine(d.Store.Products, d.Store.Carts, d.Store.Coupons)

	cartGroup := v1.Group("/cart")
	cartGroup.Use(protect)
	{
		cartGroup.GET("/", cartControllers.GetLoggedUserCart(d.Store.Carts))
		cartGroup.POST("/", cartControllers.AddProductToCart(engine))
		cartGroup.DELETE("/", cartControllers.ClearCart(engine))
		cartGroup.PUT("/applyCoupon", cartControllers.ApplyCoupon(engine))
		cartGroup.PUT("/items/:itemId", cartControllers.UpdateCartItemQuantity(engine))
		cartGroup.DELETE("/items/:itemId", cartControllers.RemoveItemFromCart(engine))
	}
}
