package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hsddev/cake-store/controllers/crud"
	orderControllers "github.com/hsddev/cake-store/controllers/order"
	"github.com/hsddev/cake-store/models"
)

// SetupOrderRoutes registers checkout and order tracking. The
// websocket feed pushes freshly created orders to connected staff
// dashboards.
func SetupOrderRoutes(v1 *gin.RouterGroup, d Deps, protect, staffOnly gin.HandlerFunc) {
	flow := orderControllers.NewFlow(d.Store.Carts, d.Store.Orders, d.Store.Products, d.Log)
	hub := orderControllers.NewHub(d.Log)

	orderOpts := crud.Options[models.Order]{
		Scope: orderControllers.OrderScope,
	}

	orderGroup := v1.Group("/orders")
	orderGroup.Use(protect)
	{
		orderGroup.GET("/", crud.GetAll(d.Store.Orders, orderOpts))
		orderGroup.GET("/ws", staffOnly, hub.Handler())
		orderGroup.GET("/:id", crud.GetOne(d.Store.Orders, orderOpts))
		orderGroup.POST("/:id", orderControllers.CreateCashOrder(flow, hub))
		orderGroup.PUT("/:id/pay", staffOnly, orderControllers.UpdateOrderToPaid(flow))
		orderGroup.PUT("/:id/deliver", staffOnly, orderControllers.UpdateOrderToDelivered(flow))
	}
}
