package routes

import (
	"github.com/gin-gonic/gin"

	couponControllers "github.com/hsddev/cake-store/controllers/coupon"
)

// SetupCouponRoutes registers coupon management, staff only.
func SetupCouponRoutes(v1 *gin.RouterGroup, d Deps, protect, staffOnly gin.HandlerFunc) {
	coupons := couponControllers.NewCoupons(d.Store.Coupons)

	couponGroup := v1.Group("/coupons")
	couponGroup.Use(protect, staffOnly)
	{
		couponGroup.GET("/", coupons.GetAll)
		couponGroup.GET("/:id", coupons.GetOne)
		couponGroup.POST("/", coupons.Create)
		couponGroup.PUT("/:id", coupons.Update)
		couponGroup.DELETE("/:id", coupons.Delete)
	}
}
