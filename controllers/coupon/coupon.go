// Package couponControllers manages the discount coupons redeemed at
// the cart.
package couponControllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

type Coupons struct {
	GetAll gin.HandlerFunc
	GetOne gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

func NewCoupons(st *store.Coupons) Coupons {
	opts := crud.Options[models.Coupon]{
		SearchFields: []string{"name"},
		Prepare: func(c *gin.Context, coupon *models.Coupon) error {
			if coupon.Name == "" {
				return httperr.BadRequest("coupon name is required")
			}
			if coupon.Discount <= 0 || coupon.Discount > 100 {
				return httperr.BadRequest("coupon discount must be a percentage between 0 and 100")
			}
			if coupon.Expire.IsZero() {
				return httperr.BadRequest("coupon expiry date is required")
			}
			coupon.ID = primitive.NilObjectID
			now := time.Now()
			coupon.CreatedAt = now
			coupon.UpdatedAt = now
			return nil
		},
		PreparePatch: func(c *gin.Context, patch bson.M) error {
			if discount, ok := patch["discount"].(float64); ok {
				if discount <= 0 || discount > 100 {
					return httperr.BadRequest("coupon discount must be a percentage between 0 and 100")
				}
			}
			return nil
		},
	}
	return Coupons{
		GetAll: crud.GetAll[models.Coupon](st, opts),
		GetOne: crud.GetOne[models.Coupon](st, opts),
		Create: crud.CreateOne[models.Coupon](st, opts),
		Update: crud.UpdateOne[models.Coupon](st, opts),
		Delete: crud.DeleteOne[models.Coupon](st),
	}
}
