package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hsddev/cake-store/models"
)

// Coupons adds the validity lookup the cart engine uses.
type Coupons struct {
	*Collection[models.Coupon]
}

// FindValid returns the coupon with the given name whose expiry is
// still in the future, NotFound otherwise.
func (c *Coupons) FindValid(ctx context.Context, name string, now time.Time) (*models.Coupon, error) {
	return c.FindOne(ctx, bson.M{
		"name":   name,
		"expire": bson.M{"$gt": now},
	})
}
