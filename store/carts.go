package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
)

// Carts adds the per-user lookups the cart engine needs. A user owns at
// most one cart, keyed by the user field (unique index).
type Carts struct {
	*Collection[models.Cart]
}

func (c *Carts) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return c.FindOne(ctx, bson.M{"user": userID})
}

// Save replaces the cart document wholesale. The read-modify-write
// sequence around it is last-writer-wins for concurrent requests of the
// same user.
func (c *Carts) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		return httperr.Internal("store: %v", err)
	}
	return nil
}

// DeleteByUser removes the user's cart if one exists. Deleting an
// absent cart is not an error.
func (c *Carts) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return httperr.Internal("store: %v", err)
	}
	return nil
}
