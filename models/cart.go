package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a cart. Price is snapshotted when the item is
// added and never re-read from the product afterwards.
type CartItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
	Price    float64            `bson:"price" json:"price"`
}

// Cart holds the selected products of exactly one user. TotalPrice is
// denormalized and kept in sync with the items by the cart engine;
// TotalPriceAfterDiscount is only set while an applied coupon still
// reflects the current contents.
type Cart struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User                    primitive.ObjectID `bson:"user" json:"user"`
	CartItems               []CartItem         `bson:"cartItems" json:"cartItems"`
	TotalPrice              float64            `bson:"totalPrice" json:"totalPrice"`
	TotalPriceAfterDiscount *float64           `bson:"totalPriceAfterDiscount,omitempty" json:"totalPriceAfterDiscount,omitempty"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NumOfItems is the sum of line quantities, reported alongside every
// cart response.
func (c *Cart) NumOfItems() int {
	n := 0
	for _, item := range c.CartItems {
		n += item.Quantity
	}
	return n
}
