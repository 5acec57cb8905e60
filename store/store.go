// Package store wraps the mongo driver behind typed collections. Each
// collection satisfies the narrow capability interfaces the controllers
// declare, so everything above this package is testable without a
// running database.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hsddev/cake-store/models"
)

// Connect dials mongo and verifies the connection before the server
// starts taking requests.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// Store bundles the typed collections of the application database.
type Store struct {
	Users         *Collection[models.User]
	Products      *Products
	Categories    *Collection[models.Category]
	SubCategories *Collection[models.SubCategory]
	Brands        *Collection[models.Brand]
	Coupons       *Coupons
	Reviews       *Collection[models.Review]
	Carts         *Carts
	Orders        *Collection[models.Order]
}

func New(db *mongo.Database) *Store {
	return &Store{
		Users:         NewCollection[models.User](db, "users"),
		Products:      &Products{Collection: NewCollection[models.Product](db, "products")},
		Categories:    NewCollection[models.Category](db, "categories"),
		SubCategories: NewCollection[models.SubCategory](db, "subcategories"),
		Brands:        NewCollection[models.Brand](db, "brands"),
		Coupons:       &Coupons{Collection: NewCollection[models.Coupon](db, "coupons")},
		Reviews:       NewCollection[models.Review](db, "reviews"),
		Carts:         &Carts{Collection: NewCollection[models.Cart](db, "carts")},
		Orders:        NewCollection[models.Order](db, "orders"),
	}
}
