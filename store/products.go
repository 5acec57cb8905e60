package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
)

// Products adds the checkout inventory batch on top of the generic
// collection surface.
type Products struct {
	*Collection[models.Product]
}

// InventoryOutcome reports the result of one item's inventory update
// within a checkout batch.
type InventoryOutcome struct {
	Product primitive.ObjectID
	Applied bool
	Err     string
}

// FindByIDs loads the products for a set of ids, e.g. a wishlist.
func (p *Products) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	cur, err := p.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	out := make([]models.Product, 0, len(ids))
	if err := cur.All(ctx, &out); err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	return out, nil
}

// All streams the whole catalog, used by the excel export.
func (p *Products) All(ctx context.Context) ([]models.Product, error) {
	cur, err := p.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	out := make([]models.Product, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, httperr.Internal("store: %v", err)
	}
	return out, nil
}

// AdjustInventory decrements quantity and increments sold for every
// line item in one unordered bulk write. There is no cross-document
// transaction: a failing item does not roll back the others, it is
// reported in its outcome instead.
func (p *Products) AdjustInventory(ctx context.Context, items []models.CartItem) ([]InventoryOutcome, error) {
	if len(items) == 0 {
		return nil, nil
	}

	writes := make([]mongo.WriteModel, 0, len(items))
	outcomes := make([]InventoryOutcome, len(items))
	for i, item := range items {
		outcomes[i] = InventoryOutcome{Product: item.Product, Applied: true}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": item.Product}).
			SetUpdate(bson.M{"$inc": bson.M{
				"quantity": -item.Quantity,
				"sold":     item.Quantity,
			}}))
	}

	_, err := p.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			for _, we := range bulkErr.WriteErrors {
				if we.Index >= 0 && we.Index < len(outcomes) {
					outcomes[we.Index].Applied = false
					outcomes[we.Index].Err = we.Message
				}
			}
			return outcomes, nil
		}
		return nil, httperr.Internal("store: %v", err)
	}
	return outcomes, nil
}
