package cartControllers

import (
	"context"
	"math"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
)

// ProductStore resolves the product being added to a cart.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CartStore persists the single cart a user owns.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) (primitive.ObjectID, error)
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// CouponStore looks up unexpired coupons by name.
type CouponStore interface {
	FindValid(ctx context.Context, name string, now time.Time) (*models.Coupon, error)
}

// Engine implements the cart state machine: create lazily on first
// add, mutate line items, keep totalPrice consistent, apply coupons.
type Engine struct {
	products ProductStore
	carts    CartStore
	coupons  CouponStore
}

func NewEngine(products ProductStore, carts CartStore, coupons CouponStore) *Engine {
	return &Engine{products: products, carts: carts, coupons: coupons}
}

// recalcTotal recomputes totalPrice from the line items and clears any
// applied discount, which no longer reflects the contents.
func recalcTotal(cart *models.Cart) {
	total := 0.0
	for _, item := range cart.CartItems {
		total += item.Price * float64(item.Quantity)
	}
	cart.TotalPrice = total
	cart.TotalPriceAfterDiscount = nil
}

// AddItem puts one unit of the product into the user's cart, creating
// the cart if this is the user's first item. An existing line with the
// same product and color is incremented instead of duplicated. The
// unit price is snapshotted from the product at add time.
func (e *Engine) AddItem(ctx context.Context, userID, productID primitive.ObjectID, color string) (*models.Cart, error) {
	product, err := e.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := e.carts.FindByUser(ctx, userID)
	if err != nil {
		if httperr.StatusOf(err) != http.StatusNotFound {
			return nil, err
		}
		now := time.Now()
		cart = &models.Cart{
			User: userID,
			CartItems: []models.CartItem{{
				ID:       primitive.NewObjectID(),
				Product:  productID,
				Color:    color,
				Quantity: 1,
				Price:    product.Price,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		recalcTotal(cart)
		id, err := e.carts.Create(ctx, cart)
		if err != nil {
			return nil, err
		}
		cart.ID = id
		return cart, nil
	}

	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].Product == productID && cart.CartItems[i].Color == color {
			cart.CartItems[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.CartItems = append(cart.CartItems, models.CartItem{
			ID:       primitive.NewObjectID(),
			Product:  productID,
			Color:    color,
			Quantity: 1,
			Price:    product.Price,
		})
	}

	recalcTotal(cart)
	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the line item with the given id from the user's
// cart. Removing an id that is not in the cart leaves it unchanged.
func (e *Engine) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.Cart, error) {
	cart, err := e.carts.FindByUser(ctx, userID)
	if err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no cart for this user id : %s", userID.Hex())
		}
		return nil, err
	}

	items := cart.CartItems[:0]
	for _, item := range cart.CartItems {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	cart.CartItems = items

	recalcTotal(cart)
	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity sets the quantity of one line item exactly.
func (e *Engine) UpdateItemQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, httperr.BadRequest("quantity must be at least 1")
	}

	cart, err := e.carts.FindByUser(ctx, userID)
	if err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no cart for this user id : %s", userID.Hex())
		}
		return nil, err
	}

	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == itemID {
			cart.CartItems[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, httperr.NotFound("there is no item with that id : %s", itemID.Hex())
	}

	recalcTotal(cart)
	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear deletes the user's cart entirely. Clearing an absent cart is
// not an error.
func (e *Engine) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return e.carts.DeleteByUser(ctx, userID)
}

// ApplyCoupon stores the discounted payable total on the cart without
// touching totalPrice. The discount is invalidated by any later item
// mutation.
func (e *Engine) ApplyCoupon(ctx context.Context, userID primitive.ObjectID, couponName string) (*models.Cart, error) {
	coupon, err := e.coupons.FindValid(ctx, couponName, time.Now())
	if err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("coupon is invalid or expired")
		}
		return nil, err
	}

	cart, err := e.carts.FindByUser(ctx, userID)
	if err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no cart for this user id : %s", userID.Hex())
		}
		return nil, err
	}

	discounted := cart.TotalPrice - cart.TotalPrice*coupon.Discount/100
	discounted = math.Round(discounted*100) / 100
	cart.TotalPriceAfterDiscount = &discounted

	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
