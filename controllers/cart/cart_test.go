package cartControllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
)

type fakeProducts struct {
	byID map[primitive.ObjectID]*models.Product
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, httperr.NotFound("no product found for this id : %s", id.Hex())
	}
	return p, nil
}

type fakeCarts struct {
	byUser map[primitive.ObjectID]*models.Cart
}

func (f *fakeCarts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.byUser[userID]
	if !ok {
		return nil, httperr.NotFound("no cart for user")
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCarts) Create(_ context.Context, cart *models.Cart) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cart.ID = id
	f.byUser[cart.User] = cart
	return id, nil
}

func (f *fakeCarts) Save(_ context.Context, cart *models.Cart) error {
	f.byUser[cart.User] = cart
	return nil
}

func (f *fakeCarts) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(f.byUser, userID)
	return nil
}

type fakeCoupons struct {
	byName map[string]*models.Coupon
}

func (f *fakeCoupons) FindValid(_ context.Context, name string, now time.Time) (*models.Coupon, error) {
	c, ok := f.byName[name]
	if !ok || !c.Expire.After(now) {
		return nil, httperr.NotFound("no valid coupon")
	}
	return c, nil
}

type fixture struct {
	engine  *Engine
	carts   *fakeCarts
	userID  primitive.ObjectID
	cake    primitive.ObjectID
	cookies primitive.ObjectID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cake := primitive.NewObjectID()
	cookies := primitive.NewObjectID()
	products := &fakeProducts{byID: map[primitive.ObjectID]*models.Product{
		cake:    {ID: cake, Title: "Chocolate Cake", Price: 120, Quantity: 10},
		cookies: {ID: cookies, Title: "Cookies Box", Price: 35.5, Quantity: 40},
	}}
	carts := &fakeCarts{byUser: map[primitive.ObjectID]*models.Cart{}}
	coupons := &fakeCoupons{byName: map[string]*models.Coupon{
		"SUMMER10": {Name: "SUMMER10", Discount: 10, Expire: time.Now().Add(24 * time.Hour)},
		"OLD50":    {Name: "OLD50", Discount: 50, Expire: time.Now().Add(-time.Hour)},
	}}
	return &fixture{
		engine:  NewEngine(products, carts, coupons),
		carts:   carts,
		userID:  primitive.NewObjectID(),
		cake:    cake,
		cookies: cookies,
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("first add creates the cart with one unit", func(t *testing.T) {
		f := newFixture(t)
		cart, err := f.engine.AddItem(ctx, f.userID, f.cake, "red")
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if cart.ID.IsZero() {
			t.Error("created cart has no id")
		}
		if len(cart.CartItems) != 1 || cart.CartItems[0].Quantity != 1 {
			t.Fatalf("unexpected items: %+v", cart.CartItems)
		}
		if cart.CartItems[0].Price != 120 {
			t.Errorf("price not snapshotted: %v", cart.CartItems[0].Price)
		}
		if cart.TotalPrice != 120 {
			t.Errorf("TotalPrice = %v, want 120", cart.TotalPrice)
		}
	})

	t.Run("same product and color increments the line", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "red")
		cart, err := f.engine.AddItem(ctx, f.userID, f.cake, "red")
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if len(cart.CartItems) != 1 {
			t.Fatalf("got %d lines, want 1", len(cart.CartItems))
		}
		if cart.CartItems[0].Quantity != 2 {
			t.Errorf("Quantity = %d, want 2", cart.CartItems[0].Quantity)
		}
		if cart.TotalPrice != 240 {
			t.Errorf("TotalPrice = %v, want 240", cart.TotalPrice)
		}
	})

	t.Run("different color gets its own line", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "red")
		cart, err := f.engine.AddItem(ctx, f.userID, f.cake, "blue")
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if len(cart.CartItems) != 2 {
			t.Fatalf("got %d lines, want 2", len(cart.CartItems))
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.AddItem(ctx, f.userID, primitive.NewObjectID(), "")
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
	})
}

func TestTotalsStayConsistent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.engine.AddItem(ctx, f.userID, f.cake, "")
	cart, _ := f.engine.AddItem(ctx, f.userID, f.cookies, "")
	if cart.TotalPrice != 155.5 {
		t.Fatalf("TotalPrice = %v, want 155.5", cart.TotalPrice)
	}

	cart, err := f.engine.UpdateItemQuantity(ctx, f.userID, cart.CartItems[1].ID, 4)
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if cart.TotalPrice != 120+4*35.5 {
		t.Errorf("TotalPrice = %v after quantity update", cart.TotalPrice)
	}

	cart, err = f.engine.RemoveItem(ctx, f.userID, cart.CartItems[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if cart.TotalPrice != 4*35.5 {
		t.Errorf("TotalPrice = %v after removal", cart.TotalPrice)
	}
}

func TestDiscountClearedByMutation(t *testing.T) {
	ctx := context.Background()

	apply := func(t *testing.T, f *fixture) *models.Cart {
		t.Helper()
		cart, err := f.engine.ApplyCoupon(ctx, f.userID, "SUMMER10")
		if err != nil {
			t.Fatalf("ApplyCoupon: %v", err)
		}
		if cart.TotalPriceAfterDiscount == nil {
			t.Fatal("discount not applied")
		}
		return cart
	}

	t.Run("cleared by add", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		apply(t, f)
		cart, _ := f.engine.AddItem(ctx, f.userID, f.cookies, "")
		if cart.TotalPriceAfterDiscount != nil {
			t.Error("discount survived an add")
		}
	})

	t.Run("cleared by quantity update", func(t *testing.T) {
		f := newFixture(t)
		cart, _ := f.engine.AddItem(ctx, f.userID, f.cake, "")
		apply(t, f)
		cart, _ = f.engine.UpdateItemQuantity(ctx, f.userID, cart.CartItems[0].ID, 3)
		if cart.TotalPriceAfterDiscount != nil {
			t.Error("discount survived a quantity update")
		}
	})

	t.Run("cleared by removal", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		cart, _ := f.engine.AddItem(ctx, f.userID, f.cookies, "")
		apply(t, f)
		cart, _ = f.engine.RemoveItem(ctx, f.userID, cart.CartItems[0].ID)
		if cart.TotalPriceAfterDiscount != nil {
			t.Error("discount survived a removal")
		}
	})
}

func TestApplyCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the rounded discounted total", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cookies, "") // 35.5
		cart, err := f.engine.ApplyCoupon(ctx, f.userID, "SUMMER10")
		if err != nil {
			t.Fatalf("ApplyCoupon: %v", err)
		}
		if cart.TotalPrice != 35.5 {
			t.Errorf("TotalPrice changed: %v", cart.TotalPrice)
		}
		if got := *cart.TotalPriceAfterDiscount; got != 31.95 {
			t.Errorf("TotalPriceAfterDiscount = %v, want 31.95", got)
		}
	})

	t.Run("expired coupon leaves the cart untouched", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		_, err := f.engine.ApplyCoupon(ctx, f.userID, "OLD50")
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", httperr.StatusOf(err))
		}
		cart := f.carts.byUser[f.userID]
		if cart.TotalPriceAfterDiscount != nil {
			t.Error("expired coupon mutated the cart")
		}
	})

	t.Run("unknown coupon", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		_, err := f.engine.ApplyCoupon(ctx, f.userID, "NOPE")
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
	})
}

func TestCartErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity below one", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.UpdateItemQuantity(ctx, f.userID, primitive.NewObjectID(), 0)
		if httperr.StatusOf(err) != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", httperr.StatusOf(err))
		}
	})

	t.Run("no cart for user", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.RemoveItem(ctx, f.userID, primitive.NewObjectID())
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
	})

	t.Run("unknown item id on update", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		_, err := f.engine.UpdateItemQuantity(ctx, f.userID, primitive.NewObjectID(), 2)
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
	})

	t.Run("removing an unknown item keeps the cart", func(t *testing.T) {
		f := newFixture(t)
		f.engine.AddItem(ctx, f.userID, f.cake, "")
		cart, err := f.engine.RemoveItem(ctx, f.userID, primitive.NewObjectID())
		if err != nil {
			t.Fatalf("RemoveItem: %v", err)
		}
		if len(cart.CartItems) != 1 {
			t.Errorf("items = %d, want 1", len(cart.CartItems))
		}
	})
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.engine.AddItem(ctx, f.userID, f.cake, "")

	if err := f.engine.Clear(ctx, f.userID); err != nil {
		t.Fatalf("first Clear: %v", err)
	}
	if err := f.engine.Clear(ctx, f.userID); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if _, ok := f.carts.byUser[f.userID]; ok {
		t.Error("cart still present after clear")
	}
}

// A full shopping session: add twice, apply a coupon, then change the
// quantity and watch the discount drop.
func TestShoppingSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.engine.AddItem(ctx, f.userID, f.cake, "red")
	cart, err := f.engine.AddItem(ctx, f.userID, f.cake, "red")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if cart.CartItems[0].Quantity != 2 || cart.TotalPrice != 240 {
		t.Fatalf("after adds: qty %d total %v", cart.CartItems[0].Quantity, cart.TotalPrice)
	}

	cart, err = f.engine.ApplyCoupon(ctx, f.userID, "SUMMER10")
	if err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}
	if got := *cart.TotalPriceAfterDiscount; got != 216 {
		t.Fatalf("TotalPriceAfterDiscount = %v, want 216", got)
	}

	cart, err = f.engine.UpdateItemQuantity(ctx, f.userID, cart.CartItems[0].ID, 5)
	if err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if cart.TotalPrice != 600 {
		t.Errorf("TotalPrice = %v, want 600", cart.TotalPrice)
	}
	if cart.TotalPriceAfterDiscount != nil {
		t.Error("discount survived the quantity change")
	}
}
