package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

type fakeCarts struct {
	byID map[primitive.ObjectID]*models.Cart
}

func (f *fakeCarts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.byID[id]
	if !ok {
		return nil, httperr.NotFound("no cart")
	}
	return cart, nil
}

func (f *fakeCarts) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	delete(f.byID, id)
	return nil
}

type fakeOrders struct {
	byID map[primitive.ObjectID]*models.Order
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	order.ID = id
	f.byID[id] = order
	return id, nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, httperr.NotFound("no order")
	}
	return order, nil
}

func (f *fakeOrders) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, httperr.NotFound("no order")
	}
	if paid, ok := patch["isPaid"].(bool); ok {
		order.IsPaid = paid
		at := patch["paidAt"].(time.Time)
		order.PaidAt = &at
	}
	if delivered, ok := patch["isDelivered"].(bool); ok {
		order.IsDelivered = delivered
		at := patch["deliveredAt"].(time.Time)
		order.DeliveredAt = &at
	}
	return order, nil
}

type fakeInventory struct {
	adjusted [][]models.CartItem
	fail     error
}

func (f *fakeInventory) AdjustInventory(_ context.Context, items []models.CartItem) ([]store.InventoryOutcome, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.adjusted = append(f.adjusted, items)
	outcomes := make([]store.InventoryOutcome, len(items))
	for i, item := range items {
		outcomes[i] = store.InventoryOutcome{Product: item.Product, Applied: true}
	}
	return outcomes, nil
}

func testCart(userID primitive.ObjectID) *models.Cart {
	return &models.Cart{
		ID:   primitive.NewObjectID(),
		User: userID,
		CartItems: []models.CartItem{
			{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 2, Price: 120},
			{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 1, Price: 35.5},
		},
		TotalPrice: 275.5,
	}
}

func newFlow(carts *fakeCarts, orders *fakeOrders, inv *fakeInventory) *Flow {
	return NewFlow(carts, orders, inv, zap.NewNop())
}

func TestCreateCashOrder(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	address := models.ShippingAddress{Details: "12 Nile St", City: "Cairo"}

	t.Run("snapshots the cart and settles inventory", func(t *testing.T) {
		cart := testCart(userID)
		carts := &fakeCarts{byID: map[primitive.ObjectID]*models.Cart{cart.ID: cart}}
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}
		inv := &fakeInventory{}

		order, err := newFlow(carts, orders, inv).CreateCashOrder(ctx, userID, cart.ID, address)
		if err != nil {
			t.Fatalf("CreateCashOrder: %v", err)
		}

		if order.User != userID {
			t.Errorf("User = %v", order.User)
		}
		if order.TotalOrderPrice != 275.5 {
			t.Errorf("TotalOrderPrice = %v, want 275.5", order.TotalOrderPrice)
		}
		if order.PaymentMethodType != models.PaymentMethodCash {
			t.Errorf("PaymentMethodType = %q", order.PaymentMethodType)
		}
		if order.IsPaid || order.IsDelivered {
			t.Error("new order must start unpaid and undelivered")
		}
		if len(order.CartItems) != 2 {
			t.Fatalf("CartItems = %d, want 2", len(order.CartItems))
		}

		// Inventory got exactly the ordered lines, once.
		if len(inv.adjusted) != 1 {
			t.Fatalf("inventory batches = %d, want 1", len(inv.adjusted))
		}
		for i, item := range inv.adjusted[0] {
			if item.Product != cart.CartItems[i].Product || item.Quantity != cart.CartItems[i].Quantity {
				t.Errorf("batch item %d = %+v", i, item)
			}
		}

		if _, ok := carts.byID[cart.ID]; ok {
			t.Error("cart not deleted after checkout")
		}
		if _, ok := orders.byID[order.ID]; !ok {
			t.Error("order not persisted")
		}
	})

	t.Run("discounted total wins over the raw total", func(t *testing.T) {
		cart := testCart(userID)
		discounted := 200.0
		cart.TotalPriceAfterDiscount = &discounted
		carts := &fakeCarts{byID: map[primitive.ObjectID]*models.Cart{cart.ID: cart}}
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}

		order, err := newFlow(carts, orders, &fakeInventory{}).CreateCashOrder(ctx, userID, cart.ID, address)
		if err != nil {
			t.Fatalf("CreateCashOrder: %v", err)
		}
		if order.TotalOrderPrice != 200 {
			t.Errorf("TotalOrderPrice = %v, want 200", order.TotalOrderPrice)
		}
	})

	t.Run("missing cart creates nothing", func(t *testing.T) {
		carts := &fakeCarts{byID: map[primitive.ObjectID]*models.Cart{}}
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}
		inv := &fakeInventory{}

		_, err := newFlow(carts, orders, inv).CreateCashOrder(ctx, userID, primitive.NewObjectID(), address)
		if httperr.StatusOf(err) != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", httperr.StatusOf(err))
		}
		if len(orders.byID) != 0 {
			t.Error("order created for missing cart")
		}
		if len(inv.adjusted) != 0 {
			t.Error("inventory touched for missing cart")
		}
	})

	t.Run("inventory failure keeps the order and the cart", func(t *testing.T) {
		cart := testCart(userID)
		carts := &fakeCarts{byID: map[primitive.ObjectID]*models.Cart{cart.ID: cart}}
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}
		inv := &fakeInventory{fail: errors.New("server selection timeout")}

		order, err := newFlow(carts, orders, inv).CreateCashOrder(ctx, userID, cart.ID, address)
		if err != nil {
			t.Fatalf("CreateCashOrder: %v", err)
		}
		if _, ok := orders.byID[order.ID]; !ok {
			t.Error("order lost on inventory failure")
		}
		if _, ok := carts.byID[cart.ID]; !ok {
			t.Error("cart deleted despite inventory failure")
		}
	})
}

func TestOrderTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("mark paid sets exactly the flag and timestamp", func(t *testing.T) {
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}
		id, _ := orders.Create(ctx, &models.Order{TotalOrderPrice: 100})

		flow := newFlow(&fakeCarts{}, orders, &fakeInventory{})
		order, err := flow.MarkPaid(ctx, id)
		if err != nil {
			t.Fatalf("MarkPaid: %v", err)
		}
		if !order.IsPaid || order.PaidAt == nil {
			t.Error("paid flag or timestamp missing")
		}
		if order.IsDelivered || order.DeliveredAt != nil {
			t.Error("delivery state changed by MarkPaid")
		}
		if order.TotalOrderPrice != 100 {
			t.Error("order totals changed by MarkPaid")
		}
	})

	t.Run("mark delivered", func(t *testing.T) {
		orders := &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}
		id, _ := orders.Create(ctx, &models.Order{})

		flow := newFlow(&fakeCarts{}, orders, &fakeInventory{})
		order, err := flow.MarkDelivered(ctx, id)
		if err != nil {
			t.Fatalf("MarkDelivered: %v", err)
		}
		if !order.IsDelivered || order.DeliveredAt == nil {
			t.Error("delivered flag or timestamp missing")
		}
		if order.IsPaid {
			t.Error("paid state changed by MarkDelivered")
		}
	})

	t.Run("unknown order id", func(t *testing.T) {
		flow := newFlow(&fakeCarts{}, &fakeOrders{byID: map[primitive.ObjectID]*models.Order{}}, &fakeInventory{})
		if _, err := flow.MarkPaid(ctx, primitive.NewObjectID()); httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
		if _, err := flow.MarkDelivered(ctx, primitive.NewObjectID()); httperr.StatusOf(err) != http.StatusNotFound {
			t.Errorf("status = %d, want 404", httperr.StatusOf(err))
		}
	})
}
