package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

type CartStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Order, error)
}

// Inventory applies the checkout quantity/sold adjustments as a batch
// with per-item outcomes.
type Inventory interface {
	AdjustInventory(ctx context.Context, items []models.CartItem) ([]store.InventoryOutcome, error)
}

// Flow converts carts into immutable orders. Tax and shipping are
// fixed-zero placeholders until a real computation replaces them.
type Flow struct {
	carts         CartStore
	orders        OrderStore
	inventory     Inventory
	log           *zap.Logger
	taxPrice      float64
	shippingPrice float64
}

func NewFlow(carts CartStore, orders OrderStore, inventory Inventory, log *zap.Logger) *Flow {
	return &Flow{carts: carts, orders: orders, inventory: inventory, log: log}
}

// CreateCashOrder snapshots the cart into an order, then best-effort
// adjusts inventory and deletes the cart. The order is created first:
// if the inventory batch fails afterwards the order still stands and is
// reconciled manually. No multi-document transaction spans these steps.
func (f *Flow) CreateCashOrder(ctx context.Context, userID, cartID primitive.ObjectID, address models.ShippingAddress) (*models.Order, error) {
	cart, err := f.carts.FindByID(ctx, cartID)
	if err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no such cart with id %s", cartID.Hex())
		}
		return nil, err
	}

	basis := cart.TotalPrice
	if cart.TotalPriceAfterDiscount != nil {
		basis = *cart.TotalPriceAfterDiscount
	}

	now := time.Now()
	order := &models.Order{
		User:              userID,
		CartItems:         cart.CartItems,
		ShippingAddress:   address,
		TaxPrice:          f.taxPrice,
		ShippingPrice:     f.shippingPrice,
		TotalOrderPrice:   basis + f.taxPrice + f.shippingPrice,
		PaymentMethodType: models.PaymentMethodCash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := f.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id

	outcomes, err := f.inventory.AdjustInventory(ctx, cart.CartItems)
	if err != nil {
		// Inventory untouched, cart kept; the order needs manual
		// reconciliation.
		f.log.Error("checkout inventory batch failed",
			zap.String("order", id.Hex()),
			zap.Error(err))
		return order, nil
	}
	for _, outcome := range outcomes {
		if !outcome.Applied {
			f.log.Error("checkout inventory update failed for item",
				zap.String("order", id.Hex()),
				zap.String("product", outcome.Product.Hex()),
				zap.String("reason", outcome.Err))
		}
	}

	if err := f.carts.DeleteByID(ctx, cartID); err != nil {
		f.log.Error("failed to delete cart after checkout",
			zap.String("order", id.Hex()),
			zap.String("cart", cartID.Hex()),
			zap.Error(err))
	}

	return order, nil
}

// MarkPaid flips the paid flag and timestamp; nothing else on the
// order may change after creation.
func (f *Flow) MarkPaid(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	if _, err := f.orders.FindByID(ctx, orderID); err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no order with this id %s", orderID.Hex())
		}
		return nil, err
	}
	return f.orders.UpdateByID(ctx, orderID, bson.M{
		"isPaid": true,
		"paidAt": time.Now(),
	})
}

// MarkDelivered flips the delivered flag and timestamp.
func (f *Flow) MarkDelivered(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	if _, err := f.orders.FindByID(ctx, orderID); err != nil {
		if httperr.StatusOf(err) == http.StatusNotFound {
			return nil, httperr.NotFound("there is no order with this id %s", orderID.Hex())
		}
		return nil, err
	}
	return f.orders.UpdateByID(ctx, orderID, bson.M{
		"isDelivered": true,
		"deliveredAt": time.Now(),
	})
}

// -------- Handlers --------

type CreateOrderInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// POST /orders/:id where the id parameter addresses the cart being
// checked out.
func CreateCashOrder(flow *Flow, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid cart id format: %s", c.Param("id")))
			return
		}
		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		user := middleware.CurrentUser(c)
		order, err := flow.CreateCashOrder(c.Request.Context(), user.ID, cartID, input.ShippingAddress)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if hub != nil {
			hub.Broadcast(order)
		}
		c.JSON(http.StatusCreated, gin.H{"status": "success", "data": order})
	}
}

// OrderScope restricts plain users to their own orders; admins and
// managers see everything.
func OrderScope(c *gin.Context) bson.M {
	user := middleware.CurrentUser(c)
	if user != nil && user.Role == models.RoleUser {
		return bson.M{"user": user.ID}
	}
	return bson.M{}
}

// PUT /orders/:id/pay
func UpdateOrderToPaid(flow *Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid order id format: %s", c.Param("id")))
			return
		}
		order, err := flow.MarkPaid(c.Request.Context(), orderID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": order})
	}
}

// PUT /orders/:id/deliver
func UpdateOrderToDelivered(flow *Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid order id format: %s", c.Param("id")))
			return
		}
		order, err := flow.MarkDelivered(c.Request.Context(), orderID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": order})
	}
}
