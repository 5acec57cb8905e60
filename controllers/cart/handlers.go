package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
)

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Color     string `json:"color"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type ApplyCouponInput struct {
	CouponName string `json:"couponName" binding:"required"`
}

func respondCart(c *gin.Context, message string, cart *models.Cart) {
	body := gin.H{
		"status":         "success",
		"numOfCartItems": cart.NumOfItems(),
		"totalPrice":     cart.TotalPrice,
		"data":           cart,
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// POST /cart
func AddProductToCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid product id format: %s", input.ProductID))
			return
		}

		user := middleware.CurrentUser(c)
		cart, err := engine.AddItem(c.Request.Context(), user.ID, productID, input.Color)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		respondCart(c, "product added to cart successfully", cart)
	}
}

// GET /cart
func GetLoggedUserCart(carts CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		cart, err := carts.FindByUser(c.Request.Context(), user.ID)
		if err != nil {
			if httperr.StatusOf(err) == http.StatusNotFound {
				err = httperr.NotFound("there is no cart for this user id : %s", user.ID.Hex())
			}
			httperr.Abort(c, err)
			return
		}
		respondCart(c, "", cart)
	}
}

// DELETE /cart/items/:itemId
func RemoveItemFromCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid item id format: %s", c.Param("itemId")))
			return
		}
		user := middleware.CurrentUser(c)
		cart, err := engine.RemoveItem(c.Request.Context(), user.ID, itemID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		respondCart(c, "", cart)
	}
}

// PUT /cart/items/:itemId
func UpdateCartItemQuantity(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid item id format: %s", c.Param("itemId")))
			return
		}
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		user := middleware.CurrentUser(c)
		cart, err := engine.UpdateItemQuantity(c.Request.Context(), user.ID, itemID, input.Quantity)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		respondCart(c, "", cart)
	}
}

// DELETE /cart
func ClearCart(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := engine.Clear(c.Request.Context(), user.ID); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// PUT /cart/applyCoupon
func ApplyCoupon(engine *Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		user := middleware.CurrentUser(c)
		cart, err := engine.ApplyCoupon(c.Request.Context(), user.ID, input.CouponName)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		respondCart(c, "", cart)
	}
}
