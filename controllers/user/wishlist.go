package userControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
)

// WishlistProducts resolves wishlist ids to full product documents.
type WishlistProducts interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

// POST /wishlist
func AddProductToWishlist(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID string `json:"productId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid product id"))
			return
		}

		me := middleware.CurrentUser(c)
		user, err := users.Mutate(c.Request.Context(), me.ID, bson.M{
			"$addToSet": bson.M{"wishlist": productID},
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product added successfully to your wishlist",
			"data":    user.Wishlist,
		})
	}
}

// DELETE /wishlist/:productId
func RemoveProductFromWishlist(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid product id"))
			return
		}

		me := middleware.CurrentUser(c)
		user, err := users.Mutate(c.Request.Context(), me.ID, bson.M{
			"$pull": bson.M{"wishlist": productID},
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "product removed successfully from your wishlist",
			"data":    user.Wishlist,
		})
	}
}

// GET /wishlist
func GetLoggedUserWishlist(products WishlistProducts) gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		items, err := products.FindByIDs(c.Request.Context(), me.Wishlist)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"results": len(items),
			"data":    items,
		})
	}
}
