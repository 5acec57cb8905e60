package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
)

type AddAddressInput struct {
	Alias      string `json:"alias"`
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// POST /addresses
func AddAddress(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		address := models.Address{
			ID:         primitive.NewObjectID(),
			Alias:      input.Alias,
			Details:    input.Details,
			Phone:      input.Phone,
			City:       input.City,
			PostalCode: input.PostalCode,
		}

		me := middleware.CurrentUser(c)
		user, err := users.Mutate(c.Request.Context(), me.ID, bson.M{
			"$addToSet": bson.M{"addresses": address},
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "address added successfully",
			"data":    user.Addresses,
		})
	}
}

// DELETE /addresses/:addressId
func RemoveAddress(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID, err := primitive.ObjectIDFromHex(c.Param("addressId"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid address id"))
			return
		}

		me := middleware.CurrentUser(c)
		user, err := users.Mutate(c.Request.Context(), me.ID, bson.M{
			"$pull": bson.M{"addresses": bson.M{"_id": addressID}},
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "address removed successfully",
			"data":    user.Addresses,
		})
	}
}

// GET /addresses
func GetLoggedUserAddresses() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"results": len(me.Addresses),
			"data":    me.Addresses,
		})
	}
}
