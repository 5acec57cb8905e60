// Package reviewControllers serves product reviews. Reviews are
// created by the logged-in user and only their author may edit or
// remove them; admins can moderate.
package reviewControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

type Reviews struct {
	GetAll gin.HandlerFunc
	GetOne gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

func NewReviews(st *store.Collection[models.Review]) Reviews {
	opts := crud.Options[models.Review]{
		Scope: func(c *gin.Context) bson.M {
			if hex := c.Param("id"); hex != "" {
				if productID, err := primitive.ObjectIDFromHex(hex); err == nil {
					return bson.M{"product": productID}
				}
			}
			return bson.M{}
		},
		Prepare: func(c *gin.Context, r *models.Review) error {
			if r.Ratings < 1 || r.Ratings > 5 {
				return httperr.BadRequest("ratings must be between 1 and 5")
			}
			if r.Product.IsZero() {
				hex := c.Param("id")
				if hex == "" {
					return httperr.BadRequest("review must belong to a product")
				}
				productID, err := primitive.ObjectIDFromHex(hex)
				if err != nil {
					return httperr.BadRequest("invalid product id")
				}
				r.Product = productID
			}
			r.ID = primitive.NilObjectID
			r.User = middleware.CurrentUser(c).ID
			now := time.Now()
			r.CreatedAt = now
			r.UpdatedAt = now
			return nil
		},
	}
	return Reviews{
		GetAll: crud.GetAll[models.Review](st, opts),
		GetOne: crud.GetOne[models.Review](st, opts),
		Create: crud.CreateOne[models.Review](st, opts),
		Update: updateReview(st),
		Delete: deleteReview(st),
	}
}

// updateReview lets the author adjust title and ratings on their own
// review.
func updateReview(st *store.Collection[models.Review]) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, err := ownedReview(c, st)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		var input struct {
			Title   *string  `json:"title"`
			Ratings *float64 `json:"ratings"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		patch := bson.M{}
		if input.Title != nil {
			patch["title"] = *input.Title
		}
		if input.Ratings != nil {
			if *input.Ratings < 1 || *input.Ratings > 5 {
				httperr.Abort(c, httperr.BadRequest("ratings must be between 1 and 5"))
				return
			}
			patch["ratings"] = *input.Ratings
		}

		updated, err := st.UpdateByID(c.Request.Context(), review.ID, patch)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteReview(st *store.Collection[models.Review]) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, err := ownedReview(c, st)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if err := st.DeleteByID(c.Request.Context(), review.ID); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ownedReview loads the addressed review and rejects writes by anyone
// who is neither its author nor an admin.
func ownedReview(c *gin.Context, st *store.Collection[models.Review]) (*models.Review, error) {
	id, err := crud.ParseID(c)
	if err != nil {
		return nil, err
	}
	review, err := st.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	me := middleware.CurrentUser(c)
	if review.User != me.ID && me.Role != models.RoleAdmin {
		return nil, httperr.Forbidden("you are not allowed to modify this review")
	}
	return review, nil
}
