package catalogControllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
)

type SubCategories struct {
	GetAll gin.HandlerFunc
	GetOne gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

// NewSubCategories configures the subcategory handlers. The same
// handlers serve both the flat /subcategories routes and the nested
// /categories/:id/subcategories routes: when the category id route
// parameter is present it scopes listing and defaults the parent on
// create.
func NewSubCategories(st *store.Collection[models.SubCategory]) SubCategories {
	opts := crud.Options[models.SubCategory]{
		SearchFields: []string{"name"},
		Scope: func(c *gin.Context) bson.M {
			if hex := c.Param("id"); hex != "" {
				if categoryID, err := primitive.ObjectIDFromHex(hex); err == nil {
					return bson.M{"category": categoryID}
				}
			}
			return bson.M{}
		},
		Prepare: func(c *gin.Context, sub *models.SubCategory) error {
			if sub.Name == "" {
				return httperr.BadRequest("subcategory name is required")
			}
			if sub.Category.IsZero() {
				hex := c.Param("id")
				if hex == "" {
					return httperr.BadRequest("subcategory must belong to a category")
				}
				categoryID, err := primitive.ObjectIDFromHex(hex)
				if err != nil {
					return httperr.BadRequest("invalid category id")
				}
				sub.Category = categoryID
			}
			sub.ID = primitive.NilObjectID
			sub.Slug = slug.Make(sub.Name)
			now := time.Now()
			sub.CreatedAt = now
			sub.UpdatedAt = now
			return nil
		},
		PreparePatch: reslugOnName,
	}
	return SubCategories{
		GetAll: crud.GetAll(st, opts),
		GetOne: crud.GetOne(st, opts),
		Create: crud.CreateOne(st, opts),
		Update: crud.UpdateOne(st, opts),
		Delete: crud.DeleteOne[models.SubCategory](st),
	}
}
