// Package catalogControllers configures the generic CRUD handlers for
// the catalog taxonomy resources: categories, subcategories and brands.
package catalogControllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
	"github.com/hsddev/cake-store/utils"
)

// Categories bundles the configured handlers for the category resource.
type Categories struct {
	GetAll      gin.HandlerFunc
	GetOne      gin.HandlerFunc
	Create      gin.HandlerFunc
	Update      gin.HandlerFunc
	Delete      gin.HandlerFunc
	UploadImage gin.HandlerFunc
}

func NewCategories(cfg *config.Config, st *store.Collection[models.Category]) Categories {
	opts := crud.Options[models.Category]{
		SearchFields: []string{"name"},
		Prepare: func(c *gin.Context, cat *models.Category) error {
			if cat.Name == "" {
				return httperr.BadRequest("category name is required")
			}
			cat.ID = primitive.NilObjectID
			cat.Slug = slug.Make(cat.Name)
			now := time.Now()
			cat.CreatedAt = now
			cat.UpdatedAt = now
			return nil
		},
		PreparePatch: reslugOnName,
		Present: func(cat *models.Category) {
			cat.Image = utils.ImageURL(cfg.BaseURL, "categories", cat.Image)
		},
	}
	return Categories{
		GetAll:      crud.GetAll(st, opts),
		GetOne:      crud.GetOne(st, opts),
		Create:      crud.CreateOne(st, opts),
		Update:      crud.UpdateOne(st, opts),
		Delete:      crud.DeleteOne[models.Category](st),
		UploadImage: uploadImage[models.Category](cfg, st, "categories", "category", "image"),
	}
}
