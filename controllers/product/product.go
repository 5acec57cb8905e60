// Package productControllers serves the product catalog: CRUD with
// keyword search, image uploads and the excel export used by back
// office staff.
package productControllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
	"github.com/hsddev/cake-store/store"
	"github.com/hsddev/cake-store/utils"
)

const maxPrice = 200000

type Products struct {
	GetAll       gin.HandlerFunc
	GetOne       gin.HandlerFunc
	Create       gin.HandlerFunc
	Update       gin.HandlerFunc
	Delete       gin.HandlerFunc
	UploadImages gin.HandlerFunc
	ExportExcel  gin.HandlerFunc
}

func NewProducts(cfg *config.Config, st *store.Products) Products {
	opts := crud.Options[models.Product]{
		SearchFields: []string{"title", "description"},
		Prepare: func(c *gin.Context, p *models.Product) error {
			if err := validateProduct(p); err != nil {
				return err
			}
			p.ID = primitive.NilObjectID
			p.Slug = slug.Make(p.Title)
			p.Sold = 0
			p.RatingsAverage = 0
			p.RatingsQuantity = 0
			now := time.Now()
			p.CreatedAt = now
			p.UpdatedAt = now
			return nil
		},
		PreparePatch: func(c *gin.Context, patch bson.M) error {
			if title, ok := patch["title"].(string); ok {
				if len(title) < 3 {
					return httperr.BadRequest("product title must be at least 3 characters long")
				}
				patch["slug"] = slug.Make(title)
			}
			if price, ok := patch["price"].(float64); ok {
				if price <= 0 || price > maxPrice {
					return httperr.BadRequest("product price must be between 0 and %d", maxPrice)
				}
			}
			// Ratings are derived from reviews, not patchable directly.
			delete(patch, "ratingsAverage")
			delete(patch, "ratingsQuantity")
			delete(patch, "sold")
			return nil
		},
		Present: func(p *models.Product) {
			p.ImageCover = utils.ImageURL(cfg.BaseURL, "products", p.ImageCover)
			for i, img := range p.Images {
				p.Images[i] = utils.ImageURL(cfg.BaseURL, "products", img)
			}
		},
	}
	return Products{
		GetAll:       crud.GetAll[models.Product](st, opts),
		GetOne:       crud.GetOne[models.Product](st, opts),
		Create:       crud.CreateOne[models.Product](st, opts),
		Update:       crud.UpdateOne[models.Product](st, opts),
		Delete:       crud.DeleteOne[models.Product](st),
		UploadImages: uploadProductImages(cfg, st),
		ExportExcel:  exportProductsToExcel(st),
	}
}

func validateProduct(p *models.Product) error {
	if len(p.Title) < 3 || len(p.Title) > 100 {
		return httperr.BadRequest("product title must be between 3 and 100 characters")
	}
	if len(p.Description) < 20 {
		return httperr.BadRequest("product description must be at least 20 characters long")
	}
	if p.Price <= 0 || p.Price > maxPrice {
		return httperr.BadRequest("product price must be between 0 and %d", maxPrice)
	}
	if p.Quantity < 0 {
		return httperr.BadRequest("product quantity must not be negative")
	}
	if p.PriceAfterDiscount != 0 && p.PriceAfterDiscount >= p.Price {
		return httperr.BadRequest("discounted price must be lower than the price")
	}
	if p.Category.IsZero() {
		return httperr.BadRequest("product must belong to a category")
	}
	return nil
}
