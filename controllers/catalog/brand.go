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

type Brands struct {
	GetAll      gin.HandlerFunc
	GetOne      gin.HandlerFunc
	Create      gin.HandlerFunc
	Update      gin.HandlerFunc
	Delete      gin.HandlerFunc
	UploadImage gin.HandlerFunc
}

func NewBrands(cfg *config.Config, st *store.Collection[models.Brand]) Brands {
	opts := crud.Options[models.Brand]{
		SearchFields: []string{"name"},
		Prepare: func(c *gin.Context, b *models.Brand) error {
			if b.Name == "" {
				return httperr.BadRequest("brand name is required")
			}
			b.ID = primitive.NilObjectID
			b.Slug = slug.Make(b.Name)
			now := time.Now()
			b.CreatedAt = now
			b.UpdatedAt = now
			return nil
		},
		PreparePatch: reslugOnName,
		Present: func(b *models.Brand) {
			b.Image = utils.ImageURL(cfg.BaseURL, "brands", b.Image)
		},
	}
	return Brands{
		GetAll:      crud.GetAll(st, opts),
		GetOne:      crud.GetOne(st, opts),
		Create:      crud.CreateOne(st, opts),
		Update:      crud.UpdateOne(st, opts),
		Delete:      crud.DeleteOne[models.Brand](st),
		UploadImage: uploadImage[models.Brand](cfg, st, "brands", "brand", "image"),
	}
}
