package productControllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/store"
	"github.com/hsddev/cake-store/utils"
)

// uploadProductImages accepts a multipart form with an optional
// imageCover file and any number of gallery files under images.
func uploadProductImages(cfg *config.Config, st *store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := crud.ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("multipart form is required"))
			return
		}

		dir := filepath.Join(cfg.UploadDir, "products")
		patch := bson.M{}

		if covers := form.File["imageCover"]; len(covers) > 0 {
			name, err := utils.SaveUploadedImage(c, covers[0], dir, "product")
			if err != nil {
				httperr.Abort(c, err)
				return
			}
			patch["imageCover"] = name
		}
		if gallery := form.File["images"]; len(gallery) > 0 {
			names := make([]string, 0, len(gallery))
			for _, file := range gallery {
				name, err := utils.SaveUploadedImage(c, file, dir, "product")
				if err != nil {
					httperr.Abort(c, err)
					return
				}
				names = append(names, name)
			}
			patch["images"] = names
		}
		if len(patch) == 0 {
			httperr.Abort(c, httperr.BadRequest("no image files provided"))
			return
		}

		product, err := st.UpdateByID(c.Request.Context(), id, patch)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
