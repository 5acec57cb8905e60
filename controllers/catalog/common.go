package catalogControllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/utils"
)

// reslugOnName keeps the slug in step with name edits.
func reslugOnName(c *gin.Context, patch bson.M) error {
	if name, ok := patch["name"].(string); ok {
		if name == "" {
			return httperr.BadRequest("name must not be empty")
		}
		patch["slug"] = slug.Make(name)
	}
	return nil
}

// uploadImage stores a single multipart image for the resource and
// patches the given field with the saved filename.
func uploadImage[T any](cfg *config.Config, st crud.Store[T], folder, prefix, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := crud.ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		file, err := c.FormFile("image")
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("image file is required"))
			return
		}
		name, err := utils.SaveUploadedImage(c, file, filepath.Join(cfg.UploadDir, folder), prefix)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		doc, err := st.UpdateByID(c.Request.Context(), id, bson.M{field: name})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}
