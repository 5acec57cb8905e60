package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hsddev/cake-store/httperr"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SaveUploadedImage stores an uploaded image under dir with a unique
// name and returns the stored filename. Only the filename is kept in
// the database; URLs are derived on the read path.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, dir, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", httperr.BadRequest("unsupported image type %s", ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", httperr.Internal("failed to create upload folder: %v", err)
	}

	name := fmt.Sprintf("%s-%s-%d%s", prefix, uuid.NewString(), time.Now().UnixMilli(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", httperr.Internal("failed to save file: %v", err)
	}
	return name, nil
}

// ImageURL maps a stored filename to its public URL. Already-absolute
// values pass through untouched.
func ImageURL(baseURL, folder, name string) string {
	if name == "" || strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return fmt.Sprintf("%s/uploads/%s/%s", baseURL, folder, name)
}
