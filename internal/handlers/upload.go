package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

/*
POST /admin/api/uploads
- multipart field "image", optional form field "kind" (products|services)
- stores the file under the public uploads tree and returns its URL path
The dashboard uploads images first, then references the returned paths in
the catalog payloads.
*/
func UploadImage(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := strings.TrimSpace(c.PostForm("kind"))
		if kind == "" {
			kind = "products"
		}
		if kind != "products" && kind != "services" {
			respondValidationError(c, "kind must be products or services")
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondValidationError(c, "image file required")
			return
		}

		urlPath, err := saveImage(publicDir, kind, file)
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}

		respondCreated(c, gin.H{"path": urlPath})
	}
}

// DELETE /admin/api/uploads?path=/public/uploads/...
func DeleteUpload(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/uploads"

		path := strings.TrimSpace(c.Query("path"))
		if path == "" {
			respondValidationError(c, "path required")
			return
		}

		if err := safeDeleteUpload(publicDir, path); err != nil {
			log.Printf("[%s] delete failed: %v", route, err)
			respondError(c, http.StatusInternalServerError, codeInternal, "delete failed")
			return
		}

		respondOK(c, gin.H{"path": path})
	}
}

func saveImage(publicDir, kind string, file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := uuid.NewString() + extension

	dir := filepath.Join(publicDir, "uploads", kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return "/" + filepath.ToSlash(filepath.Join("public", "uploads", kind, filename)), nil
}
