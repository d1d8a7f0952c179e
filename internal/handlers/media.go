package handlers

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/api/internal/ids"
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadMedia stores a post image and returns the public URL to embed in
// post markdown. Admin-only; only raster image types are accepted.
func (h HandlerSet) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
		return
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
		return
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported content type %s", contentType)})
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
		return
	}

	objectKey := path.Join(time.Now().UTC().Format("2006/01"), ids.New()+ext)
	url, err := h.store.Put(c.Request.Context(), objectKey, file, header.Size, contentType)
	if err != nil {
		h.log.Error().Err(err).Str("object_key", objectKey).Msg("media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":         url,
		"contentType": contentType,
		"sizeBytes":   header.Size,
	})
}
