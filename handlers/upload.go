package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"inkwell/utils"
)

// Upload accepts a single multipart file under the "post" field,
// stores it under the images directory and returns its public URL.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("post")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, utils.KindValidationFailed, "Image upload failed")
		return
	}

	name, err := utils.SaveUpload(file, filepath.Join(h.cfg.UploadDir, "images"), "post")
	if err != nil {
		utils.Sugar.Errorf("upload: saving file: %v", err)
		utils.Fail(c, http.StatusInternalServerError, utils.KindInternal, "Image upload failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"image_url": h.cfg.PublicBaseURL + "/images/" + name,
	})
}
