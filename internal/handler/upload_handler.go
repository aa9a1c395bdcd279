package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// uploadFields are the multipart field names accepted for an image, in order.
var uploadFields = []string{"file", "image"}

// UploadImage 处理图片上传请求，返回公开访问地址和像素尺寸。
func (a *API) UploadImage(c *gin.Context) {
	for _, field := range uploadFields {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		uploaded, err := a.uploads.SaveFile(file)
		if err != nil {
			a.respondServiceError(c, err, "failed to save upload")
			return
		}
		a.logger.Info("image uploaded",
			zap.String("filename", uploaded.Filename),
			zap.Int64("size", uploaded.Size),
		)
		c.JSON(http.StatusOK, uploaded)
		return
	}
	respondError(c, http.StatusBadRequest, "no image file in request")
}
