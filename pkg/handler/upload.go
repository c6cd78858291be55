package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/logging"
	"github.com/keykomi/webblog/pkg/upload"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

// UploadHandler 图片上传接口
type UploadHandler struct {
	svc *upload.Service
}

// NewUploadHandler ...
func NewUploadHandler(svc *upload.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadImage 接收 multipart 文件并转发至图床（需要登录）。
// 不做尺寸校验 / 压缩，图床返回什么 URL 就是什么 URL
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "failed to open uploaded file")
		return
	}
	defer file.Close()

	url, err := h.svc.UploadImage(c.Request.Context(), fileHeader.Filename, file)
	if errors.Is(err, upload.ErrNotConfigured) {
		ginx.SetErrResp(c, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}
	if err != nil {
		logging.GetWebLogger().Errorf("image upload failed: %s", err)
		ginx.SetErrResp(c, http.StatusBadGateway, "failed to upload image")
		return
	}

	ginx.SetData(c, http.StatusOK, gin.H{"url": url})
}
