package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keykomi/webblog/pkg/utils/ginx"
)

var robotsTxt = `User-agent: *
Allow: /
Disallow: /api/
`

// Healthz 健康检查
func Healthz(c *gin.Context) {
	ginx.SetData(c, http.StatusOK, gin.H{"status": "UP", "message": "Backend is running"})
}

// GetRobotsTxt robots.txt
func GetRobotsTxt(c *gin.Context) {
	c.String(http.StatusOK, robotsTxt)
}

// NotFound 404
func NotFound(c *gin.Context) {
	ginx.SetErrResp(c, http.StatusNotFound, "resource not found")
}
