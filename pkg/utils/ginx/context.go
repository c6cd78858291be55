package ginx

import (
	"github.com/gin-gonic/gin"

	"github.com/keykomi/webblog/pkg/envs"
)

const (
	// RequestIDKey ...
	RequestIDKey = "requestID"
	// UsernameKey ...
	UsernameKey = "username"
	// ErrorKey ...
	ErrorKey = "error"
)

// GetRequestID ...
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// SetRequestID ...
func SetRequestID(c *gin.Context, requestID string) {
	c.Set(RequestIDKey, requestID)
}

// GetUsername 获取当前登录用户名（由认证中间件设置）
func GetUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

// SetUsername ...
func SetUsername(c *gin.Context, username string) {
	c.Set(UsernameKey, username)
}

// GetError ...
func GetError(c *gin.Context) (any, bool) {
	return c.Get(ErrorKey)
}

// SetError ...
func SetError(c *gin.Context, err error) {
	c.Set(ErrorKey, err)
}

// GetClientIP 获取客户端 IP，优先使用反向代理透传的 Header
func GetClientIP(c *gin.Context) string {
	if envs.RealClientIPHeaderKey != "" {
		return c.GetHeader(envs.RealClientIPHeaderKey)
	}
	return c.ClientIP()
}
