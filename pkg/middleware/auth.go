package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

// AuthRequired 校验 Authorization Header 中的 Bearer Token，
// 写操作端点（发布文章 / 上传图片等）必须通过该中间件
func AuthRequired(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ginx.GetBearerToken(c.Request)
		if !ok {
			ginx.SetErrResp(c, http.StatusUnauthorized, "Authorization header is missing")
			c.Abort()
			return
		}

		username, err := issuer.Verify(token)
		if err != nil {
			ginx.SetErrResp(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		ginx.SetUsername(c, username)
		c.Next()
	}
}
