package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

func Cors() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: strings.Split(envs.AllowOrigins, ","),
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", ginx.AuthorizationHeaderKey, ginx.RequestIDHeaderKey,
		},
		ExposeHeaders: []string{ginx.RequestIDHeaderKey},
		MaxAge:        12 * time.Hour,
	}
	return cors.New(cfg)
}
