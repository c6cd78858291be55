package ginx

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const (
	// MaxPageSize 单页最大数量
	MaxPageSize = 50
	// DefaultPageSize 单页默认数量
	DefaultPageSize = 10
	// MinPage 最小页码数
	MinPage = 1
)

// GetLimitFromQuery ...
func GetLimitFromQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return DefaultPageSize
	}
	return lo.Min([]int{MaxPageSize, limit})
}

// GetPageFromQuery ...
func GetPageFromQuery(c *gin.Context) int {
	page, _ := strconv.Atoi(c.Query("page"))
	return lo.Max([]int{MinPage, page})
}
