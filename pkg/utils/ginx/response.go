package ginx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 通用响应体（登录等接口使用的信封格式）
type Response struct {
	Data    any    `json:"data,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse 分页响应体
type PaginatedResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// SetData 为指定的 gin.Context 设置裸数据响应（文章等资源接口直接返回 DTO）
func SetData(c *gin.Context, statusCode int, data any) {
	// 204 状态码特殊处理
	if statusCode == http.StatusNoContent {
		c.Status(statusCode)
		return
	}
	c.JSON(statusCode, data)
}

// SetResp 为指定的 gin.Context 设置成功信封响应（建议 200 <= statusCode < 300）
func SetResp(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Response{Data: data, Success: true})
}

// SetErrResp 为指定的 gin.Context 设置错误响应数据
func SetErrResp(c *gin.Context, statusCode int, message string) {
	c.Set(ErrorKey, message)
	c.JSON(statusCode, Response{Success: false, Message: message})
}
