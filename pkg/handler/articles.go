package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/logging"
	"github.com/keykomi/webblog/pkg/store"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

// ArticleHandler 文章相关接口
type ArticleHandler struct {
	store *store.ArticleStore
}

// NewArticleHandler ...
func NewArticleHandler(s *store.ArticleStore) *ArticleHandler {
	return &ArticleHandler{store: s}
}

// List 分页获取文章列表（按发布时间倒序）
func (h *ArticleHandler) List(c *gin.Context) {
	page, limit := ginx.GetPageFromQuery(c), ginx.GetLimitFromQuery(c)

	articles, total, err := h.store.List(c.Request.Context(), page, limit)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, ginx.PaginatedResponse{
		Items: articles.ToDTOs(), Total: total, Page: page, Limit: limit,
	})
}

// ListAll 获取全部文章
func (h *ArticleHandler) ListAll(c *gin.Context) {
	articles, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, articles.ToDTOs())
}

// Retrieve 获取单篇文章
func (h *ArticleHandler) Retrieve(c *gin.Context) {
	id, ok := getArticleID(c)
	if !ok {
		return
	}

	article, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, article.ToDTO())
}

// Create 发布文章（需要登录）
func (h *ArticleHandler) Create(c *gin.Context) {
	var input store.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	article, err := h.store.Create(c.Request.Context(), input)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, article.ToDTO())
}

// Update 全量更新文章（需要登录）
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := getArticleID(c)
	if !ok {
		return
	}

	var input store.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	article, err := h.store.Update(c.Request.Context(), id, input)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, article.ToDTO())
}

// Patch 部分更新文章（需要登录）
func (h *ArticleHandler) Patch(c *gin.Context) {
	id, ok := getArticleID(c)
	if !ok {
		return
	}

	var patch store.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	article, err := h.store.Patch(c.Request.Context(), id, patch)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, article.ToDTO())
}

// Delete 删除文章（需要登录）
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := getArticleID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusNoContent, nil)
}

// Search 在标题与标签中搜索文章
func (h *ArticleHandler) Search(c *gin.Context) {
	page, limit := ginx.GetPageFromQuery(c), ginx.GetLimitFromQuery(c)

	articles, total, err := h.store.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		h.setStoreErrResp(c, err)
		return
	}
	ginx.SetData(c, http.StatusOK, ginx.PaginatedResponse{
		Items: articles.ToDTOs(), Total: total, Page: page, Limit: limit,
	})
}

// readCountResponse 阅读数接口响应体
type readCountResponse struct {
	ReadCount int64  `json:"readCount"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// IncrementRead 文章阅读数 +1。服务端不做去重，
// 是否触发由客户端阅读门限（滚动到底 + 停留时长 + 会话内一次）决定
func (h *ArticleHandler) IncrementRead(c *gin.Context) {
	id, ok := getArticleID(c)
	if !ok {
		return
	}

	count, err := h.store.IncrementReadCount(c.Request.Context(), id)
	if errors.Is(err, store.ErrArticleNotFound) {
		ginx.SetData(c, http.StatusNotFound, readCountResponse{
			ReadCount: 0, Success: false, Message: "Article not found",
		})
		return
	}
	if err != nil {
		logging.GetWebLogger().Errorf("failed to increment read count: %s", err)
		ginx.SetData(c, http.StatusInternalServerError, readCountResponse{
			ReadCount: 0, Success: false, Message: "Failed to increment read count",
		})
		return
	}
	ginx.SetData(c, http.StatusOK, readCountResponse{
		ReadCount: count, Success: true, Message: "Read count incremented successfully",
	})
}

// 将存储层错误转换为响应
func (h *ArticleHandler) setStoreErrResp(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidArticle):
		ginx.SetErrResp(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrArticleNotFound):
		ginx.SetErrResp(c, http.StatusNotFound, "Article not found")
	default:
		logging.GetWebLogger().Errorf("article store error: %s", err)
		ginx.SetErrResp(c, http.StatusInternalServerError, "Internal server error")
	}
}

// 解析路径中的文章 ID，非法时直接写入 400 响应
func getArticleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ginx.SetErrResp(c, http.StatusBadRequest, "invalid article id")
		return 0, false
	}
	return id, true
}
