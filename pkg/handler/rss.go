package handler

import (
	"fmt"
	"net/http"

	"github.com/TencentBlueKing/gopkg/conv"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/logging"
	"github.com/keykomi/webblog/pkg/model"
	"github.com/keykomi/webblog/pkg/store"
	"github.com/keykomi/webblog/pkg/utils/ginx"
	"github.com/keykomi/webblog/pkg/utils/markdownx"
)

// RSSHandler RSS 订阅接口
type RSSHandler struct {
	store *store.ArticleStore
}

// NewRSSHandler ...
func NewRSSHandler(s *store.ArticleStore) *RSSHandler {
	return &RSSHandler{store: s}
}

// GetRSS 输出全部文章的 Atom 订阅
func (h *RSSHandler) GetRSS(c *gin.Context) {
	articles, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		logging.GetWebLogger().Errorf("failed to load articles for rss: %s", err)
		ginx.SetErrResp(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	feed := &feeds.Feed{
		Title:       "KeykoMI's Blog",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s://%s/", envs.DomainScheme, envs.Domain)},
		Description: "personal blog about technology, thoughts and life",
		Author:      &feeds.Author{Name: model.DefaultAuthor, Email: envs.ContactEmail},
	}
	for _, article := range articles {
		if feed.Updated.IsZero() {
			// 列表按发布时间倒序，首条即最近更新时间
			feed.Updated = article.PublishedAt
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%d", article.ID),
			Title:       article.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s://%s/article/%d", envs.DomainScheme, envs.Domain, article.ID)},
			Description: markdownx.ToHTML(conv.StringToBytes(article.Content)),
			Author:      &feeds.Author{Name: article.Author, Email: envs.ContactEmail},
			Created:     article.PublishedAt,
			Updated:     article.PublishedAt,
		})
	}
	atom, err := feed.ToAtom()
	if err != nil {
		logging.GetWebLogger().Errorf("failed to render rss feed: %s", err)
		ginx.SetErrResp(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// 不直接使用 c.XML() 以避免被包装 <string></string>
	c.Writer.Header().Set("Content-Type", "application/xml; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)
	_, _ = c.Writer.Write([]byte(atom))
}
