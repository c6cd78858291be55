package model

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	// DefaultAuthor 文章默认作者
	DefaultAuthor = "KeykoMI"

	// DefaultImageURL 文章默认封面图
	DefaultImageURL = "/placeholder-article.jpg"

	// PublishedAtLayout 文章发布时间的序列化格式
	PublishedAtLayout = "2006-01-02T15:04:05"
)

// Article 文章
type Article struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content" gorm:"type:text"`
	ReadCount   int64     `json:"readCount" gorm:"not null;default:0"`
	PublishedAt time.Time `json:"publishedAt"`
	ImageURL    string    `json:"imageURL" gorm:"type:varchar(500)"`
	Author      string    `json:"author" gorm:"type:varchar(100)"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:text"`
	// TagsText 标签的换行拼接展开列，仅用于 LIKE 检索，不对外暴露
	TagsText string `json:"-" gorm:"type:text"`
}

// Articles 文章列表
type Articles []Article

// BeforeCreate 创建前填充默认值
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now()
	}
	if a.Author == "" {
		a.Author = DefaultAuthor
	}
	if a.ImageURL == "" {
		a.ImageURL = DefaultImageURL
	}
	return nil
}

// BeforeSave 创建与更新前统一归一化标签，并维护检索用的展开列
func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.Tags = NormalizeTags(a.Tags)
	a.TagsText = strings.Join(a.Tags, "\n")
	return nil
}

// ArticleDTO 文章 API 表示
type ArticleDTO struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ReadCount   int64    `json:"read_count"`
	PublishedAt string   `json:"published_at"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author"`
}

// ToDTO ...
func (a Article) ToDTO() ArticleDTO {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleDTO{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		ReadCount:   a.ReadCount,
		PublishedAt: a.PublishedAt.Format(PublishedAtLayout),
		ImageURL:    a.ImageURL,
		Tags:        tags,
		Author:      a.Author,
	}
}

// ToDTOs ...
func (as Articles) ToDTOs() []ArticleDTO {
	dtos := make([]ArticleDTO, 0, len(as))
	for _, a := range as {
		dtos = append(dtos, a.ToDTO())
	}
	return dtos
}

// NormalizeTags 标签归一化：去首尾空白，转小写，去重（保留首次出现顺序）
func NormalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		cleaned = append(cleaned, t)
	}
	return lo.Uniq(cleaned)
}
