package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %s", err)
	}
	if err = db.AutoMigrate(&Article{}); err != nil {
		t.Fatalf("failed to migrate: %s", err)
	}
	return db
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"js", "java"}, NormalizeTags([]string{"JS", "js", "Java"}))
	assert.Equal(t, []string{"travel"}, NormalizeTags([]string{" Travel ", "travel"}))
	assert.Empty(t, NormalizeTags([]string{"", "  "}))
	assert.Empty(t, NormalizeTags(nil))
}

func TestArticleBeforeCreateDefaults(t *testing.T) {
	db := setupTestDB(t)

	article := Article{Title: "Пример статьи", Content: "content", Tags: []string{"Life", "life"}}
	assert.NoError(t, db.Create(&article).Error)

	var stored Article
	assert.NoError(t, db.First(&stored, article.ID).Error)

	assert.Equal(t, DefaultAuthor, stored.Author)
	assert.Equal(t, DefaultImageURL, stored.ImageURL)
	assert.Equal(t, int64(0), stored.ReadCount)
	assert.Equal(t, []string{"life"}, stored.Tags)
	// 检索展开列与归一化后的标签保持同步
	assert.Equal(t, "life", stored.TagsText)
	assert.False(t, stored.PublishedAt.IsZero())
}

func TestArticleBeforeCreateKeepsExplicitValues(t *testing.T) {
	db := setupTestDB(t)

	publishedAt := time.Date(2025, 3, 23, 12, 34, 56, 0, time.UTC)
	article := Article{
		Title:       "Путешествие в Корею",
		Content:     "content",
		ImageURL:    "https://example.com/korea.jpg",
		Author:      "guest",
		PublishedAt: publishedAt,
	}
	assert.NoError(t, db.Create(&article).Error)

	var stored Article
	assert.NoError(t, db.First(&stored, article.ID).Error)

	assert.Equal(t, "guest", stored.Author)
	assert.Equal(t, "https://example.com/korea.jpg", stored.ImageURL)
	assert.Equal(t, publishedAt.Unix(), stored.PublishedAt.Unix())
}

func TestArticleToDTO(t *testing.T) {
	publishedAt := time.Date(2025, 3, 23, 12, 34, 56, 0, time.UTC)
	article := Article{
		ID:          7,
		Title:       "title",
		Content:     "content",
		ReadCount:   42,
		PublishedAt: publishedAt,
		ImageURL:    DefaultImageURL,
		Author:      DefaultAuthor,
	}

	dto := article.ToDTO()
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, "2025-03-23T12:34:56", dto.PublishedAt)
	// tags 为空时序列化为空数组而非 null
	assert.NotNil(t, dto.Tags)
	assert.Empty(t, dto.Tags)
}
