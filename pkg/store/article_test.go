package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %s", err)
	}
	if err = db.AutoMigrate(&model.Article{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate: %s", err)
	}
	return db
}

func createTestArticle(t *testing.T, s *ArticleStore, title string, tags ...string) *model.Article {
	article, err := s.Create(context.Background(), ArticleInput{
		Title:   title,
		Content: "# " + title + "\n\ncontent",
		Tags:    tags,
	})
	require.NoError(t, err)
	return article
}

func TestCreateThenGet(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	created, err := s.Create(ctx, ArticleInput{Title: "  Пример статьи  ", Content: "content"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.PublishedAt.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Пример статьи", got.Title)
	assert.Equal(t, "content", got.Content)
	assert.Equal(t, model.DefaultAuthor, got.Author)
	assert.Equal(t, model.DefaultImageURL, got.ImageURL)
	assert.Equal(t, int64(0), got.ReadCount)
}

func TestCreateValidation(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	_, err := s.Create(ctx, ArticleInput{Title: "   ", Content: "content"})
	assert.ErrorIs(t, err, ErrInvalidArticle)

	_, err = s.Create(ctx, ArticleInput{Title: "title", Content: "  "})
	assert.ErrorIs(t, err, ErrInvalidArticle)
}

func TestCreateNormalizesTags(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))

	article := createTestArticle(t, s, "title", "JS", "js", "Java")
	got, err := s.Get(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"js", "java"}, got.Tags)
}

func TestGetNotFound(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))

	_, err := s.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	s := NewArticleStore(db)
	ctx := context.Background()

	// 发布时间依次递增，列表应倒序返回
	for i := 1; i <= 5; i++ {
		article := model.Article{
			Title:       fmt.Sprintf("article %d", i),
			Content:     "content",
			PublishedAt: time.Date(2025, 1, i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&article).Error)
	}

	articles, total, err := s.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, articles, 2)
	assert.Equal(t, "article 5", articles[0].Title)
	assert.Equal(t, "article 4", articles[1].Title)

	articles, _, err = s.List(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "article 1", articles[0].Title)
}

func TestListAll(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))

	createTestArticle(t, s, "first")
	createTestArticle(t, s, "second")

	articles, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestUpdate(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	article := createTestArticle(t, s, "old title", "life")
	publishedAt := article.PublishedAt

	updated, err := s.Update(ctx, article.ID, ArticleInput{
		Title:    "new title",
		Content:  "new content",
		ImageURL: "https://example.com/new.jpg",
		Author:   "guest",
		Tags:     []string{"Travel"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, []string{"travel"}, updated.Tags)
	// 发布时间不可变
	assert.Equal(t, publishedAt.Unix(), updated.PublishedAt.Unix())

	// 更新后的文章必须还能正常读出（tags 列保持合法的序列化格式）
	got, err := s.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, []string{"travel"}, got.Tags)

	_, err = s.Update(ctx, 12345, ArticleInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestPatch(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	article := createTestArticle(t, s, "title", "life")

	newTitle := "patched title"
	patched, err := s.Patch(ctx, article.ID, ArticlePatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "patched title", patched.Title)
	// 未传入的字段保持原值
	assert.Equal(t, article.Content, patched.Content)
	assert.Equal(t, []string{"life"}, patched.Tags)

	// 更新标签后重新读出，校验归一化与序列化
	newTags := []string{"Travel", "travel", "Korea"}
	_, err = s.Patch(ctx, article.ID, ArticlePatch{Tags: &newTags})
	require.NoError(t, err)
	got, err := s.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"travel", "korea"}, got.Tags)

	blank := "   "
	_, err = s.Patch(ctx, article.ID, ArticlePatch{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidArticle)
}

func TestDelete(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	article := createTestArticle(t, s, "title")
	require.NoError(t, s.Delete(ctx, article.ID))

	_, err := s.Get(ctx, article.ID)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	assert.ErrorIs(t, s.Delete(ctx, article.ID), ErrArticleNotFound)
}

func TestSearchMatchesTitleOrTags(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	createTestArticle(t, s, "Путешествие в Корею", "travel")
	createTestArticle(t, s, "Пример статьи", "life")

	articles, total, err := s.Search(ctx, "travel", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, "Путешествие в Корею", articles[0].Title)

	_, total, err = s.Search(ctx, "nothing-matches", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestSearchCaseInsensitiveTitle(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	createTestArticle(t, s, "Korea Travel Guide", "travel")

	articles, _, err := s.Search(ctx, "KOREA", 1, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Korea Travel Guide", articles[0].Title)
}

func TestSearchLiteralMetacharacters(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	createTestArticle(t, s, "Plain title", "travel", "korea")

	// LIKE 通配符与 JSON 序列化符号都不应命中普通文章
	for _, query := range []string{"%", "_", ",", `"`, "["} {
		_, total, err := s.Search(ctx, query, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total, "query %q should not match", query)
	}

	// 标题中的字面 % 可以被检索到
	createTestArticle(t, s, "100% true story")
	articles, total, err := s.Search(ctx, "100%", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, "100% true story", articles[0].Title)
}

func TestIncrementReadCount(t *testing.T) {
	s := NewArticleStore(setupTestDB(t))
	ctx := context.Background()

	article := createTestArticle(t, s, "title")

	// 每次调用严格 +1，无论调用方身份
	for i := int64(1); i <= 3; i++ {
		count, err := s.IncrementReadCount(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	got, err := s.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ReadCount)

	_, err = s.IncrementReadCount(ctx, 12345)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}
