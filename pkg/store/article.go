package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/model"
)

var (
	// ErrArticleNotFound 文章不存在
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticle 文章字段校验失败
	ErrInvalidArticle = errors.New("invalid article")
)

// ArticleInput 文章创建 / 全量更新入参
type ArticleInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
}

// ArticlePatch 文章部分更新入参，nil 字段保持原值
type ArticlePatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	ImageURL *string   `json:"image_url"`
	Author   *string   `json:"author"`
	Tags     *[]string `json:"tags"`
}

// ArticleStore 文章存储
type ArticleStore struct {
	db *gorm.DB
}

// NewArticleStore ...
func NewArticleStore(db *gorm.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// List 按发布时间倒序分页获取文章
func (s *ArticleStore) List(ctx context.Context, page, limit int) (model.Articles, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Article{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count articles")
	}

	var articles model.Articles
	err := s.db.WithContext(ctx).
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&articles).
		Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list articles")
	}
	return articles, total, nil
}

// ListAll 按发布时间倒序获取全部文章
func (s *ArticleStore) ListAll(ctx context.Context) (model.Articles, error) {
	var articles model.Articles
	err := s.db.WithContext(ctx).Order("published_at DESC").Find(&articles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}
	return articles, nil
}

// Get 根据 ID 获取文章
func (s *ArticleStore) Get(ctx context.Context, id int64) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get article")
	}
	return &article, nil
}

// Create 创建文章，标题与内容为必填项
func (s *ArticleStore) Create(ctx context.Context, input ArticleInput) (*model.Article, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	article := model.Article{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Author:   input.Author,
		Tags:     input.Tags,
	}
	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create article")
	}
	return &article, nil
}

// Update 全量更新文章的可变字段（发布时间与阅读数不受影响）
func (s *ArticleStore) Update(ctx context.Context, id int64, input ArticleInput) (*model.Article, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 在查出的模型上整体覆盖可变字段后 Save，
	// 让 tags 走 gorm 的 JSON 序列化器（map 形式的 Updates 会绕过它）
	article.Title = strings.TrimSpace(input.Title)
	article.Content = input.Content
	article.ImageURL = input.ImageURL
	article.Author = input.Author
	article.Tags = input.Tags
	if err = s.db.WithContext(ctx).Save(article).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update article")
	}
	return article, nil
}

// Patch 部分更新文章，只修改显式传入的字段
func (s *ArticleStore) Patch(ctx context.Context, id int64, patch ArticlePatch) (*model.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, errors.Wrap(ErrInvalidArticle, "title cannot be blank")
		}
		article.Title = strings.TrimSpace(*patch.Title)
		changed = true
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, errors.Wrap(ErrInvalidArticle, "content cannot be blank")
		}
		article.Content = *patch.Content
		changed = true
	}
	if patch.ImageURL != nil {
		article.ImageURL = *patch.ImageURL
		changed = true
	}
	if patch.Author != nil {
		article.Author = *patch.Author
		changed = true
	}
	if patch.Tags != nil {
		article.Tags = *patch.Tags
		changed = true
	}

	if !changed {
		return article, nil
	}
	// 同 Update，经模型 Save 以保证 tags 序列化正确
	if err = s.db.WithContext(ctx).Save(article).Error; err != nil {
		return nil, errors.Wrap(err, "failed to patch article")
	}
	return article, nil
}

// Delete 删除文章
func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	ret := s.db.WithContext(ctx).Delete(&model.Article{}, id)
	if ret.Error != nil {
		return errors.Wrap(ret.Error, "failed to delete article")
	}
	if ret.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// LIKE 通配符转义，! 为转义字符（mysql 与 sqlite 都支持 ESCAPE 子句）
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search 在标题与标签中做大小写不敏感的字面子串匹配，分页返回
func (s *ArticleStore) Search(ctx context.Context, query string, page, limit int) (model.Articles, int64, error) {
	// 标签入库前已统一转为小写；匹配走换行拼接的展开列，
	// 避免 JSON 序列化列的引号 / 逗号被当成标签内容命中
	pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
	cond := s.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("LOWER(title) LIKE ? ESCAPE '!' OR tags_text LIKE ? ESCAPE '!'", pattern, pattern)

	var total int64
	if err := cond.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count search results")
	}

	var articles model.Articles
	err := cond.
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&articles).
		Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to search articles")
	}
	return articles, total, nil
}

// IncrementReadCount 阅读数 +1（单条原子更新语句，不做服务端去重）并返回最新值。
// 回读在同一事务内进行，更新语句持有的行锁保证返回值就是本次自增后的计数
func (s *ArticleStore) IncrementReadCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ret := tx.Model(&model.Article{}).
			Where("id = ?", id).
			UpdateColumn("read_count", gorm.Expr("read_count + 1"))
		if ret.Error != nil {
			return errors.Wrap(ret.Error, "failed to increment read count")
		}
		if ret.RowsAffected == 0 {
			return ErrArticleNotFound
		}

		return errors.Wrap(
			tx.Model(&model.Article{}).Where("id = ?", id).Pluck("read_count", &count).Error,
			"failed to read count back",
		)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// 校验创建 / 全量更新的必填字段
func validateInput(input ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errors.Wrap(ErrInvalidArticle, "title cannot be blank")
	}
	if strings.TrimSpace(input.Content) == "" {
		return errors.Wrap(ErrInvalidArticle, "content cannot be blank")
	}
	return nil
}
