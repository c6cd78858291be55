package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/model"
	"github.com/keykomi/webblog/pkg/store"
	"github.com/keykomi/webblog/pkg/upload"
)

const (
	testUsername = "keykomi"
	testPassword = "do-not-guess-me"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %s", err)
	}
	if err = db.AutoMigrate(&model.Article{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate: %s", err)
	}

	hashed, err := auth.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username: testUsername, Mail: "keykomi@example.com", HashedPassword: hashed,
	}).Error)

	issuer := auth.NewTokenIssuer("test-signing-key", time.Hour)
	return New(db, issuer, upload.NewService("", "")), db
}

func doRequest(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *strings.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = strings.NewReader(string(data))
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func loginToken(t *testing.T, r *gin.Engine) string {
	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"login": testUsername, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]any)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "UP", resp["status"])
}

func TestLogin(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"login": testUsername, "password": testPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "Bearer", data["token_type"])
	assert.Equal(t, testUsername, data["username"])
}

func TestLoginByMail(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"login": "keykomi@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, _ := setupTestRouter(t)

	// 密码错误与用户不存在必须返回同样的提示
	for _, login := range []string{testUsername, "nobody"} {
		w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"login": login, "password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		resp := decodeBody(t, w)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Invalid credentials", resp["message"])
	}
}

func TestLoginValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"login": testUsername, "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Contains(t, resp["message"], "Validation failed")
}

func TestCreateRequiresAuth(t *testing.T) {
	r, db := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/articles", "", gin.H{
		"title": "untrusted", "content": "should not be stored",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "Authorization header is missing", resp["message"])

	// 未授权请求不应写库
	var count int64
	require.NoError(t, db.Model(&model.Article{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateInvalidToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/articles", "not-a-jwt", gin.H{
		"title": "untrusted", "content": "should not be stored",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "Invalid or expired token", resp["message"])
}

func TestArticleCRUDOverHTTP(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := loginToken(t, r)

	// 创建时只提供标题与正文，其余字段走默认值
	w := doRequest(r, http.MethodPost, "/api/articles", token, gin.H{
		"title": "Korea Travel Guide", "content": "# Seoul\n\nfirst stop", "tags": []string{"Travel", "travel"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	created := decodeBody(t, w)
	articleID := int64(created["id"].(float64))
	assert.Equal(t, model.DefaultAuthor, created["author"])
	assert.Equal(t, model.DefaultImageURL, created["image_url"])
	assert.Equal(t, []any{"travel"}, created["tags"])
	assert.Equal(t, float64(0), created["read_count"])

	// 获取
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/articles/%d", articleID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Korea Travel Guide", decodeBody(t, w)["title"])

	// 全量更新
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/articles/%d", articleID), token, gin.H{
		"title": "Korea Travel Guide (2nd ed.)", "content": "# Seoul & Busan", "tags": []string{"travel", "korea"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)
	assert.Equal(t, "Korea Travel Guide (2nd ed.)", updated["title"])
	// published_at 不随更新变化
	assert.Equal(t, created["published_at"], updated["published_at"])

	// 部分更新
	w = doRequest(r, http.MethodPatch, fmt.Sprintf("/api/articles/%d", articleID), token, gin.H{
		"image_url": "/covers/korea.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decodeBody(t, w)
	assert.Equal(t, "/covers/korea.jpg", patched["image_url"])
	assert.Equal(t, "Korea Travel Guide (2nd ed.)", patched["title"])

	// 删除
	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/articles/%d", articleID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/articles/%d", articleID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Article not found", decodeBody(t, w)["message"])
}

func TestRetrieveInvalidID(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/articles/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPagination(t *testing.T) {
	r, db := setupTestRouter(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&model.Article{
			Title:       fmt.Sprintf("article %d", i),
			Content:     "content",
			PublishedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	w := doRequest(r, http.MethodGet, "/api/articles?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(5), resp["total"])
	assert.Equal(t, float64(2), resp["page"])
	items := resp["items"].([]any)
	require.Len(t, items, 2)
	// 按发布时间倒序，第二页从第三新的开始
	assert.Equal(t, "article 2", items[0].(map[string]any)["title"])
}

func TestSearchOverHTTP(t *testing.T) {
	r, db := setupTestRouter(t)
	s := store.NewArticleStore(db)
	_, err := s.Create(context.Background(), store.ArticleInput{
		Title: "Trip notes", Content: "...", Tags: []string{"travel"},
	})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), store.ArticleInput{
		Title: "Daily life", Content: "...", Tags: []string{"life"},
	})
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/api/articles/search?q=travel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["total"])
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Trip notes", items[0].(map[string]any)["title"])
}

func TestIncrementReadOverHTTP(t *testing.T) {
	r, db := setupTestRouter(t)
	s := store.NewArticleStore(db)
	article, err := s.Create(context.Background(), store.ArticleInput{Title: "counted", Content: "..."})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/articles/%d/increment-read", article.ID)
	// 服务端不做去重，每次上报都 +1
	for i := int64(1); i <= 2; i++ {
		w := doRequest(r, http.MethodPost, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody(t, w)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, float64(i), resp["readCount"])
		assert.Equal(t, "Read count incremented successfully", resp["message"])
	}
}

func TestIncrementReadNotFound(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/articles/10086/increment-read", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, float64(0), resp["readCount"])
	assert.Equal(t, "Article not found", resp["message"])
}

func TestNoRoute(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/nonexistent", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}
