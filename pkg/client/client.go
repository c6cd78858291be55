// Package client 是博客 API 的命令行客户端，
// Bearer Token 持久化在本地状态目录中，随请求自动携带
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/kvstore"
	"github.com/keykomi/webblog/pkg/model"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

// TokenStorageKey 本地状态中 Token 的存储键
const TokenStorageKey = "auth_token"

// ErrNotLoggedIn 本地没有可用 Token
var ErrNotLoggedIn = errors.New("not logged in")

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
	Mail        string `json:"mail"`
}

// CreateArticleRequest 文章发布请求
type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url,omitempty"`
	Tags     []string `json:"tags"`
}

// PaginatedArticles 文章分页结果
type PaginatedArticles struct {
	Items []model.ArticleDTO `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// 信封响应（登录等接口）
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
}

// Client 博客 API 客户端
type Client struct {
	baseURL string
	client  *http.Client
	state   kvstore.Store
}

// New ...
func New(baseURL string, state kvstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		state:   state,
	}
}

// Login 登录并把 Token 写入本地状态；登录失败时不写任何内容
func (c *Client) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	payload := map[string]string{"login": login, "password": password}

	var env envelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &env, false); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, errors.Errorf("login failed: %s", env.Message)
	}

	var result LoginResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse login response")
	}
	if result.AccessToken == "" {
		return nil, errors.New("login failed: no token received")
	}

	if err := c.state.Set(TokenStorageKey, []byte(result.AccessToken)); err != nil {
		return nil, errors.Wrap(err, "failed to persist token")
	}
	return &result, nil
}

// Token 读取本地保存的 Token
func (c *Client) Token() (string, bool) {
	value, ok, err := c.state.Get(TokenStorageKey)
	if err != nil || !ok {
		return "", false
	}
	return string(value), true
}

// Logout 清除本地 Token
func (c *Client) Logout() error {
	return c.state.Delete(TokenStorageKey)
}

// GetArticle 获取单篇文章
func (c *Client) GetArticle(ctx context.Context, id int64) (*model.ArticleDTO, error) {
	var article model.ArticleDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d", id), nil, &article, false); err != nil {
		return nil, err
	}
	return &article, nil
}

// ListArticles 分页获取文章列表
func (c *Client) ListArticles(ctx context.Context, page, limit int) (*PaginatedArticles, error) {
	path := fmt.Sprintf("/api/articles?page=%d&limit=%d", page, limit)

	var result PaginatedArticles
	if err := c.do(ctx, http.MethodGet, path, nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchArticles 搜索文章
func (c *Client) SearchArticles(ctx context.Context, query string, page, limit int) (*PaginatedArticles, error) {
	path := fmt.Sprintf("/api/articles/search?q=%s&page=%d&limit=%d", url.QueryEscape(query), page, limit)

	var result PaginatedArticles
	if err := c.do(ctx, http.MethodGet, path, nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateArticle 发布文章（需要已登录）
func (c *Client) CreateArticle(ctx context.Context, req CreateArticleRequest) (*model.ArticleDTO, error) {
	var article model.ArticleDTO
	if err := c.do(ctx, http.MethodPost, "/api/articles", req, &article, true); err != nil {
		return nil, err
	}
	return &article, nil
}

// IncrementRead 上报一次阅读，返回服务端最新阅读数
func (c *Client) IncrementRead(ctx context.Context, id int64) (int64, error) {
	var result struct {
		ReadCount int64  `json:"readCount"`
		Success   bool   `json:"success"`
		Message   string `json:"message"`
	}
	path := fmt.Sprintf("/api/articles/%d/increment-read", id)
	if err := c.do(ctx, http.MethodPost, path, nil, &result, false); err != nil {
		return 0, err
	}
	if !result.Success {
		return 0, errors.Errorf("increment rejected: %s", result.Message)
	}
	return result.ReadCount, nil
}

// UploadImage 上传本地图片文件，返回公开 URL（需要已登录）
func (c *Client) UploadImage(ctx context.Context, filePath string) (string, error) {
	token, ok := c.Token()
	if !ok {
		return "", ErrNotLoggedIn
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", errors.Wrap(err, "failed to build multipart body")
	}
	if _, err = io.Copy(part, file); err != nil {
		return "", errors.Wrap(err, "failed to read file")
	}
	_ = writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads/image", &body)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(ginx.AuthorizationHeaderKey, "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp.StatusCode, respBody)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err = json.Unmarshal(respBody, &result); err != nil {
		return "", errors.Wrap(err, "failed to parse response")
	}
	return result.URL, nil
}

// 发送请求并解析 JSON 响应；authed 为 true 时要求本地已有 Token
func (c *Client) do(ctx context.Context, method, path string, payload, out any, authed bool) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, ok := c.Token()
		if !ok {
			return ErrNotLoggedIn
		}
		req.Header.Set(ginx.AuthorizationHeaderKey, "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}

// 从错误响应体中提取 message
func apiError(statusCode int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return errors.Errorf("HTTP %d: %s", statusCode, env.Message)
	}
	return errors.Errorf("HTTP %d", statusCode)
}
