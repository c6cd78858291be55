package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/utils/uuid"
)

// ErrNotConfigured 图床凭证未配置
var ErrNotConfigured = errors.New("image upload client id not configured")

// imgurResponse 图床 API 响应结构
type imgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
		Type string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Service 图片上传服务，将图片字节转发至 Imgur 协议兼容的图床并返回公开 URL
type Service struct {
	endpoint string
	clientID string
	client   *http.Client
}

// NewService ...
func NewService(endpoint, clientID string) *Service {
	return &Service{
		endpoint: endpoint,
		clientID: clientID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadImage 上传单张图片，filename 仅用于生成存储对象名
func (s *Service) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	if s.clientID == "" {
		return "", ErrNotConfigured
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "failed to read file")
	}

	// 图床 API 使用 multipart/form-data 承载 base64 内容
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err = writer.WriteField("image", base64.StdEncoding.EncodeToString(fileBytes)); err != nil {
		return "", errors.Wrap(err, "failed to write request body")
	}
	if err = writer.WriteField("type", "base64"); err != nil {
		return "", errors.Wrap(err, "failed to write request body")
	}
	if err = writer.WriteField("name", genObjectName(filename)); err != nil {
		return "", errors.Wrap(err, "failed to write request body")
	}
	_ = writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &requestBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}

	var uploadResp imgurResponse
	if err = json.Unmarshal(body, &uploadResp); err != nil {
		return "", errors.Wrap(err, "failed to parse response")
	}
	if !uploadResp.Success {
		return "", errors.Errorf("upload rejected by storage: status %d", uploadResp.Status)
	}
	return uploadResp.Data.Link, nil
}

// 生成存储对象名：articles/<时间戳>-<uuid>-<原始文件名>
func genObjectName(filename string) string {
	return fmt.Sprintf("articles/%d-%s-%s", time.Now().Unix(), uuid.GenUUID4(), filename)
}
