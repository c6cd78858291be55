package ginx

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// RequestIDHeaderKey ...
const RequestIDHeaderKey = "X-Request-ID"

// AuthorizationHeaderKey ...
const AuthorizationHeaderKey = "Authorization"

// bearerPrefix Bearer Token 前缀
const bearerPrefix = "Bearer "

// ErrNilRequestBody ...
var ErrNilRequestBody = errors.New("request Body is nil")

// ReadRequestBody will return the body in []byte, without change the origin body
func ReadRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, ErrNilRequestBody
	}

	body, err := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, err
}

// GetBearerToken 从 Authorization Header 中提取 Bearer Token
func GetBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(AuthorizationHeaderKey)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
