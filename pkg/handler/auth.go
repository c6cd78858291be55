package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/logging"
	"github.com/keykomi/webblog/pkg/store"
	"github.com/keykomi/webblog/pkg/utils/ginx"
)

// LoginRequest 登录请求体
type LoginRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 登录响应体
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username"`
	Mail        string `json:"mail"`
}

// AuthHandler 登录接口
type AuthHandler struct {
	users  *store.UserStore
	issuer *auth.TokenIssuer
}

// NewAuthHandler ...
func NewAuthHandler(users *store.UserStore, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// Login 作者登录，签发 Bearer Token。
// 用户名不存在与密码错误返回同样的提示，不暴露具体是哪个字段不对
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.SetErrResp(c, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.users.FindByLogin(c.Request.Context(), req.Login)
	if errors.Is(err, store.ErrUserNotFound) {
		logging.GetWebLogger().Warnf("authentication failed for user: %s", req.Login)
		ginx.SetErrResp(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		logging.GetWebLogger().Errorf("user store error: %s", err)
		ginx.SetErrResp(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		logging.GetWebLogger().Warnf("authentication failed for user: %s", req.Login)
		ginx.SetErrResp(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.issuer.Issue(user.Username)
	if err != nil {
		logging.GetWebLogger().Errorf("failed to issue token: %s", err)
		ginx.SetErrResp(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	logging.GetWebLogger().Infof("user %s authenticated successfully", user.Username)
	ginx.SetResp(c, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   auth.TokenType,
		ExpiresIn:   h.issuer.Expiration(),
		Username:    user.Username,
		Mail:        user.Mail,
	})
}
