package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/model"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// UserStore 用户存储
type UserStore struct {
	db *gorm.DB
}

// NewUserStore ...
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByLogin 根据用户名或邮箱查找用户
func (s *UserStore) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR mail = ?", login, login).
		First(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	return &user, nil
}
