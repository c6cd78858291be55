// Package migration stores all database migrations
package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/keykomi/webblog/pkg/auth"
	"github.com/keykomi/webblog/pkg/envs"
	"github.com/keykomi/webblog/pkg/infras/database"
	"github.com/keykomi/webblog/pkg/model"
)

func init() {
	// Do Not Edit Migration ID!
	migrationID := "20250901_153000"

	database.RegisterMigration(&gormigrate.Migration{
		ID: migrationID,
		Migrate: func(tx *gorm.DB) error {
			logApplying(migrationID)

			if err := tx.AutoMigrate(&model.Article{}, &model.User{}); err != nil {
				return err
			}
			return seedAuthor(tx)
		},
		Rollback: func(tx *gorm.DB) error {
			logRollingBack(migrationID)

			return tx.Migrator().DropTable(&model.Article{}, &model.User{})
		},
	})
}

// 初始化博客作者账号（未配置初始密码时跳过，需要另外手动创建）
func seedAuthor(tx *gorm.DB) error {
	if envs.AuthorPassword == "" {
		return nil
	}

	hashed, err := auth.HashPassword(envs.AuthorPassword)
	if err != nil {
		return err
	}

	author := model.User{
		Username:       envs.AuthorUsername,
		Mail:           envs.AuthorMail,
		HashedPassword: hashed,
	}
	return tx.Where("username = ?", author.Username).FirstOrCreate(&author).Error
}
