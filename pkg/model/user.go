package model

import "time"

// User 博客作者账号（单用户，由迁移初始化）
type User struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Mail           string    `json:"mail" gorm:"type:varchar(100);uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time `json:"createdAt"`
}
