package database

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
)

var (
	migSet         *migrationSet
	migSetInitOnce sync.Once
)

// migrationSet 迁移文件集合
type migrationSet struct {
	mapping map[string]*gormigrate.Migration
}

// 注册迁移文件，重复的 ID 视为错误
func (s *migrationSet) register(m *gormigrate.Migration) error {
	if _, ok := s.mapping[m.ID]; ok {
		return errors.Errorf("migration %s already registered", m.ID)
	}
	s.mapping[m.ID] = m
	return nil
}

// 按 ID（即时间）排序后导出迁移列表
func (s *migrationSet) sorted() []*gormigrate.Migration {
	migrations := make([]*gormigrate.Migration, 0, len(s.mapping))
	for _, m := range s.mapping {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations
}

// 初始化数据库迁移集
func getMigrationSet() *migrationSet {
	migSetInitOnce.Do(func() {
		migSet = &migrationSet{
			mapping: map[string]*gormigrate.Migration{},
		}
	})
	return migSet
}

// RegisterMigration 注册迁移文件
func RegisterMigration(m *gormigrate.Migration) {
	if err := getMigrationSet().register(m); err != nil {
		log.Fatalf("failed to register migration: %s", err)
	}
}

// RunMigrate 执行数据库迁移，migrationID 为空时迁移到最新版本
func RunMigrate(ctx context.Context, migrationID string) error {
	migrations := getMigrationSet().sorted()
	if len(migrations) == 0 {
		return errors.New("no migration registered")
	}

	m := gormigrate.New(Client(ctx), gormigrate.DefaultOptions, migrations)
	if migrationID == "" {
		return m.Migrate()
	}
	return m.MigrateTo(migrationID)
}

// Version 获取数据库当前迁移版本
func Version(ctx context.Context) (string, error) {
	var version string
	err := Client(ctx).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&version).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to query migration version")
	}
	if version == "" {
		version = "none"
	}
	return version, nil
}

// GenMigrationID 生成迁移 ID（时间戳格式）
func GenMigrationID() string {
	return time.Now().Format("20060102_150405")
}
