// Package draft 管理本地的文章草稿。全局只有一个草稿位（固定键），
// 同一时间只能起草一篇文章，后写覆盖先写
package draft

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/keykomi/webblog/pkg/kvstore"
)

const (
	// StorageKey 草稿位的固定存储键
	StorageKey = "article_draft"

	// MaxAge 草稿最长保留时间，过期草稿在加载时丢弃
	MaxAge = 7 * 24 * time.Hour
)

// Draft 文章草稿，字段与文章创建入参一致
type Draft struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	ImageURL string    `json:"image_url"`
	Tags     []string  `json:"tags"`
	SavedAt  time.Time `json:"saved_at"`
}

// Manager 草稿管理器
type Manager struct {
	store kvstore.Store

	// 单元测试中需要控制当前时间
	now func() time.Time
}

// NewManager ...
func NewManager(store kvstore.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Save 保存草稿。所有字段均为空时不落盘，否则带时间戳覆盖写入草稿位
func (m *Manager) Save(d Draft) error {
	if isEmpty(d) {
		return nil
	}

	d.SavedAt = m.now()
	data, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "failed to marshal draft")
	}
	return m.store.Set(StorageKey, data)
}

// Load 加载草稿。草稿不存在、已过期或内容损坏时返回 (nil, false)，
// 过期与损坏的草稿顺便清理掉，调用方不感知差别
func (m *Manager) Load() (*Draft, bool) {
	data, ok, err := m.store.Get(StorageKey)
	if err != nil || !ok {
		return nil, false
	}

	var d Draft
	if err = json.Unmarshal(data, &d); err != nil {
		_ = m.Clear()
		return nil, false
	}
	if m.now().Sub(d.SavedAt) > MaxAge {
		_ = m.Clear()
		return nil, false
	}
	return &d, true
}

// Clear 清空草稿位
func (m *Manager) Clear() error {
	return m.store.Delete(StorageKey)
}

// IsReadyToPublish 草稿是否满足发布条件（标题与内容去空白后非空）
func IsReadyToPublish(d Draft) bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Content) != ""
}

// 判断草稿是否所有字段均为空
func isEmpty(d Draft) bool {
	if strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Content) != "" {
		return false
	}
	if strings.TrimSpace(d.ImageURL) != "" {
		return false
	}
	for _, tag := range d.Tags {
		if strings.TrimSpace(tag) != "" {
			return false
		}
	}
	return true
}
