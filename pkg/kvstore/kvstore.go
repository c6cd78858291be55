// Package kvstore 提供命令行客户端使用的本地键值存储：
// 文件存储对应浏览器 localStorage（跨进程持久），
// 内存存储对应 sessionStorage（仅当前会话有效）
package kvstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Store 键值存储抽象
type Store interface {
	// Get 读取键值，键不存在时第二个返回值为 false
	Get(key string) ([]byte, bool, error)
	// Set 写入键值，覆盖已有内容
	Set(key string, value []byte) error
	// Delete 删除键，键不存在不视为错误
	Delete(key string) error
}

// FileStore 目录文件形式的键值存储，一个键对应一个文件
type FileStore struct {
	baseDir string
}

// NewFileStore ...
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Get ...
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	value, err := os.ReadFile(s.filePath(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key %s", key)
	}
	return value, true, nil
}

// Set ...
func (s *FileStore) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.baseDir, 0o700); err != nil {
		return errors.Wrap(err, "failed to create state dir")
	}
	if err := os.WriteFile(s.filePath(key), value, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}
	return nil
}

// Delete ...
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.filePath(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete key %s", key)
	}
	return nil
}

// 键名转文件路径，路径分隔符替换掉避免逃逸出存储目录
func (s *FileStore) filePath(key string) string {
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.baseDir, key)
}

// MemStore 进程内键值存储
type MemStore struct {
	mu      sync.RWMutex
	mapping map[string][]byte
}

// NewMemStore ...
func NewMemStore() *MemStore {
	return &MemStore{mapping: map[string][]byte{}}
}

// Get ...
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.mapping[key]
	return value, ok, nil
}

// Set ...
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mapping[key] = value
	return nil
}

// Delete ...
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.mapping, key)
	return nil
}
