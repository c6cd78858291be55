package envx

import (
	"os"
	"time"
)

// Get 获取环境变量值，若未设置则返回默认值
func Get(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// GetDuration 获取环境变量值并解析为 time.Duration，未设置或解析失败则返回默认值
func GetDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
