package version

import "fmt"

// 以下变量值可通过 --ldflags 的方式修改
var (
	// Version 版本号
	Version = "dev"

	// GitCommit 构建时的 Git Commit
	GitCommit = "unknown"

	// BuildTime 构建时间
	BuildTime = "unknown"
)

// GetVersion 获取版本信息
func GetVersion() string {
	return fmt.Sprintf("Version: %s\nGitCommit: %s\nBuildTime: %s", Version, GitCommit, BuildTime)
}
