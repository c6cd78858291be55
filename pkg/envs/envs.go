package envs

import (
	"os"
	"path/filepath"
	"time"

	// 在读取配置前自动加载 .env 文件
	_ "github.com/joho/godotenv/autoload"

	"github.com/keykomi/webblog/pkg/common/runmode"
	"github.com/keykomi/webblog/pkg/utils/envx"
)

// 以下变量值可通过环境变量指定
var (
	// BaseDir 项目根目录（make-migration 生成迁移文件时使用）
	BaseDir = envx.Get("BASE_DIR", ".")

	// Domain 服务域名
	Domain = envx.Get("DOMAIN", "blog.keykomi.com")

	// DomainScheme 服务域名协议
	DomainScheme = envx.Get("DOMAIN_SCHEME", "https")

	// ServerPort web 服务启用端口
	ServerPort = envx.Get("SERVER_PORT", "8080")

	// GinRunMode web 服务运行模式
	GinRunMode = envx.Get("GIN_RUN_MODE", runmode.Release)

	// AllowOrigins 允许跨域的来源（逗号分隔）
	AllowOrigins = envx.Get("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:3001")

	// LogFileBaseDir 日志存放目录
	LogFileBaseDir = envx.Get("LOG_FILE_BASE_DIR", "logs")

	// LogLevel 日志等级（panic/fatal/error/warn/info/debug/trace）
	LogLevel = envx.Get("LOG_LEVEL", "info")

	// RealClientIPHeaderKey 反向代理透传的客户端真实 IP Header
	RealClientIPHeaderKey = envx.Get("REAL_CLIENT_IP_HEADER_KEY", "")

	// ContactEmail 联系邮箱
	ContactEmail = envx.Get("CONTACT_EMAIL", "keykomi@keykomi.com")
)

// 数据库相关配置
var (
	// MysqlHost ...
	MysqlHost = envx.Get("MYSQL_HOST", "127.0.0.1")

	// MysqlPort ...
	MysqlPort = envx.Get("MYSQL_PORT", "3306")

	// MysqlUser ...
	MysqlUser = envx.Get("MYSQL_USER", "root")

	// MysqlPassword ...
	MysqlPassword = envx.Get("MYSQL_PASSWORD", "")

	// MysqlDatabase ...
	MysqlDatabase = envx.Get("MYSQL_DATABASE", "webblog")

	// MysqlCharSet ...
	MysqlCharSet = envx.Get("MYSQL_CHARSET", "utf8mb4")
)

// 认证相关配置
var (
	// JWTSigningKey 签发 Token 使用的密钥，生产环境必须修改
	JWTSigningKey = envx.Get("JWT_SIGNING_KEY", "webblog-dev-signing-key")

	// JWTExpiration Token 有效期
	JWTExpiration = envx.GetDuration("JWT_EXPIRATION", 24*time.Hour)

	// AuthorUsername 博客作者用户名（唯一账号）
	AuthorUsername = envx.Get("AUTHOR_USERNAME", "keykomi")

	// AuthorMail 博客作者邮箱
	AuthorMail = envx.Get("AUTHOR_MAIL", "keykomi@keykomi.com")

	// AuthorPassword 博客作者初始密码，仅在数据库迁移初始化账号时使用
	AuthorPassword = envx.Get("AUTHOR_PASSWORD", "")
)

// 图片上传相关配置
var (
	// ImageUploadEndpoint 图床上传 API 地址
	ImageUploadEndpoint = envx.Get("IMAGE_UPLOAD_ENDPOINT", "https://api.imgur.com/3/image")

	// ImageUploadClientID 图床 API 凭证
	ImageUploadClientID = envx.Get("IMAGE_UPLOAD_CLIENT_ID", "")
)

// 命令行客户端相关配置
var (
	// StateBaseDir 本地状态（Token / 草稿）存放目录
	StateBaseDir = envx.Get("STATE_BASE_DIR", defaultStateBaseDir())
)

func defaultStateBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".webblog"
	}
	return filepath.Join(home, ".webblog")
}
