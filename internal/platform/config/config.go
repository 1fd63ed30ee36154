package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string       `mapstructure:"mode"`
	Address string       `mapstructure:"address"`
	Cors    CorsConfig   `mapstructure:"cors"`
	Cookie  CookieConfig `mapstructure:"cookie"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// CookieConfig 控制本服务下发的cookie属性
type CookieConfig struct {
	Secure bool `mapstructure:"secure"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Driver string      `mapstructure:"driver"`
	DSN    string      `mapstructure:"dsn"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig 定义了Redis的配置，Address为空表示不启用Redis
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled 报告是否配置了Redis
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

// AdminConfig 定义了管理员登录和会话令牌的配置
type AdminConfig struct {
	// PasswordHash 是bcrypt哈希，优先于明文Password
	PasswordHash string        `mapstructure:"passwordHash"`
	Password     string        `mapstructure:"password"`
	TokenSecret  string        `mapstructure:"tokenSecret"`
	SessionTTL   time.Duration `mapstructure:"sessionTTL"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:5173"})
	v.SetDefault("server.cookie.secure", false)
	v.SetDefault("database.driver", DriverSqlite)
	v.SetDefault("database.dsn", "khatira.db")
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("admin.passwordHash", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.tokenSecret", "")
	v.SetDefault("admin.sessionTTL", 12*time.Hour)
	v.SetDefault("log.level", "info")
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 配置文件是可选的，缺失时使用默认值和环境变量
func LoadConfig(searchPaths ...string) (*Config, error) {
	// .env 文件同样是可选的
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("无法加载.env文件: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"./config", "."}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	// 允许通过环境变量覆盖配置，例如 ADMIN_PASSWORD=...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("无法读取配置文件: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置的必填项和取值范围
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("不支持的服务器模式: %q", c.Server.Mode)
	}
	switch c.Database.Driver {
	case DriverSqlite, DriverPostgres:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn 不能为空")
	}
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return errors.New("必须配置 admin.passwordHash 或 admin.password")
	}
	if c.Admin.SessionTTL <= 0 {
		return errors.New("admin.sessionTTL 必须为正数")
	}
	return nil
}
