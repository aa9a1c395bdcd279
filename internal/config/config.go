package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 是所有环境变量的统一前缀，例如 PORTAL_DATABASE_PATH。
const EnvPrefix = "PORTAL"

const devJWTSecret = "portal-dev-jwt-secret"

// ErrJWTSecretMissing is returned by Validate when release mode runs on the development secret.
var ErrJWTSecretMissing = errors.New("jwt_secret must be set in release mode")

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string        `mapstructure:"listen_addr"`
	DatabasePath  string        `mapstructure:"database_path"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SessionSecret string        `mapstructure:"session_secret"`
	GinMode       string        `mapstructure:"gin_mode"`
	UploadDir     string        `mapstructure:"upload_dir"`
	UploadURLPath string        `mapstructure:"upload_url_path"`
	StaticDir     string        `mapstructure:"static_dir"`
	LogLevel      string        `mapstructure:"log_level"`
	EmbedTimeout  time.Duration `mapstructure:"embed_timeout"`
	SiteBaseURL   string        `mapstructure:"site_base_url"`
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_path", "portal.db")
	v.SetDefault("jwt_secret", devJWTSecret)
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("session_secret", "portal-dev-session-secret")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("upload_dir", "web/static/uploads")
	v.SetDefault("upload_url_path", "/static/uploads")
	v.SetDefault("static_dir", "web/static/assets")
	v.SetDefault("log_level", "info")
	v.SetDefault("embed_timeout", 10*time.Second)
	v.SetDefault("site_base_url", "http://localhost:8080")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")
}

// Load 读取配置：默认值 < 配置文件 < 环境变量。
// path 为空时在当前目录查找 config.yaml，找不到则只使用默认值与环境变量。
func Load(path string) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	path = strings.TrimSpace(path)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
	c.UploadDir = strings.TrimSpace(c.UploadDir)
	c.StaticDir = strings.TrimSpace(c.StaticDir)
	c.UploadURLPath = "/" + strings.Trim(strings.TrimSpace(c.UploadURLPath), "/")
	c.SiteBaseURL = strings.TrimRight(strings.TrimSpace(c.SiteBaseURL), "/")
	c.AdminEmail = strings.ToLower(strings.TrimSpace(c.AdminEmail))
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.EmbedTimeout <= 0 {
		c.EmbedTimeout = 10 * time.Second
	}
}

// Validate rejects configurations that are unsafe to serve.
func (c AppConfig) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if c.GinMode == "release" && c.JWTSecret == devJWTSecret {
		return ErrJWTSecretMissing
	}
	return nil
}
