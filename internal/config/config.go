package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2330
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "folio"
	defaultDBCharset  = "utf8mb4"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultBucket     = "media"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment overrides for secrets. It is built once in main and injected
// into the components that need it; handlers never read the environment.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	DSN            string         `yaml:"-"`
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	Site           SiteConfig     `yaml:"site"`
	Admin          AdminConfig    `yaml:"admin"`
	Storage        StorageConfig  `yaml:"storage"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// SiteConfig describes the public site the backend serves content for.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// AdminConfig is the single-operator authorization config. Email is compared
// byte-for-byte against the session identity; PasswordBcrypt is the bcrypt
// hash checked at login.
type AdminConfig struct {
	Email          string `yaml:"email"`
	PasswordBcrypt string `yaml:"password_bcrypt"`
	JWTSecret      string `yaml:"jwt_secret"`
}

// StorageConfig carries the service-level object storage credentials. These
// are elevated credentials and must never be handed to request-scoped code
// paths other than the upload handler.
type StorageConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyle       bool   `yaml:"path_style"`
}

// Configured reports whether the storage credentials are complete enough to
// construct an uploader.
func (s StorageConfig) Configured() bool {
	return s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// Load reads the YAML config file, applies defaults and environment
// overrides, and resolves the MySQL DSN.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &AppConfig{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Missing file is fine: env vars can carry the whole config.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	cfg.DSN = resolveDSN(cfg.Database)
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

func applyEnvOverrides(cfg *AppConfig) {
	setIfEnv := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setIfEnv(&cfg.Env, "FOLIO_ENV")
	setIfEnv(&cfg.Database.DSN, "FOLIO_DATABASE_DSN")
	setIfEnv(&cfg.RedisURL, "FOLIO_REDIS_URL")
	setIfEnv(&cfg.Site.BaseURL, "FOLIO_SITE_URL")
	setIfEnv(&cfg.Admin.Email, "FOLIO_ADMIN_EMAIL")
	setIfEnv(&cfg.Admin.PasswordBcrypt, "FOLIO_ADMIN_PASSWORD_BCRYPT")
	setIfEnv(&cfg.Admin.JWTSecret, "FOLIO_JWT_SECRET")
	setIfEnv(&cfg.Storage.Endpoint, "FOLIO_S3_ENDPOINT")
	setIfEnv(&cfg.Storage.Region, "FOLIO_S3_REGION")
	setIfEnv(&cfg.Storage.Bucket, "FOLIO_S3_BUCKET")
	setIfEnv(&cfg.Storage.AccessKeyID, "FOLIO_S3_ACCESS_KEY_ID")
	setIfEnv(&cfg.Storage.SecretAccessKey, "FOLIO_S3_SECRET_ACCESS_KEY")
	setIfEnv(&cfg.Storage.CustomDomain, "FOLIO_S3_CUSTOM_DOMAIN")
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = defaultBucket
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	db := &cfg.Database
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port <= 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Password == "" {
		db.Password = defaultDBPassword
	}
	if db.Name == "" {
		db.Name = defaultDBName
	}
	if db.Charset == "" {
		db.Charset = defaultDBCharset
	}
}

func resolveDSN(db DatabaseConfig) string {
	if dsn := strings.TrimSpace(db.DSN); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.Name, db.Charset)
}
