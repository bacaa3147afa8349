package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2440
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "composer_core"
	defaultDBCharset  = "utf8mb4"
	defaultRedisURL   = "redis://localhost:6379/0"

	defaultMaxPostLength     = 3000
	defaultAutoSaveDebounce  = 1500
	defaultMediaPresignTTL   = 15
	defaultScheduleDispatch  = 60
	defaultGenerationTimeout = 60
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	JWTSecret      string         `yaml:"jwt_secret"`
	APITokenHash   string         `yaml:"api_token_hash"` // bcrypt hash of the dashboard service token
	Composer       ComposerConfig `yaml:"composer"`
	AI             AIConfig       `yaml:"ai"`
	LinkedIn       LinkedInConfig `yaml:"linkedin"`
	S3             S3Config       `yaml:"s3"`
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

// ComposerConfig tunes the draft composer behavior.
type ComposerConfig struct {
	MaxPostLength      int `yaml:"max_post_length"`      // LinkedIn post ceiling, in code points
	AutoSaveDebounceMS int `yaml:"autosave_debounce_ms"` // quiet window before a draft counts as saved
	MediaPresignTTLMin int `yaml:"media_presign_ttl_min"`
}

// AIConfig lists the configured generation providers.
type AIConfig struct {
	Providers            []AIProvider `yaml:"providers"`
	GenerationTimeoutSec int          `yaml:"generation_timeout_sec"`
}

// AIProvider describes one AI backend.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// LinkedInConfig points at the extension-backed posting collaborator.
type LinkedInConfig struct {
	Endpoint            string `yaml:"endpoint"`
	Token               string `yaml:"token"`
	PostingEnabled      *bool  `yaml:"posting_enabled"`
	DispatchIntervalSec int    `yaml:"dispatch_interval_sec"`
}

// S3Config configures media object storage.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// rawAppConfig accepts alias keys before normalization.
type rawAppConfig struct {
	AppConfig `yaml:",inline"`

	NodeEnv            string   `yaml:"node_env"`
	DSN                string   `yaml:"dsn"`
	DBHost             string   `yaml:"db_host"`
	DBPort             int      `yaml:"db_port"`
	DBUser             string   `yaml:"db_user"`
	DBPassword         string   `yaml:"db_password"`
	DBName             string   `yaml:"db_name"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	JWTSecretLegacy    string   `yaml:"jwtsecret"`
}

// Load reads and validates the YAML config at path.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	return Parse(content, path)
}

// Parse decodes config bytes; path is used for error messages only.
func Parse(content []byte, path string) (*AppConfig, error) {
	raw := rawAppConfig{AppConfig: defaultAppConfig()}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	cfg := raw.AppConfig
	applyAliases(&cfg, raw)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("invalid env %q in %q, expected development or production", cfg.Env, path)
	}
	if cfg.Composer.MaxPostLength < 1 {
		return nil, fmt.Errorf("invalid composer.max_post_length %d in %q", cfg.Composer.MaxPostLength, path)
	}
	if cfg.Composer.AutoSaveDebounceMS < 1 {
		return nil, fmt.Errorf("invalid composer.autosave_debounce_ms %d in %q", cfg.Composer.AutoSaveDebounceMS, path)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
		},
		RedisURL: defaultRedisURL,
		Composer: ComposerConfig{
			MaxPostLength:      defaultMaxPostLength,
			AutoSaveDebounceMS: defaultAutoSaveDebounce,
			MediaPresignTTLMin: defaultMediaPresignTTL,
		},
		AI: AIConfig{
			GenerationTimeoutSec: defaultGenerationTimeout,
		},
		LinkedIn: LinkedInConfig{
			DispatchIntervalSec: defaultScheduleDispatch,
		},
	}
}

func applyAliases(cfg *AppConfig, raw rawAppConfig) {
	if cfg.Env == defaultEnv && raw.NodeEnv != "" {
		cfg.Env = raw.NodeEnv
	}
	if cfg.Database.DSN == "" && raw.DSN != "" {
		cfg.Database.DSN = raw.DSN
	}
	if raw.DBHost != "" {
		cfg.Database.Host = raw.DBHost
	}
	if raw.DBPort != 0 {
		cfg.Database.Port = raw.DBPort
	}
	if raw.DBUser != "" {
		cfg.Database.User = raw.DBUser
	}
	if raw.DBPassword != "" {
		cfg.Database.Password = raw.DBPassword
	}
	if raw.DBName != "" {
		cfg.Database.Name = raw.DBName
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = raw.CORSAllowedOrigins
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = raw.JWTSecretLegacy
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// DSN builds the MySQL DSN, preferring an explicit database.dsn.
func (c *AppConfig) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset)
}

// ActiveAIProvider returns the first enabled provider with an API key, or nil.
func (c *AppConfig) ActiveAIProvider() *AIProvider {
	for i := range c.AI.Providers {
		p := &c.AI.Providers[i]
		if p.Enabled && strings.TrimSpace(p.APIKey) != "" {
			return p
		}
	}
	return nil
}

// HasAIKey reports whether any generation provider is usable.
func (c *AppConfig) HasAIKey() bool { return c.ActiveAIProvider() != nil }

// PostingEnabled reports whether direct LinkedIn posting is allowed.
// When disabled, publish requests downgrade to a draft save.
func (c *AppConfig) PostingEnabled() bool {
	if c.LinkedIn.PostingEnabled == nil {
		return true
	}
	return *c.LinkedIn.PostingEnabled
}
