package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultGeminiModel = "gemini-1.5-flash"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Workflow WorkflowConfig
	Storage  StorageConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port          string
	Env           string
	AppName       string
	PublicBaseURL string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	URL       string
	UploadTTL time.Duration
}

type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

type WorkflowConfig struct {
	WebhookURL string
	Secret     string
	Timeout    time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// Load reads an optional .env file and then the process environment. Keys with
// several accepted names resolve to the first one that is set.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.GetViper())
}

// FromViper builds a Config from v after registering defaults and env bindings.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:          v.GetString("server.port"),
			Env:           v.GetString("server.env"),
			AppName:       v.GetString("server.app_name"),
			PublicBaseURL: strings.TrimSuffix(strings.TrimSpace(v.GetString("server.public_base_url")), "/"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("database.driver")),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.name"),
		},
		Redis: RedisConfig{
			URL:       v.GetString("redis.url"),
			UploadTTL: v.GetDuration("redis.upload_ttl"),
		},
		LLM: LLMConfig{
			APIKey:  strings.TrimSpace(v.GetString("llm.api_key")),
			APIURL:  strings.TrimSpace(v.GetString("llm.api_url")),
			Model:   v.GetString("llm.model"),
			Timeout: v.GetDuration("llm.timeout"),
		},
		Workflow: WorkflowConfig{
			WebhookURL: strings.TrimSpace(v.GetString("workflow.webhook_url")),
			Secret:     v.GetString("workflow.secret"),
			Timeout:    v.GetDuration("workflow.timeout"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("storage.upload_path"),
			MaxFileSize: v.GetInt64("storage.max_file_size"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("json"),
			Debug: v.GetBool("debug"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.app_name", "resume-portfolio-app")
	v.SetDefault("database.driver", StoreMemory)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "resume_portfolio")
	v.SetDefault("redis.upload_ttl", "10m")
	v.SetDefault("llm.model", DefaultGeminiModel)
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("workflow.timeout", "45s")
	v.SetDefault("storage.upload_path", "./uploads")
	v.SetDefault("storage.max_file_size", 10485760)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":            {"PORT"},
		"server.env":             {"ENV"},
		"server.app_name":        {"APP_NAME"},
		"server.public_base_url": {"PUBLIC_BASE_URL"},
		"database.driver":        {"STORE_DRIVER"},
		"database.host":          {"DB_HOST"},
		"database.port":          {"DB_PORT"},
		"database.user":          {"DB_USER"},
		"database.password":      {"DB_PASSWORD"},
		"database.name":          {"DB_NAME"},
		"redis.url":              {"REDIS_URL"},
		"redis.upload_ttl":       {"UPLOAD_TTL"},
		"llm.api_key":            {"LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"llm.api_url":            {"LLM_API_URL", "GEMINI_API_URL"},
		"llm.model":              {"LLM_MODEL", "GEMINI_MODEL"},
		"llm.timeout":            {"LLM_TIMEOUT"},
		"workflow.webhook_url":   {"N8N_WEBHOOK_URL", "N8N_JOB_MATCH_WEBHOOK_URL"},
		"workflow.secret":        {"N8N_WEBHOOK_SECRET"},
		"workflow.timeout":       {"N8N_TIMEOUT"},
		"storage.upload_path":    {"UPLOAD_PATH"},
		"storage.max_file_size":  {"MAX_FILE_SIZE"},
		"json":                   {"LOG_JSON"},
		"debug":                  {"LOG_DEBUG"},
	}

	for key, names := range bindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// ResolvePublicBaseURL prefers the configured base URL and falls back to the
// origin the request arrived on.
func (c *Config) ResolvePublicBaseURL(requestOrigin string) string {
	if c.Server.PublicBaseURL != "" {
		return c.Server.PublicBaseURL
	}
	return strings.TrimSuffix(requestOrigin, "/")
}

// GeminiBaseURL reduces the configured model endpoint override to its origin,
// which is what the genai client expects. Empty means the SDK default.
func (c *Config) GeminiBaseURL() string {
	if c.LLM.APIURL == "" {
		return ""
	}
	u, err := url.Parse(c.LLM.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
