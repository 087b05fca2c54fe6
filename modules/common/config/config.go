package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 히스토리 백엔드
const (
	HistorySupabase = "supabase"
	HistoryPostgres = "postgres"
	HistoryMySQL    = "mysql"
	HistoryLocal    = "local"
)

// KV 백엔드 (드래프트, 로컬 히스토리, 설정)
const (
	KVSQLite = "sqlite"
	KVRedis  = "redis"
	KVMemory = "memory"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Port           string
	AppEnv         string
	LogLevel       string
	AllowedOrigins []string

	// Gemini API
	GeminiAPIKey      string
	ImageModel        string
	TextModel         string
	ReasoningModel    string
	MaxAttachmentEdge int

	// Backends
	HistoryBackend string
	KVBackend      string

	// Supabase
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseJWTSecret     string
	SupabaseStorageBucket string

	// SQL
	DatabaseURL string
	MySQLDSN    string
	SQLitePath  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Account
	AllowAnonymous bool
	SessionIdleTTL time.Duration
}

// SetDefaults - 기본값 등록
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("IMAGE_MODEL", "gemini-2.5-flash-image")
	v.SetDefault("TEXT_MODEL", "gemini-3-flash-preview")
	v.SetDefault("REASONING_MODEL", "gemini-3-pro-preview")
	v.SetDefault("MAX_ATTACHMENT_EDGE", 2048)

	v.SetDefault("HISTORY_BACKEND", HistoryLocal)
	v.SetDefault("KV_BACKEND", KVSQLite)

	v.SetDefault("SUPABASE_STORAGE_BUCKET", "attachments")
	v.SetDefault("SQLITE_PATH", "lumina.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_USE_TLS", false)

	v.SetDefault("ALLOW_ANONYMOUS", true)
	v.SetDefault("SESSION_IDLE_TTL", 2*time.Hour)
}

// Load - .env 파일과 환경변수, 플래그를 합쳐 설정 생성
func Load(v *viper.Viper) (*Config, error) {
	// .env 파일 로드 (있으면). 없는 것은 에러가 아님
	_ = godotenv.Load()

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg := &Config{
		Port:           v.GetString("PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		ImageModel:        v.GetString("IMAGE_MODEL"),
		TextModel:         v.GetString("TEXT_MODEL"),
		ReasoningModel:    v.GetString("REASONING_MODEL"),
		MaxAttachmentEdge: v.GetInt("MAX_ATTACHMENT_EDGE"),

		HistoryBackend: strings.ToLower(v.GetString("HISTORY_BACKEND")),
		KVBackend:      strings.ToLower(v.GetString("KV_BACKEND")),

		SupabaseURL:           v.GetString("SUPABASE_URL"),
		SupabaseServiceKey:    v.GetString("SUPABASE_SERVICE_KEY"),
		SupabaseJWTSecret:     v.GetString("SUPABASE_JWT_SECRET"),
		SupabaseStorageBucket: v.GetString("SUPABASE_STORAGE_BUCKET"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		SQLitePath:  v.GetString("SQLITE_PATH"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisUsername: v.GetString("REDIS_USERNAME"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisUseTLS:   v.GetBool("REDIS_USE_TLS"),

		AllowAnonymous: v.GetBool("ALLOW_ANONYMOUS"),
		SessionIdleTTL: v.GetDuration("SESSION_IDLE_TTL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate - 백엔드별 필수 환경변수 검증
func (c *Config) validate() error {
	switch c.HistoryBackend {
	case HistorySupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
		}
	case HistoryPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
	case HistoryMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required")
		}
	case HistoryLocal:
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND: %s", c.HistoryBackend)
	}

	switch c.KVBackend {
	case KVSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case KVRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required")
		}
	case KVMemory:
	default:
		return fmt.Errorf("unknown KV_BACKEND: %s", c.KVBackend)
	}

	if c.HistoryBackend != HistoryLocal && c.SupabaseJWTSecret == "" && !c.AllowAnonymous {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required when anonymous access is disabled")
	}
	if c.MaxAttachmentEdge < 0 {
		return fmt.Errorf("MAX_ATTACHMENT_EDGE must not be negative")
	}
	return nil
}

// splitList - 쉼표 구분 목록. 빈 항목은 버린다
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// IsDevelopment - 개발 모드 여부
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// RemoteHistory - 계정 기반 원격 히스토리 사용 여부
func (c *Config) RemoteHistory() bool {
	return c.HistoryBackend != HistoryLocal
}
