package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Academic AcademicConfig
	Analysis AnalysisConfig
	Reports  ReportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AcademicConfig holds the school-calendar settings used by the
// curriculum progress calculations.
type AcademicConfig struct {
	YearStart  time.Time
	TotalWeeks int
}

// AnalysisConfig governs caching of analysis and report payloads.
type AnalysisConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ReportsConfig controls report export behaviour. Persisted exports are
// written under ExportDir and served through links signed with
// ExportSecret; files older than ExportTTL are purged.
type ReportsConfig struct {
	CSVEnabled    bool
	ExportDir     string
	ExportSecret  string
	ExportTTL     time.Duration
	ExportWorkers int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Academic = AcademicConfig{
		YearStart:  parseYearStart(v.GetString("ACADEMIC_YEAR_START"), time.Now()),
		TotalWeeks: v.GetInt("ACADEMIC_TOTAL_WEEKS"),
	}

	cfg.Analysis = AnalysisConfig{
		CacheEnabled: v.GetBool("ENABLE_ANALYSIS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("ANALYSIS_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Reports = ReportsConfig{
		CSVEnabled:    v.GetBool("ENABLE_CSV_REPORTS"),
		ExportDir:     v.GetString("EXPORT_DIR"),
		ExportSecret:  v.GetString("EXPORT_SIGNING_SECRET"),
		ExportTTL:     parseDuration(v.GetString("EXPORT_RESULT_TTL"), 24*time.Hour),
		ExportWorkers: v.GetInt("EXPORT_WORKERS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sta_gradebook")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ACADEMIC_YEAR_START", "")
	v.SetDefault("ACADEMIC_TOTAL_WEEKS", 30)

	v.SetDefault("ENABLE_ANALYSIS_CACHE", false)
	v.SetDefault("ANALYSIS_CACHE_TTL", "10m")

	v.SetDefault("ENABLE_CSV_REPORTS", true)
	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_SIGNING_SECRET", "")
	v.SetDefault("EXPORT_RESULT_TTL", "24h")
	v.SetDefault("EXPORT_WORKERS", 1)
}

// parseYearStart reads a YYYY-MM-DD date. When unset or invalid it falls
// back to October 1st of the school year containing the reference date:
// before October the year started the previous calendar year.
func parseYearStart(raw string, now time.Time) time.Time {
	if raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, now.Location())
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
