package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Maps     MapsConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	StylesCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// MapsConfig - значения по умолчанию для провайдеров карт
type MapsConfig struct {
	DefaultProvider string
	ContentWidth    int
	Width           int
	Aspect          float64
	Zoom            int
	MapboxAPIKey    string
	MapboxUser      string
	MapboxStyle     string
	MapboxBaseURL   string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
	Providers       []string
}

// Load читает .env (если он есть) и переменные окружения.
// ENV_FILE - дополнительные файлы через запятую (например, смонтированные
// секреты); их значения не перекрывают уже заданные переменные.
func Load() (*Config, error) {
	if files := parseList(os.Getenv("ENV_FILE")); len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return FromViper(v), nil
}

// FromViper собирает конфигурацию из уже настроенного экземпляра viper
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DB_ENABLED"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StylesCacheTTL: time.Duration(v.GetInt("STYLES_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Maps: MapsConfig{
			DefaultProvider: v.GetString("MAP_PROVIDER"),
			ContentWidth:    v.GetInt("MAP_CONTENT_WIDTH"),
			Width:           v.GetInt("MAP_WIDTH"),
			Aspect:          v.GetFloat64("MAP_ASPECT"),
			Zoom:            v.GetInt("MAP_ZOOM"),
			MapboxAPIKey:    v.GetString("MAPBOX_API_KEY"),
			MapboxUser:      v.GetString("MAPBOX_USER"),
			MapboxStyle:     v.GetString("MAPBOX_STYLE"),
			MapboxBaseURL:   v.GetString("MAPBOX_BASE_URL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(v.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
			Providers:       parseList(v.GetString("WORKER_PROVIDERS")),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.StylesCacheTTL == 0 {
		cfg.Cache.StylesCacheTTL = time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Maps.DefaultProvider == "" {
		cfg.Maps.DefaultProvider = "mapbox"
	}
	if cfg.Maps.MapboxBaseURL == "" {
		cfg.Maps.MapboxBaseURL = "https://api.mapbox.com"
	}
	if cfg.Worker.RefreshInterval == 0 {
		cfg.Worker.RefreshInterval = 30 * time.Minute
	}
	if len(cfg.Worker.Providers) == 0 {
		cfg.Worker.Providers = []string{cfg.Maps.DefaultProvider}
	}

	return cfg
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value для pgx и lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
