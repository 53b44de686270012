package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	GitHub   GitHubConfig
	Viewer   ViewerConfig
	Session  SessionConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type GitHubConfig struct {
	APIURL      string
	Owner       string
	Repo        string
	Token       string
	PerPage     int
	MaxReleases int
	Timeout     time.Duration
}

// MaxPages is the number of pages needed to cover MaxReleases.
func (c GitHubConfig) MaxPages() int {
	if c.PerPage <= 0 || c.MaxReleases <= 0 {
		return 1
	}
	return (c.MaxReleases + c.PerPage - 1) / c.PerPage
}

type ViewerConfig struct {
	DefaultLimit int
	Timezone     string
}

// Location resolves Timezone, falling back to the process-local zone.
func (c ViewerConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type SessionConfig struct {
	Store       string // memory, redis, postgres
	IdleTimeout time.Duration
	Lifetime    time.Duration
	CookieName  string
	Secure      bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type MetricsConfig struct {
	Enabled bool
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("GITHUB_OWNER", "imt-log")
	v.SetDefault("GITHUB_REPO", "imt-log")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_PER_PAGE", 30)
	v.SetDefault("GITHUB_MAX_RELEASES", 50)
	v.SetDefault("GITHUB_TIMEOUT", "15s")
	v.SetDefault("VIEWER_DEFAULT_LIMIT", 20)
	v.SetDefault("VIEWER_TIMEZONE", "Local")
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("SESSION_LIFETIME", "12h")
	v.SetDefault("SESSION_COOKIE_NAME", "release_viewer_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "release-viewer:session:")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "release_viewer")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	githubTimeout, err := time.ParseDuration(v.GetString("GITHUB_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parse GITHUB_TIMEOUT: %w", err)
	}
	idleTimeout, err := time.ParseDuration(v.GetString("SESSION_IDLE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_IDLE_TIMEOUT: %w", err)
	}
	lifetime, err := time.ParseDuration(v.GetString("SESSION_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_LIFETIME: %w", err)
	}
	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		connMaxLifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		GitHub: GitHubConfig{
			APIURL:      v.GetString("GITHUB_API_URL"),
			Owner:       v.GetString("GITHUB_OWNER"),
			Repo:        v.GetString("GITHUB_REPO"),
			Token:       v.GetString("GITHUB_TOKEN"),
			PerPage:     v.GetInt("GITHUB_PER_PAGE"),
			MaxReleases: v.GetInt("GITHUB_MAX_RELEASES"),
			Timeout:     githubTimeout,
		},
		Viewer: ViewerConfig{
			DefaultLimit: v.GetInt("VIEWER_DEFAULT_LIMIT"),
			Timezone:     v.GetString("VIEWER_TIMEZONE"),
		},
		Session: SessionConfig{
			Store:       v.GetString("SESSION_STORE"),
			IdleTimeout: idleTimeout,
			Lifetime:    lifetime,
			CookieName:  v.GetString("SESSION_COOKIE_NAME"),
			Secure:      v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
