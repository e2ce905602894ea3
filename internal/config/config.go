package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Supported database backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgresql"
)

// Config holds the application configuration.
type Config struct {
	ServerPort  int            `toml:"port"`
	ProjectName string         `toml:"project_name"`
	APIPrefix   string         `toml:"api_prefix"`
	CORSOrigins []string       `toml:"cors_origins"`
	Database    DatabaseConfig `toml:"database"`
	Log         LogConfig      `toml:"log"`
}

// DatabaseConfig selects the backend and carries its connection parameters.
type DatabaseConfig struct {
	Type       string `toml:"type"`
	SQLitePath string `toml:"sqlite_path"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	Name       string `toml:"name"`
	SSLMode    string `toml:"sslmode"`
	URI        string `toml:"uri"` // Full connection string, wins over the fields above
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load builds the configuration from defaults, an optional TOML file and
// environment variables, in increasing order of precedence. A .env file in the
// working directory is loaded into the environment first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	if err := overrideByEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration values the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Backend() {
	case BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unsupported DB_TYPE %q (want %q or %q)", c.Database.Type, BackendSQLite, BackendPostgres)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid port %d", c.ServerPort)
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API prefix %q must start with /", c.APIPrefix)
	}
	return nil
}

// HTTPAddr returns the listen address for the HTTP server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Backend returns the database backend in use. A postgres:// style URI
// overrides the configured type.
func (d DatabaseConfig) Backend() string {
	uri := strings.ToLower(d.URI)
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		return BackendPostgres
	}
	if strings.HasPrefix(uri, "sqlite:") {
		return BackendSQLite
	}
	return strings.ToLower(d.Type)
}

// DSN returns the driver data source name for the selected backend.
func (d DatabaseConfig) DSN() string {
	if d.URI != "" {
		if d.Backend() == BackendSQLite {
			return trimSQLiteScheme(d.URI)
		}
		return d.URI
	}

	if d.Backend() == BackendSQLite {
		return trimSQLiteScheme(d.SQLitePath)
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(d.SSLMode)
	}
	return u.String()
}

// trimSQLiteScheme accepts the "sqlite:///./data/app.db" form and returns the
// bare file path.
func trimSQLiteScheme(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "sqlite:///"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(uri, "sqlite://"); ok {
		return rest
	}
	return uri
}

func defaultConfig() *Config {
	return &Config{
		ServerPort:  8000,
		ProjectName: "Medical Personal Account API",
		APIPrefix:   "/api/v1",
		CORSOrigins: []string{"*"},
		Database: DatabaseConfig{
			Type:       BackendSQLite,
			SQLitePath: "./data/medapi.db",
			Host:       "db",
			Port:       5432,
			User:       "postgres",
			Password:   "postgres",
			Name:       "medapi",
			SSLMode:    "disable",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func overrideByEnv(cfg *Config) error {
	port, err := getEnvAsInt("PORT", cfg.ServerPort)
	if err != nil {
		return err
	}
	cfg.ServerPort = port
	cfg.ProjectName = getEnv("PROJECT_NAME", cfg.ProjectName)
	cfg.APIPrefix = getEnv("API_V1_STR", cfg.APIPrefix)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	cfg.Database.Type = getEnv("DB_TYPE", cfg.Database.Type)
	cfg.Database.SQLitePath = getEnv("SQLITE_DATABASE_URI", cfg.Database.SQLitePath)
	cfg.Database.Host = getEnv("POSTGRES_SERVER", cfg.Database.Host)
	dbPort, err := getEnvAsInt("POSTGRES_PORT", cfg.Database.Port)
	if err != nil {
		return err
	}
	cfg.Database.Port = dbPort
	cfg.Database.User = getEnv("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("POSTGRES_DB", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("POSTGRES_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.URI = getEnv("DATABASE_URI", cfg.Database.URI)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	return nil
}

// Helper to get an environment variable with a default value. Empty values
// count as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
