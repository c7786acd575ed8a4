package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	PublicURL       string        `yaml:"public_url"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type StorageConfig struct {
	MongoURI string        `yaml:"mongo_uri"`
	Database string        `yaml:"database"`
	Bucket   string        `yaml:"bucket"`
	Timeout  time.Duration `yaml:"timeout"`
}

// AuthConfig points at the identity provider that issues session tokens.
type AuthConfig struct {
	ProviderURL string `yaml:"provider_url"`
	JWTSecret   string `yaml:"jwt_secret"`
	OAuthVendor string `yaml:"oauth_vendor"`
	RedirectURL string `yaml:"redirect_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":3000",
			PublicURL:       "http://localhost:3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  5 << 20,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "postgres",
			SSLMode:  "disable",
		},
		RabbitMQ: RabbitMQConfig{
			Host:  "localhost",
			Port:  5672,
			User:  "guest",
			VHost: "/",
		},
		Storage: StorageConfig{
			MongoURI: "mongodb://localhost:27017",
			Database: "pos",
			Bucket:   "products",
			Timeout:  10 * time.Second,
		},
		Auth: AuthConfig{
			OAuthVendor: "google",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the yaml file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error: the service can be
// configured from the environment alone.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	return nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d%s", c.User, c.Password, c.Host, c.Port, c.VHost)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTP.Addr, "HTTP_ADDR")
	setString(&cfg.HTTP.PublicURL, "HTTP_PUBLIC_URL")

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}

	setString(&cfg.RabbitMQ.Host, "RABBITMQ_HOST")
	setString(&cfg.RabbitMQ.User, "RABBITMQ_USER")
	setString(&cfg.RabbitMQ.Password, "RABBITMQ_PASSWORD")
	setString(&cfg.RabbitMQ.VHost, "RABBITMQ_VHOST")
	if err := setInt(&cfg.RabbitMQ.Port, "RABBITMQ_PORT"); err != nil {
		return err
	}

	setString(&cfg.Storage.MongoURI, "MONGO_URI")
	setString(&cfg.Storage.Database, "MONGO_DATABASE")

	setString(&cfg.Auth.ProviderURL, "AUTH_PROVIDER_URL")
	setString(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	setString(&cfg.Auth.RedirectURL, "AUTH_REDIRECT_URL")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
