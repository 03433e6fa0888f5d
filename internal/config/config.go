package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds application level configuration loaded from an optional YAML
// file and environment variables.
type Config struct {
	ServerPort  string `yaml:"SERVER_PORT"`
	DBDriver    string `yaml:"DB_DRIVER"`
	DBDSN       string `yaml:"DB_DSN"`
	ResetDB     bool   `yaml:"RESET_DB"`
	RedisAddr   string `yaml:"REDIS_ADDR"`
	RedisDB     int    `yaml:"REDIS_DB"`
	RedisPass   string `yaml:"REDIS_PASSWORD"`
	JWTSecret   string `yaml:"JWT_SECRET"`
	SwaggerHost string `yaml:"SWAGGER_HOST"`

	IDMin         int `yaml:"ID_MIN"`
	IDMax         int `yaml:"ID_MAX"`
	IDMaxAttempts int `yaml:"ID_MAX_ATTEMPTS"`

	MediaBackend     string `yaml:"MEDIA_BACKEND"`
	MediaDir         string `yaml:"MEDIA_DIR"`
	MediaCounterFile string `yaml:"MEDIA_COUNTER_FILE"`
	S3Bucket         string `yaml:"S3_BUCKET"`
	S3Region         string `yaml:"S3_REGION"`
	S3Endpoint       string `yaml:"S3_ENDPOINT"`
	S3AccessKey      string `yaml:"S3_ACCESS_KEY"`
	S3SecretKey      string `yaml:"S3_SECRET_KEY"`

	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		ServerPort:       "8080",
		DBDriver:         "sqlite",
		DBDSN:            "recipehub.db",
		JWTSecret:        "change-me",
		IDMin:            1,
		IDMax:            9999,
		IDMaxAttempts:    1000,
		MediaBackend:     "disk",
		MediaDir:         "images",
		MediaCounterFile: "file_counter.txt",
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load builds Config from defaults, then CONFIG_FILE (config.yaml), then the
// environment. A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Defaults()
	path := getEnv("CONFIG_FILE", "config.yaml")
	if err := cfg.loadFile(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("config file ignored", "path", path, "error", err)
	}
	cfg.applyEnv()
	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DBDSN = getEnv("DB_DSN", c.DBDSN)
	c.ResetDB = getEnvBool("RESET_DB", c.ResetDB)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)

	c.IDMin = getEnvInt("ID_MIN", c.IDMin)
	c.IDMax = getEnvInt("ID_MAX", c.IDMax)
	c.IDMaxAttempts = getEnvInt("ID_MAX_ATTEMPTS", c.IDMaxAttempts)

	c.MediaBackend = strings.ToLower(getEnv("MEDIA_BACKEND", c.MediaBackend))
	c.MediaDir = getEnv("MEDIA_DIR", c.MediaDir)
	c.MediaCounterFile = getEnv("MEDIA_COUNTER_FILE", c.MediaCounterFile)
	c.S3Bucket = getEnv("S3_BUCKET", c.S3Bucket)
	c.S3Region = getEnv("S3_REGION", c.S3Region)
	c.S3Endpoint = getEnv("S3_ENDPOINT", c.S3Endpoint)
	c.S3AccessKey = getEnv("S3_ACCESS_KEY", c.S3AccessKey)
	c.S3SecretKey = getEnv("S3_SECRET_KEY", c.S3SecretKey)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Logger builds the process-wide structured logger.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
