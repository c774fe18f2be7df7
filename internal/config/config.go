package config

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	TelegramToken string `yaml:"-"`
	TokenFile     string `yaml:"token_file"`
	Environment   string `yaml:"env"`
	Timezone      string `yaml:"timezone"`

	RuzBaseURL     string        `yaml:"ruz_base_url"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	SearchCacheTTL time.Duration `yaml:"search_cache_ttl"`

	HomeworkDriver   string `yaml:"homework_db_driver"`
	HomeworkDSN      string `yaml:"homework_db_dsn"`
	HomeworkFilesDir string `yaml:"homework_files_dir"`

	StateIdleTTL time.Duration `yaml:"state_idle_ttl"`
	Workers      int           `yaml:"bot_workers"`

	WebhookListen string `yaml:"webhook_listen"`
	WebhookURL    string `yaml:"webhook_url"`
}

// Defaults возвращает конфиг со значениями по умолчанию
func Defaults() *Config {
	return &Config{
		TokenFile:        "token.txt",
		Environment:      "development",
		Timezone:         "Europe/Moscow",
		RuzBaseURL:       "https://ruz.fa.ru/api",
		HTTPTimeout:      30 * time.Second,
		SearchCacheTTL:   10 * time.Minute,
		HomeworkDriver:   DriverSQLite,
		HomeworkDSN:      "data/homework.db",
		HomeworkFilesDir: "homework_data",
		Workers:          4,
	}
}

// Load собирает конфиг: значения по умолчанию -> YAML (CONFIG_FILE) -> переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.TelegramToken == "" && cfg.TokenFile != "" {
		token, err := readTokenFile(cfg.TokenFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read token file: %w", err)
		}
		cfg.TelegramToken = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	input, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer input.Close()

	if err := yaml.NewDecoder(input).Decode(c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.TokenFile, "TOKEN_FILE")
	setString(&c.Environment, "ENV")
	setString(&c.Timezone, "TIMEZONE")
	setString(&c.RuzBaseURL, "RUZ_BASE_URL")
	setString(&c.HomeworkDriver, "HOMEWORK_DB_DRIVER")
	setString(&c.HomeworkDSN, "HOMEWORK_DB_DSN")
	setString(&c.HomeworkFilesDir, "HOMEWORK_FILES_DIR")
	setString(&c.WebhookListen, "WEBHOOK_LISTEN")
	setString(&c.WebhookURL, "WEBHOOK_URL")

	for key, dst := range map[string]*time.Duration{
		"HTTP_TIMEOUT":     &c.HTTPTimeout,
		"SEARCH_CACHE_TTL": &c.SearchCacheTTL,
		"STATE_IDLE_TTL":   &c.StateIdleTTL,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}

	if v := os.Getenv("BOT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BOT_WORKERS: %w", err)
		}
		c.Workers = n
	}

	return nil
}

// Validate проверяет обязательные поля и допустимые значения
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	switch c.HomeworkDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown HOMEWORK_DB_DRIVER %q", c.HomeworkDriver)
	}

	if c.HomeworkDSN == "" {
		return fmt.Errorf("HOMEWORK_DB_DSN is required but not set")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}

	if c.SearchCacheTTL < 0 || c.StateIdleTTL < 0 {
		return fmt.Errorf("SEARCH_CACHE_TTL and STATE_IDLE_TTL must not be negative")
	}

	if c.Workers <= 0 {
		return fmt.Errorf("BOT_WORKERS must be positive, got %d", c.Workers)
	}

	if c.WebhookListen != "" && c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_LISTEN is set")
	}

	return nil
}

// Location возвращает часовой пояс, в котором считаются "сегодня" и "завтра"
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("⚠️  Unknown timezone %q, falling back to local time", c.Timezone)
		return time.Local
	}
	return loc
}

func (c *Config) UseWebhook() bool {
	return c.WebhookListen != ""
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// readTokenFile читает токен из первой строки файла
func readTokenFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text()), nil
	}
	return "", sc.Err()
}
