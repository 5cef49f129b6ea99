package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPath = "config.yaml"

	envPrefix = "SCAMGUARD_"

	DefaultPort           = "3000"
	DefaultPublicDir      = "public"
	DefaultVisitLog       = "visits.log"
	DefaultLogLevel       = "info"
	DefaultScrapeInterval = time.Minute
	DefaultTopic          = "scamguard.messages"
	DefaultGroupID        = "scamguard"
	DefaultTelegramAPIURL = "https://api.telegram.org"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Scraper  ScraperConfig  `koanf:"scraper"`
	Queue    QueueConfig    `koanf:"queue"`
	Notifier NotifierConfig `koanf:"notifier"`
}

type ServerConfig struct {
	Port      string `koanf:"port"`
	PublicDir string `koanf:"public_dir"`
	VisitLog  string `koanf:"visit_log"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

type ScraperConfig struct {
	Feeds    []string      `koanf:"feeds"`
	Interval time.Duration `koanf:"interval"`
}

type QueueConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	GroupID string   `koanf:"group_id"`
}

type NotifierConfig struct {
	TelegramToken   string   `koanf:"telegram_token"`
	TelegramChatIDs []string `koanf:"telegram_chat_ids"`
	TelegramAPIURL  string   `koanf:"telegram_api_url"`
}

func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// Load reads the optional YAML file at path, then applies environment
// overrides: PORT, the short aliases in envAliases, and
// SCAMGUARD_<SECTION>_<KEY> for everything else.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

var listKeys = map[string]bool{
	"scraper.feeds":              true,
	"queue.brokers":              true,
	"notifier.telegram_chat_ids": true,
}

// envAliases are the short variable names, keyed without the prefix.
var envAliases = map[string]string{
	"public_dir":        "server.public_dir",
	"visit_log":         "server.visit_log",
	"kafka_brokers":     "queue.brokers",
	"kafka_topic":       "queue.topic",
	"kafka_group_id":    "queue.group_id",
	"telegram_token":    "notifier.telegram_token",
	"telegram_chat_ids": "notifier.telegram_chat_ids",
	"telegram_api_url":  "notifier.telegram_api_url",
	"feeds":             "scraper.feeds",
	"scrape_interval":   "scraper.interval",
}

// envKey maps SCAMGUARD_SERVER_PUBLIC_DIR to server.public_dir. Short
// aliases such as SCAMGUARD_VISIT_LOG are checked first; otherwise the
// first underscore after the prefix separates the section from the key.
// Empty variables are ignored.
func envKey(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	if key == "PORT" {
		return "server.port", value
	}
	if !strings.HasPrefix(key, envPrefix) {
		return "", nil
	}

	name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if alias, ok := envAliases[name]; ok {
		name = alias
	} else {
		section, field, ok := strings.Cut(name, "_")
		if !ok || field == "" {
			return "", nil
		}
		name = section + "." + field
	}

	if listKeys[name] {
		return name, splitList(value)
	}
	return name, value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.PublicDir == "" {
		cfg.Server.PublicDir = DefaultPublicDir
	}
	if cfg.Server.VisitLog == "" {
		cfg.Server.VisitLog = DefaultVisitLog
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Scraper.Interval == 0 {
		cfg.Scraper.Interval = DefaultScrapeInterval
	}
	if cfg.Queue.Topic == "" {
		cfg.Queue.Topic = DefaultTopic
	}
	if cfg.Queue.GroupID == "" {
		cfg.Queue.GroupID = DefaultGroupID
	}
	if cfg.Notifier.TelegramAPIURL == "" {
		cfg.Notifier.TelegramAPIURL = DefaultTelegramAPIURL
	}
}

func validate(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server.port must be a number between 1 and 65535, got %q", cfg.Server.Port)
	}
	if cfg.Scraper.Interval < 0 {
		return fmt.Errorf("scraper.interval must be positive, got %s", cfg.Scraper.Interval)
	}
	if cfg.Notifier.TelegramToken != "" && len(cfg.Notifier.TelegramChatIDs) == 0 {
		return fmt.Errorf("notifier.telegram_chat_ids is required when a telegram token is set")
	}
	return nil
}
