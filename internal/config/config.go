package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN         string `yaml:"url"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Realtime struct {
		SendBuffer int           `yaml:"send_buffer"`
		PingPeriod time.Duration `yaml:"ping_period"`
		PongWait   time.Duration `yaml:"pong_wait"`
		WriteWait  time.Duration `yaml:"write_wait"`
	} `yaml:"realtime"`

	Notifications struct {
		RetentionDays   int           `yaml:"retention_days"` // 0 keeps notifications forever
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"notifications"`
}

const DefaultConfigPath = "config/config.yaml"

// DefaultJWTSecret is the placeholder shipped in config/config.yaml. It is
// only accepted in development.
const DefaultJWTSecret = "change-me"

var AppConfig *Config

// LoadConfig reads the YAML file at path (CONFIG_PATH or the default when
// empty), applies environment overrides and fills defaults. With
// DATABASE_URL set and no readable file the config is built from the
// environment alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case os.Getenv("DATABASE_URL") == "":
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.IsDevelopment() {
		return nil
	}

	// Outside development tokens must not be forgeable, and the token
	// cookie must not be usable by a page on another origin to open /ws.
	if c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("jwt secret %q is for development only; set JWT_SECRET", DefaultJWTSecret)
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("server.allowed_origins is required when env is %q", c.Server.Env)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = c.Server.AllowedOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, origin)
			}
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60 * 24 * 7
	}
	if c.Realtime.SendBuffer == 0 {
		c.Realtime.SendBuffer = 256
	}
	if c.Realtime.PongWait == 0 {
		c.Realtime.PongWait = 60 * time.Second
	}
	if c.Realtime.PingPeriod == 0 {
		c.Realtime.PingPeriod = c.Realtime.PongWait * 9 / 10
	}
	if c.Realtime.WriteWait == 0 {
		c.Realtime.WriteWait = 10 * time.Second
	}
	if c.Notifications.CleanupInterval == 0 {
		c.Notifications.CleanupInterval = time.Hour
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func GetConfig() *Config {
	return AppConfig
}
