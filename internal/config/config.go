package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	RunAddress string `yaml:"runaddress"`
}

type GatewayConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type CacheConfig struct {
	Type           string `yaml:"type"` // memory, file or sqlite
	DataPath       string `yaml:"datapath"`
	DBPath         string `yaml:"dbpath"`
	MigrationsPath string `yaml:"migrationspath"`
	SeedPath       string `yaml:"seedpath"`
}

type SessionConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type AuthConfig struct {
	Username        string `yaml:"username"`
	CredentialsPath string `yaml:"credentialspath"`
}

type CouponConfig struct {
	LegacyNaming bool `yaml:"legacy_naming"`
}

type PDFConfig struct {
	TempleName    string `yaml:"temple_name"`
	TempleAddress string `yaml:"temple_address"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	ErrorPath  string `yaml:"errorpath"`
	MaxSize    int    `yaml:"maxsize"`
	MaxBackups int    `yaml:"maxbackups"`
	MaxAge     int    `yaml:"maxage"`
	Compress   bool   `yaml:"compress"`
}

// Config is the full service configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Gateway GatewayConfig `yaml:"gateway"`
	Cache   CacheConfig   `yaml:"cache"`
	Session SessionConfig `yaml:"session"`
	Auth    AuthConfig    `yaml:"auth"`
	Coupon  CouponConfig  `yaml:"coupon"`
	PDF     PDFConfig     `yaml:"pdf"`
	Log     LogConfig     `yaml:"logger"`
}

// LoadConfig loads the YAML configuration. An empty path falls back to the
// -c command line flag (default config.yaml).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		flag.StringVar(&path, "c", "config.yaml", "config path")
		flag.Parse()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = 10
	}
	if c.Cache.Type == "" {
		c.Cache.Type = "file"
	}
	if c.Auth.CredentialsPath == "" {
		c.Auth.CredentialsPath = c.Cache.DataPath
	}
	if c.PDF.TempleName == "" {
		c.PDF.TempleName = "ISKCON SHRI JAGANNATH MANDIR"
	}
	if c.PDF.TempleAddress == "" {
		c.PDF.TempleAddress = "KUDUPU KATTE, MANGALURU"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
