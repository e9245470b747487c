package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

const envPrefix = "ATLAS"

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type ChartSettings struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Settings are the client's tunables. Every key can be overridden through
// an ATLAS_ prefixed environment variable, e.g. ATLAS_SERVER_PORT.
type Settings struct {
	BaseURL   string         `mapstructure:"base_url"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	CachePath string         `mapstructure:"cache_path"`
	Currency  string         `mapstructure:"currency"`
	LogLevel  string         `mapstructure:"log_level"`
	Server    ServerSettings `mapstructure:"server"`
	Charts    ChartSettings  `mapstructure:"charts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://aimodel-yq14.onrender.com")
	v.SetDefault("timeout", "2m")
	v.SetDefault("cache_path", "sales-atlas.db")
	v.SetDefault("currency", "Ksh")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("charts.width", 1024)
	v.SetDefault("charts.height", 512)
}

// LoadSettings reads the YAML settings file at path on top of the
// defaults. A missing file is not an error unless required is set.
func LoadSettings(path string, required bool) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", settings.Timeout)
	}
	return &settings, nil
}

// ApplyProfile points the settings at the profile's endpoint.
func (s *Settings) ApplyProfile(p domain.EndpointProfile) {
	if p.BaseURL != "" {
		s.BaseURL = p.BaseURL
	}
	if p.Timeout > 0 {
		s.Timeout = p.Timeout
	}
}
