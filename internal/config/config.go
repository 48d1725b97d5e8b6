// Package config loads server settings from defaults, an optional config
// file and IHALE_MCP_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ihale-mcp/ihale-mcp/pkg/ekap"
)

// EnvPrefix is prepended to every environment variable, e.g. IHALE_MCP_DEBUG.
const EnvPrefix = "IHALE_MCP"

const DefaultAddr = ":8080"

// Config holds the runtime settings of the server.
type Config struct {
	Debug             bool          `mapstructure:"debug"`
	Addr              string        `mapstructure:"addr"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	InsecureLegacyTLS bool          `mapstructure:"insecure_legacy_tls"`
	PreviewLength     int           `mapstructure:"preview_length"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:              DefaultAddr,
		BaseURL:           ekap.DefaultBaseURL,
		Timeout:           ekap.DefaultTimeout,
		InsecureLegacyTLS: true,
		PreviewLength:     ekap.DefaultPreviewLength,
	}
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables are used. The file format follows
// its extension (yaml, json, toml, env).
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("debug", def.Debug)
	v.SetDefault("addr", def.Addr)
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("insecure_legacy_tls", def.InsecureLegacyTLS)
	v.SetDefault("preview_length", def.PreviewLength)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("invalid preview_length %d: must be positive", c.PreviewLength)
	}
	return nil
}

// ClientOptions turns the settings into EKAP client options.
func (c Config) ClientOptions() []ekap.Option {
	return []ekap.Option{
		ekap.WithBaseURL(strings.TrimRight(c.BaseURL, "/")),
		ekap.WithTimeout(c.Timeout),
		ekap.WithInsecureLegacyTLS(c.InsecureLegacyTLS),
		ekap.WithPreviewLength(c.PreviewLength),
	}
}
