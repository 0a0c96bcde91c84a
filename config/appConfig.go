package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultBaseURLPrefix = "https://oekobox-online.de/v3/shop/"

// DefaultTimeout is applied when the config carries no timeout of its own.
const DefaultTimeout = 30 * time.Second

// OekoboxConfig carries everything needed to talk to one shop.
type OekoboxConfig struct {
	ShopID   string `yaml:"shop_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// BaseURL overrides the URL derived from ShopID.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the per-request timeout, default 30s.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// RequestsPerSecond throttles outgoing calls, 0 means unlimited.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type AppConfig struct {
	Oekobox OekoboxConfig `yaml:"oekobox"`
}

// LoadConfig reads an AppConfig from a yaml file.
func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Timeout returns the configured request timeout, falling back to the
// default when unset.
func (c *OekoboxConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// ResolvedBaseURL returns the explicit override or the shop's canonical URL.
func (c *OekoboxConfig) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return trimTrailingSlash(c.BaseURL)
	}
	return defaultBaseURLPrefix + c.ShopID
}

func trimTrailingSlash(url string) string {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}
