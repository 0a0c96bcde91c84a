package config

import (
	"errors"
	"os"
	"strconv"
)

// GetConfig builds an OekoboxConfig from environment variables.
func GetConfig() *OekoboxConfig {
	return &OekoboxConfig{
		ShopID:            getEnv("OEKOBOX_SHOP_ID", ""),
		Username:          getEnv("OEKOBOX_USERNAME", ""),
		Password:          getEnv("OEKOBOX_PASSWORD", ""),
		BaseURL:           getEnv("OEKOBOX_BASE_URL", ""),
		TimeoutSeconds:    getEnvFloat("OEKOBOX_TIMEOUT_SECONDS", 0),
		RequestsPerSecond: getEnvFloat("OEKOBOX_REQUESTS_PER_SECOND", 0),
	}
}

// Validate checks the fields every client needs.
func (c *OekoboxConfig) Validate() error {
	if c.ShopID == "" {
		return errors.New("shop_id is required")
	}
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
