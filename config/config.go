package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	// Rendering
	ElementID         string
	Format            string
	OutputPath        string
	HostPagePath      string
	ChartJSURL        string
	EChartsAssetsHost string
	Width             int
	Height            int

	// Metrics
	TotalCustomers int

	// Telegram
	TgToken  string
	TgChatID int64

	LogLevel string
}

var (
	config *Config
	once   sync.Once
)

var validFormats = []string{"chartjs", "echarts", "png", "svg"}

// GetConfig returns the singleton configuration, reading .env first when present.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Error loading .env file: %v", err)
		}
		config = Load()
	})
	return config
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		ElementID:         getEnv("CHART_ELEMENT_ID", "churnChart"),
		Format:            getEnv("CHART_FORMAT", "chartjs"),
		OutputPath:        getEnv("CHART_OUTPUT", ""),
		HostPagePath:      getEnv("CHART_HOST_PAGE", ""),
		ChartJSURL:        getEnv("CHART_JS_URL", "https://cdn.jsdelivr.net/npm/chart.js"),
		EChartsAssetsHost: getEnv("ECHARTS_ASSETS_HOST", "https://go-echarts.github.io/go-echarts-assets/assets/"),
		Width:             getEnvInt("CHART_WIDTH", 1024),
		Height:            getEnvInt("CHART_HEIGHT", 576),

		TotalCustomers: getEnvInt("TOTAL_CUSTOMERS", 5000),

		TgToken:  getEnv("TG_TOKEN", ""),
		TgChatID: getEnvInt64("TG_CHAT_ID", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.ElementID) == "" {
		problems = append(problems, "element id cannot be empty")
	} else if strings.ContainsAny(c.ElementID, " \t\n") {
		problems = append(problems, fmt.Sprintf("invalid element id '%s': must not contain whitespace", c.ElementID))
	}

	isValidFormat := false
	for _, f := range validFormats {
		if c.Format == f {
			isValidFormat = true
			break
		}
	}
	if !isValidFormat {
		problems = append(problems, fmt.Sprintf("invalid format '%s': must be one of %v", c.Format, validFormats))
	}

	if c.ChartJSURL != "" {
		if u, err := url.Parse(c.ChartJSURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid Chart.js URL '%s': %v", c.ChartJSURL, err))
		} else if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, fmt.Sprintf("invalid Chart.js URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	}

	if c.HostPagePath != "" && c.Format != "chartjs" {
		problems = append(problems, fmt.Sprintf("host page is only used by the chartjs format, not '%s'", c.Format))
	} else if c.HostPagePath != "" {
		if _, err := os.Stat(c.HostPagePath); err != nil {
			problems = append(problems, fmt.Sprintf("host page does not exist: %s", c.HostPagePath))
		}
	}

	if c.Width < 100 || c.Width > 8192 {
		problems = append(problems, fmt.Sprintf("invalid width %d: must be between 100 and 8192", c.Width))
	}
	if c.Height < 100 || c.Height > 8192 {
		problems = append(problems, fmt.Sprintf("invalid height %d: must be between 100 and 8192", c.Height))
	}

	if c.TotalCustomers < 1 {
		problems = append(problems, fmt.Sprintf("invalid total customers %d: must be at least 1", c.TotalCustomers))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ValidateTelegram checks the settings needed to send a chart to a chat.
func (c *Config) ValidateTelegram() error {
	var problems []string
	if c.TgToken == "" {
		problems = append(problems, "TG_TOKEN is required to send charts")
	}
	if c.TgChatID == 0 {
		problems = append(problems, "TG_CHAT_ID is required to send charts")
	}
	if len(problems) > 0 {
		return fmt.Errorf("telegram configuration invalid:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
