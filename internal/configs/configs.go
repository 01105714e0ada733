package configs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `json:"log_level" yaml:"log_level"` // debug/info/warn/error
	Proxy    string `json:"proxy" yaml:"proxy"`

	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`

	// 抓取参数
	Scraper ScraperConfig `json:"scraper" yaml:"scraper"`

	// AI 模型参数
	AIConfig AIConfig `json:"ai_config" yaml:"ai_config"`

	Wallets WalletConfig `json:"wallets" yaml:"wallets"`
}

type TelegramConfig struct {
	Token       string `json:"token" yaml:"token"`
	APIURL      string `json:"api_url" yaml:"api_url"`
	PollTimeout int    `json:"poll_timeout" yaml:"poll_timeout"` // getUpdates 长轮询秒数
	QueueSize   int    `json:"queue_size" yaml:"queue_size"`     // 每个用户的待处理更新上限
}

type ScraperConfig struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`
	PageURL        string `json:"page_url" yaml:"page_url"`
	Headless       bool   `json:"headless" yaml:"headless"`
	BrowserBin     string `json:"browser_bin" yaml:"browser_bin"` // 为空时由 launcher 自动下载
	ViewportWidth  int    `json:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int    `json:"viewport_height" yaml:"viewport_height"`
	UserAgent      string `json:"user_agent" yaml:"user_agent"`
	Locale         string `json:"locale" yaml:"locale"`
	Timezone       string `json:"timezone" yaml:"timezone"`
	NavTimeout     string `json:"nav_timeout" yaml:"nav_timeout"` // 页面导航与 DOMContentLoaded 等待上限
	RowWaitTimeout string `json:"row_wait_timeout" yaml:"row_wait_timeout"`
	ScrollPause    string `json:"scroll_pause" yaml:"scroll_pause"`
}

type AIConfig struct {
	APIKey      string  `json:"api_key" yaml:"api_key"`   // AI服务API密钥
	BaseURL     string  `json:"base_url" yaml:"base_url"` // OpenAI 兼容接口地址
	ModelType   string  `json:"model_type" yaml:"model_type"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature float32 `json:"temperature" yaml:"temperature"`
	TopP        float32 `json:"top_p" yaml:"top_p"`
	Timeout     string  `json:"timeout" yaml:"timeout"` // 单次深度研究超时
}

type WalletConfig struct {
	Driver        string `json:"driver" yaml:"driver"` // sqlite/postgres/redis/memory
	DSN           string `json:"dsn" yaml:"dsn"`
	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `json:"redis_password" yaml:"redis_password"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
}

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Telegram: TelegramConfig{
			APIURL:      "https://api.telegram.org",
			PollTimeout: 30,
			QueueSize:   32,
		},
		Scraper: ScraperConfig{
			BaseURL:        "https://dexscreener.com",
			PageURL:        "https://dexscreener.com/new-pairs?rankBy=pairAge&order=asc",
			Headless:       true,
			ViewportWidth:  1600,
			ViewportHeight: 900,
			UserAgent:      DefaultUserAgent,
			Locale:         "en-US",
			Timezone:       "America/New_York",
			NavTimeout:     "30s",
			RowWaitTimeout: "30s",
			ScrollPause:    "2s",
		},
		AIConfig: AIConfig{
			BaseURL:     "https://router.huggingface.co/v1",
			ModelType:   "deepseek-ai/DeepSeek-R1-0528-Qwen3-8B",
			MaxTokens:   1024,
			Temperature: 0.6,
			TopP:        0.95,
			Timeout:     "90s",
		},
		Wallets: WalletConfig{
			Driver:    "sqlite",
			DSN:       "telegramusers.db",
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads the JSON file at path on top of the defaults, then applies .env and
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		configFile, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(configFile, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// .env 不存在时直接使用进程环境变量
	_ = godotenv.Load()

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Proxy = getEnv("PROXY", c.Proxy)
	c.Telegram.Token = getEnv("TELEGRAM_BOT_TOKEN", c.Telegram.Token)
	c.Telegram.APIURL = getEnv("TELEGRAM_API_URL", c.Telegram.APIURL)
	c.Scraper.Headless = getEnvBool("SCRAPER_HEADLESS", c.Scraper.Headless)
	c.Scraper.BrowserBin = getEnv("BROWSER_BIN", c.Scraper.BrowserBin)
	c.AIConfig.APIKey = getEnv("HF_TOKEN", c.AIConfig.APIKey)
	c.AIConfig.BaseURL = getEnv("AI_BASE_URL", c.AIConfig.BaseURL)
	c.AIConfig.ModelType = getEnv("AI_MODEL", c.AIConfig.ModelType)
	c.Wallets.Driver = getEnv("WALLET_DRIVER", c.Wallets.Driver)
	c.Wallets.DSN = getEnv("WALLET_DSN", c.Wallets.DSN)
	c.Wallets.RedisAddr = getEnv("REDIS_ADDR", c.Wallets.RedisAddr)
	c.Wallets.RedisPassword = getEnv("REDIS_PASSWORD", c.Wallets.RedisPassword)
	c.Wallets.RedisDB = getEnvInt("REDIS_DB", c.Wallets.RedisDB)
}

// Validate checks the settings needed to run the bot
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token is required (TELEGRAM_BOT_TOKEN)")
	}
	switch c.Wallets.Driver {
	case "sqlite", "postgres", "redis", "memory":
	default:
		return fmt.Errorf("unsupported wallet driver %q", c.Wallets.Driver)
	}
	if c.Telegram.PollTimeout <= 0 {
		return errors.New("telegram poll_timeout must be positive")
	}
	return nil
}

// ParseDuration parses value and returns fallback when it is empty or malformed
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
