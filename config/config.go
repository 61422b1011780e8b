package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ScrapeConfig holds browser and extraction settings shared by all scrapers
type ScrapeConfig struct {
	Headless     bool
	Timeout      time.Duration
	WaitStrategy string
	UserAgent    string
	SettleDelay  time.Duration
	PriceFloor   float64
	BlockTime    time.Duration
}

// LLMConfig holds the optional LLM service configuration
type LLMConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	Model    string
}

// Config represents the application configuration
type Config struct {
	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Chrome rendering service
	ChromeAddr string

	// Scraper configuration
	Scrape         ScrapeConfig
	ScrapeInterval time.Duration

	// HTTP API
	APIPort int

	// LLM insights (optional)
	LLM LLMConfig

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	scrapeInterval, _ := strconv.Atoi(getEnv("SCRAPE_INTERVAL_SECONDS", "3600"))
	timeoutMS, _ := strconv.Atoi(getEnv("SCRAPE_TIMEOUT_MS", "90000"))
	settleMS, _ := strconv.Atoi(getEnv("SCRAPE_SETTLE_MS", "3000"))
	blockSeconds, _ := strconv.Atoi(getEnv("SCRAPE_BLOCK_SECONDS", "300"))
	priceFloor, _ := strconv.ParseFloat(getEnv("PRICE_FLOOR", "100"), 64)
	apiPort, _ := strconv.Atoi(getEnv("API_PORT", "8080"))

	return &Config{
		DatabaseHost:     getEnv("DB_HOST", "localhost"),
		DatabasePort:     getEnv("DB_PORT", "5432"),
		DatabaseName:     getEnv("DB_NAME", "laptop_insights"),
		DatabaseUser:     getEnv("DB_USER", "insights"),
		DatabasePassword: getEnv("DB_PASSWORD", ""),

		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "prices"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,

		MemcacheAddr: getEnv("MEMCACHE_ADDR", "localhost:11211"),

		ChromeAddr: getEnv("CHROME_ADDR", ""),

		Scrape: ScrapeConfig{
			Headless:     getEnv("SCRAPE_HEADLESS", "true") == "true",
			Timeout:      time.Duration(timeoutMS) * time.Millisecond,
			WaitStrategy: getEnv("SCRAPE_WAIT_STRATEGY", "domcontentloaded"),
			UserAgent:    getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			SettleDelay:  time.Duration(settleMS) * time.Millisecond,
			PriceFloor:   priceFloor,
			BlockTime:    time.Duration(blockSeconds) * time.Second,
		},
		ScrapeInterval: time.Duration(scrapeInterval) * time.Second,

		APIPort: apiPort,

		LLM: LLMConfig{
			Enabled:  getEnv("LLM_ENABLED", "false") == "true",
			Endpoint: getEnv("LLM_ENDPOINT", ""),
			APIKey:   getEnv("LLM_API_KEY", ""),
			Model:    getEnv("LLM_MODEL", "gpt-4o-mini"),
		},

		Environment: getEnv("INSIGHTS_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values that would break the pipeline
func (c *Config) Validate() error {
	if c.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape timeout must be positive, got %v", c.Scrape.Timeout)
	}
	if c.Scrape.PriceFloor < 0 {
		return fmt.Errorf("price floor must not be negative, got %v", c.Scrape.PriceFloor)
	}
	switch c.Scrape.WaitStrategy {
	case "domcontentloaded", "load", "networkidle":
	default:
		return fmt.Errorf("unknown wait strategy %q", c.Scrape.WaitStrategy)
	}
	if c.ScrapeInterval <= 0 {
		return fmt.Errorf("scrape interval must be positive, got %v", c.ScrapeInterval)
	}
	if c.RedisStreamCount <= 0 {
		return fmt.Errorf("redis stream count must be positive, got %d", c.RedisStreamCount)
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api port out of range: %d", c.APIPort)
	}
	if c.LLM.Enabled && c.LLM.Endpoint == "" {
		return fmt.Errorf("LLM enabled but no endpoint configured")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
