package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	strutil "atlasqa/pkg/platform/strings"
)

// DefaultBaseURL is the public countries API.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// Config is everything the runner reads from the environment.
type Config struct {
	API     API
	Log     Log
	Server  Server
	Redis   RedisConfig
	DB      DatabaseConfig
	Kafka   KafkaConfig
	Browser BrowserConfig

	// ExpectedCountries is the count the business requirement states.
	ExpectedCountries int
	// Strict turns enforce-mode check failures into a failing run.
	Strict bool
}

// API configures the countries API client.
type API struct {
	BaseURL string
}

// Log configures the slog handler.
type Log struct {
	Level  string
	Format string // text or json
}

// Server captures HTTP server level configuration for `serve`.
type Server struct {
	Addr string
}

// RedisConfig configures the optional report cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the optional run history. An empty URL disables it.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// KafkaConfig configures the optional findings stream. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// BrowserConfig configures the Playwright driver.
type BrowserConfig struct {
	Headless          bool
	SlowMo            time.Duration
	DefaultTimeout    time.Duration
	NavigationTimeout time.Duration
	ScreenshotDir     string
	// UseFixtures lets browser suites fall back to the demo fixtures when the
	// live page yields nothing. Reports built that way are flagged.
	UseFixtures bool
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		API: API{
			BaseURL: strings.TrimRight(envString("ATLASQA_BASE_URL", DefaultBaseURL), "/"),
		},
		Log: Log{
			Level:  envString("ATLASQA_LOG_LEVEL", "info"),
			Format: envString("ATLASQA_LOG_FORMAT", "text"),
		},
		Server: Server{
			Addr: envString("ATLASQA_ADDR", ":8080"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("ATLASQA_REDIS_URL"),
			PoolSize:     envInt("ATLASQA_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("ATLASQA_REDIS_MIN_IDLE", 1),
			DialTimeout:  envDuration("ATLASQA_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("ATLASQA_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("ATLASQA_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		DB: DatabaseConfig{
			URL:          os.Getenv("ATLASQA_DATABASE_URL"),
			MaxOpenConns: envInt("ATLASQA_DATABASE_MAX_OPEN", 5),
		},
		Kafka: KafkaConfig{
			Brokers: envList("ATLASQA_KAFKA_BROKERS"),
			Topic:   envString("ATLASQA_KAFKA_TOPIC", "qa.findings"),
		},
		Browser: BrowserConfig{
			Headless:          envBool("ATLASQA_HEADLESS", true),
			SlowMo:            envDuration("ATLASQA_SLOW_MO", 0),
			DefaultTimeout:    envDuration("ATLASQA_BROWSER_TIMEOUT", 60*time.Second),
			NavigationTimeout: envDuration("ATLASQA_NAVIGATION_TIMEOUT", 45*time.Second),
			ScreenshotDir:     envString("ATLASQA_SCREENSHOT_DIR", "."),
			UseFixtures:       envBool("ATLASQA_USE_FIXTURES", false),
		},
		ExpectedCountries: envInt("ATLASQA_EXPECTED_COUNTRIES", 195),
		Strict:            envBool("ATLASQA_STRICT", false),
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envList(key string) []string {
	return strutil.SplitList(os.Getenv(key), ",")
}
