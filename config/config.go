package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"land_scrooper/extract"
)

type Config struct {
	API           APIConfig
	Browser       BrowserConfig
	Scheduler     SchedulerConfig
	Redis         RedisConfig
	Selectors     extract.Selectors
	BlockCooldown time.Duration
	MemcacheAddr  string
	ExportDir     string
	DatabaseURL   string
	DBPath        string
	LogLevel      string
	LogFile       string
}

type APIConfig struct {
	BaseURL     string
	ProxyURL    string
	MinInterval time.Duration
	JitterMin   time.Duration
	JitterMax   time.Duration
	BackoffBase time.Duration
	MaxRetries  int
	Timeout     time.Duration
}

type BrowserConfig struct {
	Visible     bool
	NavTimeout  time.Duration
	SettleDelay time.Duration
}

// SchedulerConfig describes the periodic collection. An empty Cron disables
// it; commands are still polled.
type SchedulerConfig struct {
	Cron          string
	Regions       []string
	PropertyTypes []string
	TradeTypes    []string
	Strategy      string
	// MaxPages caps the listing pages read per region, property type and
	// trade type.
	MaxPages      int
}

type RedisConfig struct {
	Addr   string
	Stream string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:     getEnv("API_BASE_URL", "https://new.land.naver.com"),
			ProxyURL:    os.Getenv("PROXY_URL"),
			MinInterval: getEnvDuration("API_MIN_INTERVAL", 3*time.Second),
			JitterMin:   getEnvDuration("API_JITTER_MIN", 500*time.Millisecond),
			JitterMax:   getEnvDuration("API_JITTER_MAX", 1500*time.Millisecond),
			BackoffBase: getEnvDuration("API_BACKOFF_BASE", 5*time.Second),
			MaxRetries:  getEnvInt("API_MAX_RETRIES", 3),
			Timeout:     getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Browser: BrowserConfig{
			Visible:     os.Getenv("BROWSER_VISIBLE") == "true",
			NavTimeout:  getEnvDuration("BROWSER_NAV_TIMEOUT", 60*time.Second),
			SettleDelay: getEnvDuration("BROWSER_SETTLE_DELAY", 3*time.Second),
		},
		Scheduler: SchedulerConfig{
			Cron:          os.Getenv("SCRAPE_CRON"),
			Regions:       getEnvList("SCRAPE_REGIONS", []string{"강남구"}),
			PropertyTypes: getEnvList("SCRAPE_PROPERTY_TYPES", []string{"APT"}),
			TradeTypes:    getEnvList("SCRAPE_TRADE_TYPES", []string{"A1"}),
			Strategy:      getEnv("SCRAPE_STRATEGY", "api"),
			MaxPages:      getEnvInt("SCRAPE_MAX_PAGES", 5),
		},
		Redis: RedisConfig{
			Addr:   os.Getenv("REDIS_ADDR"),
			Stream: getEnv("REDIS_STREAM", "land:results"),
		},
		BlockCooldown: getEnvDuration("BLOCK_COOLDOWN", 5*time.Minute),
		MemcacheAddr:  os.Getenv("MEMCACHE_ADDR"),
		ExportDir:     getEnv("EXPORT_DIR", "exports"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBPath:        getEnv("DB_PATH", "scraper.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", "daemon.log"),
	}

	sel, err := LoadSelectors(getEnv("SELECTORS_FILE", "config/selectors.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Selectors = sel

	return cfg, nil
}

// LoadSelectors overlays the YAML file at path on the compiled-in selector
// sets. Layouts and fields the file does not mention keep their defaults. A
// missing file is not an error.
func LoadSelectors(path string) (extract.Selectors, error) {
	sel := extract.DefaultSelectors()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sel, nil
		}
		return sel, err
	}

	if err := yaml.Unmarshal(data, &sel); err != nil {
		return extract.DefaultSelectors(), fmt.Errorf("parse %s: %w", path, err)
	}
	return sel, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
