package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable, e.g. ADSSTORE_PORT.
const EnvPrefix = "ADSSTORE"

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web/static"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`

	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	DBDSN         string        `envconfig:"DB_DSN" default:"adsstore.db"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	StorageTTL    time.Duration `envconfig:"STORAGE_TTL" default:"0s"`

	CatalogSource  string        `envconfig:"CATALOG_SOURCE" default:"./web/static/js/productos.json"`
	CatalogTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`

	LogFile   string `envconfig:"LOG_FILE"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	Payment PaymentConfig
}

// PaymentConfig holds the static account details shown on the payment page.
// Variables are read as ADSSTORE_PAYMENT_<NAME>.
type PaymentConfig struct {
	BankAccount string `envconfig:"BANK_ACCOUNT" default:"Bancolombia Ahorros 000-000000-00"`
	AccountName string `envconfig:"ACCOUNT_NAME" default:"ADS Store"`
	Llave       string `envconfig:"LLAVE" default:"@adsstore"`
	Nequi       string `envconfig:"NEQUI" default:"300 000 0000"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%s STORAGE=%s DB_DSN=%s CATALOG=%s LOG_FILE=%s",
		cfg.Port, cfg.StorageDriver, cfg.DBDSN, cfg.CatalogSource, cfg.LogFile)
	return cfg, nil
}

func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case StorageSQLite:
		if c.DBDSN == "" {
			return fmt.Errorf("config: %s_DB_DSN is required for sqlite storage", EnvPrefix)
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: %s_REDIS_URL is required for redis storage", EnvPrefix)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}
	if c.CatalogSource == "" {
		return fmt.Errorf("config: %s_CATALOG_SOURCE is required", EnvPrefix)
	}
	if c.StorageTTL < 0 {
		return fmt.Errorf("config: storage ttl must not be negative")
	}
	return nil
}
