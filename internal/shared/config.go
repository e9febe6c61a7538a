package shared

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string        `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	MetricsAddr string        `envconfig:"METRICS_ADDR" default:":9100"`

	DBDriver string `envconfig:"DB_DRIVER" default:"mysql"`
	DBDSN    string `envconfig:"DB_DSN" default:"root:root@tcp(localhost:3306)/hotel?charset=utf8mb4&loc=UTC"`

	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPass       string `envconfig:"REDIS_PASSWORD"`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"900"`

	GeocoderBase      string `envconfig:"GEOCODER_BASE_URL"`
	GeocoderKey       string `envconfig:"GEOCODER_API_KEY"`
	GeocoderRPS       int    `envconfig:"GEOCODER_RPS" default:"1"`
	GeocoderUserAgent string `envconfig:"GEOCODER_USER_AGENT" default:"hotel-portal/1.0"`
	GeocodeWorkers    int    `envconfig:"GEOCODE_WORKERS" default:"4"`
	GeocodeBatch      int    `envconfig:"GEOCODE_BATCH" default:"100"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"hotel.events"`

	AdminAPIURL string `envconfig:"ADMIN_API_URL" default:"http://localhost:8080"`
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load reads .env (when present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if c.CacheTTLSeconds < 0 {
		return Config{}, fmt.Errorf("load config: CACHE_TTL_SECONDS must not be negative")
	}
	if c.GeocoderBase == "" {
		log.Warn().Msg("GEOCODER_BASE_URL is empty; map lookups are disabled")
	}
	return c, nil
}
