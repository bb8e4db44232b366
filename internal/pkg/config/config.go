package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   secrets, provider tokens)
// - default: Values common across all environments (timeouts, fee curve,
//   warehouse origin) that ops may still override
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Geocode  GeocodeConfig
	Delivery DeliveryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Host        string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port        string        `envconfig:"REDIS_PORT" default:"6379"`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// GeocodeConfig drives the Mapbox forward-geocoding client and its Redis cache.
type GeocodeConfig struct {
	MapboxToken string        `envconfig:"MAPBOX_TOKEN" required:"true"`
	BaseURL     string        `envconfig:"MAPBOX_BASE_URL" default:"https://api.mapbox.com"`
	Country     string        `envconfig:"GEOCODE_COUNTRY" default:"IN"`
	Timeout     time.Duration `envconfig:"GEOCODE_TIMEOUT" default:"5s"`
	CacheTTL    time.Duration `envconfig:"GEOCODE_CACHE_TTL" default:"6h"`
}

// DeliveryConfig holds the warehouse origin and the distance-banded fee curve.
// FeeBands is a comma-separated list of "upToKm:fee" pairs sorted ascending;
// distances past the last band are charged PerKmBeyond per kilometer.
type DeliveryConfig struct {
	WarehouseLat float64 `envconfig:"WAREHOUSE_LAT" default:"18.5204"`
	WarehouseLng float64 `envconfig:"WAREHOUSE_LNG" default:"73.8567"`
	FeeBands     string  `envconfig:"DELIVERY_FEE_BANDS" default:"50:500,200:1500,500:4000"`
	PerKmBeyond  float64 `envconfig:"DELIVERY_FEE_PER_KM" default:"15"`
}

type FeeBand struct {
	UpToKm float64
	Fee    float64
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// ParseFeeBands validates and parses the configured fee curve.
func (c *DeliveryConfig) ParseFeeBands() ([]FeeBand, error) {
	parts := strings.Split(c.FeeBands, ",")
	bands := make([]FeeBand, 0, len(parts))
	prev := 0.0
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed fee band %q", p)
		}
		upTo, err := strconv.ParseFloat(kv[0], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed fee band distance %q: %w", kv[0], err)
		}
		fee, err := strconv.ParseFloat(kv[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed fee band amount %q: %w", kv[1], err)
		}
		if upTo <= prev {
			return nil, fmt.Errorf("fee bands must be sorted ascending, got %q after %.0f", p, prev)
		}
		bands = append(bands, FeeBand{UpToKm: upTo, Fee: fee})
		prev = upTo
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("at least one fee band is required")
	}
	return bands, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Geocode: GeocodeConfig{
			MapboxToken: "test-token",
			BaseURL:     "https://api.mapbox.com",
			Country:     "IN",
			Timeout:     time.Second,
			CacheTTL:    time.Hour,
		},
		Delivery: DeliveryConfig{
			WarehouseLat: 18.5204,
			WarehouseLng: 73.8567,
			FeeBands:     "50:500,200:1500,500:4000",
			PerKmBeyond:  15,
		},
	}
}
