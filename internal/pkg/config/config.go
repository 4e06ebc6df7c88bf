package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // opening hours must resolve IANA zones on minimal images

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Schedule  ScheduleConfig
	Lock      LockConfig
	Events    EventsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"memory"`
	SeedData bool   `envconfig:"SEED_DATA" default:"true"`
}

// DBConfig is only consulted when STORE_DRIVER=postgres.
type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"coworking"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"Europe/Paris"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// ScheduleConfig mirrors the admin "settings" of the booking rules.
type ScheduleConfig struct {
	TimeZone    string        `envconfig:"SCHEDULE_TIMEZONE" default:"Europe/Paris"`
	OpenHour    int           `envconfig:"SCHEDULE_OPEN_HOUR" default:"7"`
	CloseHour   int           `envconfig:"SCHEDULE_CLOSE_HOUR" default:"22"`
	MinDuration time.Duration `envconfig:"SCHEDULE_MIN_DURATION" default:"15m"`
	MaxDuration time.Duration `envconfig:"SCHEDULE_MAX_DURATION" default:"8h"`

	// SameDayClose rejects reservations that end past closing on a later day.
	SameDayClose bool `envconfig:"SCHEDULE_SAME_DAY_CLOSE" default:"false"`
	AutoConfirm  bool `envconfig:"RESERVATION_AUTO_CONFIRM" default:"true"`
}

const (
	LockDriverMemory = "memory"
	LockDriverRedis  = "redis"
)

type LockConfig struct {
	Driver        string        `envconfig:"LOCK_DRIVER" default:"memory"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"LOCK_TTL" default:"10s"`
	Wait          time.Duration `envconfig:"LOCK_WAIT" default:"5s"`
}

// EventsConfig enables AMQP publishing when URL is set. Otherwise events are logged.
type EventsConfig struct {
	AMQPURL string `envconfig:"AMQP_URL"`
	Queue   string `envconfig:"EVENTS_QUEUE" default:"reservation.events"`

	// DialTimeout bounds how long a write waits on an unreachable broker.
	DialTimeout time.Duration `envconfig:"EVENTS_DIAL_TIMEOUT" default:"2s"`
}

type RateLimitConfig struct {
	Enabled bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RPS     float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst   int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Lock.Driver {
	case LockDriverMemory, LockDriverRedis:
	default:
		return fmt.Errorf("unsupported LOCK_DRIVER %q", c.Lock.Driver)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver:   StoreDriverMemory,
			SeedData: false,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Schedule: ScheduleConfig{
			TimeZone:    "UTC",
			OpenHour:    7,
			CloseHour:   22,
			MinDuration: 15 * time.Minute,
			MaxDuration: 8 * time.Hour,
			AutoConfirm: true,
		},
		Lock: LockConfig{
			Driver: LockDriverMemory,
			TTL:    5 * time.Second,
			Wait:   2 * time.Second,
		},
		Events: EventsConfig{
			Queue:       "reservation.events",
			DialTimeout: 2 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
		},
	}
}
