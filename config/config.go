package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/fitness-connect/internal/domain/types"
	"github.com/Temutjin2k/fitness-connect/pkg/configparser"
	"github.com/go-playground/validator/v10"
)

// Flags
var (
	modeFlag = flag.String("mode", string(types.BookingService), "application mode: booking-service | simulate")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrUnknownMode     = errors.New("unknown mode")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode `ignored:"true"`

		Booking    BookingConfig
		Sessions   SessionsConfig
		HTTP       HTTPConfig
		WebSocket  WebSocketConfig
		Dispatcher DispatcherConfig
		RabbitMQ   RabbitMQConfig
		Database   DatabaseConfig
		Catalog    CatalogConfig
		Simulate   SimulateConfig
		Log        LogConfig
	}

	// BookingConfig holds the simulation timings and pricing constants
	BookingConfig struct {
		MatchDelay    time.Duration `split_words:"true" default:"3s" validate:"gt=0"`
		TickInterval  time.Duration `split_words:"true" default:"100ms" validate:"gt=0"`
		GreetingDelay time.Duration `split_words:"true" default:"1s" validate:"gte=0"`
		ReplyDelay    time.Duration `split_words:"true" default:"1500ms" validate:"gte=0"`

		ProgressStep    float64 `split_words:"true" default:"2" validate:"gt=0,lte=100"`
		EstimateStep    float64 `split_words:"true" default:"0.1" validate:"gte=0"`
		InitialEstimate float64 `split_words:"true" default:"5" validate:"gte=0"`

		MinDuration     int   `split_words:"true" default:"15" validate:"gt=0"`
		MaxDuration     int   `split_words:"true" default:"120" validate:"gtefield=MinDuration"`
		DefaultDuration int   `split_words:"true" default:"60" validate:"gtefield=MinDuration,ltefield=MaxDuration"`
		DurationStep    int   `split_words:"true" default:"15" validate:"gte=0"`
		QuickPicks      []int `split_words:"true" default:"15,30,45,60,90" validate:"dive,gt=0"`

		ReferenceRate float64 `split_words:"true" default:"70" validate:"gt=0"`
	}

	SessionsConfig struct {
		IdleTTL       time.Duration `split_words:"true" default:"30m" validate:"gte=0"`
		SweepInterval time.Duration `split_words:"true" default:"1m" validate:"gte=0"`
		MaxSessions   int           `split_words:"true" default:"1000" validate:"gte=0"`
	}

	HTTPConfig struct {
		Port            string        `split_words:"true" default:"8080" validate:"required,numeric"`
		ReadTimeout     time.Duration `split_words:"true" default:"10s"`
		WriteTimeout    time.Duration `split_words:"true" default:"10s"`
		IdleTimeout     time.Duration `split_words:"true" default:"60s"`
		ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	}

	WebSocketConfig struct {
		SendBuffer int `split_words:"true" default:"64" validate:"gt=0"`
	}

	DispatcherConfig struct {
		QueueSize int `split_words:"true" default:"256" validate:"gt=0"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `split_words:"true" default:"false"`
		Host     string `split_words:"true" default:"localhost"`
		Port     string `split_words:"true" default:"5672"`
		User     string `split_words:"true" default:"guest"`
		Password string `split_words:"true" default:"guest"`
		Exchange string `split_words:"true" default:"booking_topic" validate:"required"`
	}

	DatabaseConfig struct {
		Host     string `split_words:"true" default:"localhost"`
		Port     string `split_words:"true" default:"5432"`
		User     string `split_words:"true" default:"fitness_user"`
		Password string `split_words:"true" default:"fitness_pass"`
		Database string `split_words:"true" default:"fitness_db"`

		MaxConns int32 `split_words:"true" default:"5" validate:"gte=0"` // максимум открытых соединений
	}

	CatalogConfig struct {
		// static - built-in trainer pool, postgres - trainers table
		Source string `split_words:"true" default:"static" validate:"oneof=static postgres"`
		// Seed writes the built-in pool into an empty trainers table
		Seed bool `split_words:"true" default:"false"`
	}

	SimulateConfig struct {
		Exercise string `split_words:"true" default:"Yoga" validate:"required"`
		Duration int    `split_words:"true" default:"45" validate:"gt=0"`
		Message  string `split_words:"true" default:"Oi"`
	}

	LogConfig struct {
		Level string `split_words:"true" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c DatabaseConfig) GetMaxConns() int32 {
	return c.MaxConns
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and the service mode.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch cfg.Mode {
	case types.BookingService, types.SimulateMode:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
	return nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)

	return nil
}
