package main

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel           string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	NumberOfWorkers    int           `env:"NUMBER_OF_WORKERS,default=4" validate:"min=1"`
	QueueSize          int           `env:"QUEUE_SIZE,default=16" validate:"min=1"`
	EventBufferSize    int           `env:"EVENT_BUFFER_SIZE,default=64" validate:"min=1"`
	ActionTimeout      time.Duration `env:"ACTION_TIMEOUT,default=10s" validate:"min=0"`
	SinkTimeout        time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"gt=0"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=0s" validate:"min=0"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	NotificationBuffer int           `env:"NOTIFICATION_BUFFER,default=32" validate:"min=1"`
	ProviderLatency    time.Duration `env:"PROVIDER_LATENCY,default=0s" validate:"min=0"`
	Locale             string        `env:"LOCALE,default=en-US" validate:"required,bcp47_language_tag"`
	Colours            bool          `env:"COLOURS,default=true"`
	HealthAddr         string        `env:"HEALTH_ADDR" validate:"omitempty,hostname_port"`
}

// loadConfig reads an optional .env file, then the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
