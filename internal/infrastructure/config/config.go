package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BackendConfig struct {
	URL            string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"BACKEND_REQUEST_TIMEOUT" envDefault:"15s"`
}

type KafkaConfig struct {
	Broker  string `env:"KAFKA_BROKER" envDefault:"localhost:9092"`
	Topic   string `env:"KAFKA_TOPIC" envDefault:"order_events"`
	GroupID string `env:"KAFKA_GROUP_ID" envDefault:"pos_clients"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
}

type HTTPConfig struct {
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type PanelConfig struct {
	PageLength  int           `env:"PANEL_PAGE_LENGTH" envDefault:"10"`
	Debounce    time.Duration `env:"PANEL_SEARCH_DEBOUNCE" envDefault:"300ms"`
	PrintFormat string        `env:"PANEL_PRINT_FORMAT" envDefault:"POS Invoice"`
}

type ProducerConfig struct {
	Kafka KafkaConfig
}

type AppConfig struct {
	Backend BackendConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	Panels  PanelConfig
}

func LoadProducerConfig() (*ProducerConfig, error) {
	cfg := &ProducerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
