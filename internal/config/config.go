package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	PaymentsDB `yaml:"payments_db"`
	LogConfig  `yaml:"log_config"`
	Gateway    `yaml:"gateway"`
	KafkaService `yaml:"kafka-service"`
	RedisService `yaml:"redis-service"`
	Reconciler   `yaml:"reconciler"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentsDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type Gateway struct {
	BaseURL        string `yaml:"base_url"`
	PublicKey      string `yaml:"public_key"`
	PrivateKey     string `yaml:"private_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"10"`
}

type KafkaService struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	EventsTopic string `yaml:"events_topic" env-default:"payment-events"`
}

type RedisService struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Reconciler struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds" env-default:"300"`
	LockTTLSeconds      int `yaml:"lock_ttl_seconds" env-default:"240"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
