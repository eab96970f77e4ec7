// Package config loads runtime settings from the environment and an optional
// config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Database DatabaseConfig `mapstructure:"database"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Render   RenderConfig   `mapstructure:"render"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DynamoDBConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ProposalsTable  string `mapstructure:"proposals_table"`
	SignaturesTable string `mapstructure:"signatures_table"`
	PaymentsTable   string `mapstructure:"payments_table"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type PaymentsConfig struct {
	MockMode        bool   `mapstructure:"mock_mode"`
	AccessToken     string `mapstructure:"access_token"`
	TestPayerEmail  string `mapstructure:"test_payer_email"`
	TestPayerUserID string `mapstructure:"test_payer_user_id"`
}

type RenderConfig struct {
	Compress bool `mapstructure:"compress"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads ./config.yaml or ./configs/config.yaml when present and lets the
// environment override every key.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("storage.driver", StorageDynamoDB)

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.proposals_table", "proposals")
	v.SetDefault("dynamodb.signatures_table", "proposal_signatures")
	v.SetDefault("dynamodb.payments_table", "proposal_payments")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("payments.mock_mode", false)

	v.SetDefault("render.compress", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.mode", "GIN_MODE")

	// Storage
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")

	// DynamoDB
	_ = v.BindEnv("dynamodb.region", "AWS_REGION")
	_ = v.BindEnv("dynamodb.endpoint", "DYNAMODB_ENDPOINT")
	_ = v.BindEnv("dynamodb.access_key_id", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("dynamodb.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("dynamodb.proposals_table", "PROPOSALS_TABLE")
	_ = v.BindEnv("dynamodb.signatures_table", "SIGNATURES_TABLE")
	_ = v.BindEnv("dynamodb.payments_table", "PAYMENTS_TABLE")

	// Postgres
	_ = v.BindEnv("database.dsn", "DATABASE_DSN")
	_ = v.BindEnv("database.auto_migrate", "DATABASE_AUTO_MIGRATE")

	// Mercado Pago
	_ = v.BindEnv("payments.mock_mode", "PAYMENT_GATEWAY_MOCK")
	_ = v.BindEnv("payments.access_token", "MERCADOPAGO_ACCESS_TOKEN")
	_ = v.BindEnv("payments.test_payer_email", "MERCADOPAGO_TEST_PAYER_EMAIL")
	_ = v.BindEnv("payments.test_payer_user_id", "MERCADOPAGO_TEST_PAYER_USER_ID")

	// Render
	_ = v.BindEnv("render.compress", "RENDER_COMPRESS")

	// Log
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("config: DATABASE_DSN is required for the %s storage driver", StoragePostgres)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid server port %d", c.Server.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
