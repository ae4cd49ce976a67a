package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys keep the
// built-in defaults.
type FileConfig struct {
	HTTP     HTTPSection     `toml:"http"`
	Postgres PostgresSection `toml:"postgres"`
	Kafka    KafkaSection    `toml:"kafka"`
	Outbox   OutboxSection   `toml:"outbox"`
	DLQ      DLQSection      `toml:"dlq"`
	Auth     AuthSection     `toml:"auth"`
	Plan     PlanSection     `toml:"plan"`
	Log      LogSection      `toml:"log"`
}

type HTTPSection struct {
	Address        *string `toml:"address"`
	MetricsAddress *string `toml:"metrics_address"`
	CORSOrigin     *string `toml:"cors_origin"`
}

type PostgresSection struct {
	URL *string `toml:"url"`
}

type KafkaSection struct {
	Brokers               []string  `toml:"brokers"`
	SchemaRegistryURL     *string   `toml:"schema_registry_url"`
	SchemaRegistryTimeout *duration `toml:"schema_registry_timeout"`
	ConsumerGroupID       *string   `toml:"consumer_group_id"`
	ConsumerTopics        []string  `toml:"consumer_topics"`
}

type OutboxSection struct {
	PollInterval *duration `toml:"poll_interval"`
	BatchSize    *int      `toml:"batch_size"`
	ClaimLease   *duration `toml:"claim_lease"`
}

type DLQSection struct {
	PollInterval *duration `toml:"poll_interval"`
	MaxRetries   *int      `toml:"max_retries"`
	BaseDelay    *duration `toml:"base_delay"`
}

type AuthSection struct {
	JWTSecret *string `toml:"jwt_secret"`
	JWTIssuer *string `toml:"jwt_issuer"`
}

type PlanSection struct {
	Timezone     *string   `toml:"timezone"`
	SeedCacheTTL *duration `toml:"seed_cache_ttl"`
}

type LogSection struct {
	Level      *string `toml:"level"`
	FormatJSON *bool   `toml:"format_json"`
	File       *string `toml:"file"`
}

// duration decodes TOML strings such as "2s" or "1h30m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// LoadFile reads a TOML config from path. An empty path or a missing file
// yields an empty FileConfig.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func (f FileConfig) overlay(c Config) Config {
	setString(&c.HTTPAddress, f.HTTP.Address)
	setString(&c.MetricsAddress, f.HTTP.MetricsAddress)
	setString(&c.CORSOrigin, f.HTTP.CORSOrigin)
	setString(&c.PostgresURL, f.Postgres.URL)
	if len(f.Kafka.Brokers) > 0 {
		c.KafkaBrokers = f.Kafka.Brokers
	}
	setString(&c.SchemaRegistryURL, f.Kafka.SchemaRegistryURL)
	setDuration(&c.RegistryTimeout, f.Kafka.SchemaRegistryTimeout)
	setString(&c.ConsumerGroupID, f.Kafka.ConsumerGroupID)
	if len(f.Kafka.ConsumerTopics) > 0 {
		c.ConsumerTopics = f.Kafka.ConsumerTopics
	}
	setDuration(&c.OutboxPollInterval, f.Outbox.PollInterval)
	setInt(&c.OutboxBatchSize, f.Outbox.BatchSize)
	setDuration(&c.OutboxClaimLease, f.Outbox.ClaimLease)
	setDuration(&c.DLQPollInterval, f.DLQ.PollInterval)
	setInt(&c.DLQMaxRetries, f.DLQ.MaxRetries)
	setDuration(&c.DLQBaseDelay, f.DLQ.BaseDelay)
	setString(&c.JWTSecret, f.Auth.JWTSecret)
	setString(&c.JWTIssuer, f.Auth.JWTIssuer)
	setString(&c.PlanTimezone, f.Plan.Timezone)
	setDuration(&c.SeedCacheTTL, f.Plan.SeedCacheTTL)
	setString(&c.LogLevel, f.Log.Level)
	setString(&c.LogFile, f.Log.File)
	if f.Log.FormatJSON != nil {
		c.LogFormatJSON = *f.Log.FormatJSON
	}
	return c
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *duration) {
	if v != nil {
		*dst = v.Duration
	}
}
