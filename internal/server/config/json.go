package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/notesapp/internal/flagx"
	"github.com/dmitrijs2005/notesapp/internal/timex"
)

// JsonConfig is the on-disk shape of the -c/-config file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted. Only
// keys present in the file override the running Config.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	LogLevel                     *string         `json:"log_level"`
	AccessTokenKey               *string         `json:"access_token_key"`
	RefreshTokenKey              *string         `json:"refresh_token_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	BcryptCost                   *int            `json:"bcrypt_cost"`
	TokenStore                   *string         `json:"token_store"`
	RedisAddr                    *string         `json:"redis_addr"`
	RedisPassword                *string         `json:"redis_password"`
	RedisDB                      *int            `json:"redis_db"`
	RedisPrefix                  *string         `json:"redis_prefix"`
	ExportsEnabled               *bool           `json:"exports_enabled"`
	RabbitMQURL                  *string         `json:"rabbitmq_url"`
	SMTPHost                     *string         `json:"smtp_host"`
	SMTPPort                     *int            `json:"smtp_port"`
	SMTPUser                     *string         `json:"smtp_user"`
	SMTPPassword                 *string         `json:"smtp_password"`
	SMTPFrom                     *string         `json:"smtp_from"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	OTelEndpoint                 *string         `json:"otel_endpoint"`
	OTelServiceName              *string         `json:"otel_service_name"`
	OTelSampleRatio              *float64        `json:"otel_sample_ratio"`
}

// parseJson overlays the JSON file named by -c/-config onto config. Without
// the flag nothing is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.AccessTokenKey, c.AccessTokenKey)
	setIf(&config.RefreshTokenKey, c.RefreshTokenKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.TokenStore, c.TokenStore)
	setIf(&config.RedisAddr, c.RedisAddr)
	setIf(&config.RedisPassword, c.RedisPassword)
	setIf(&config.RedisDB, c.RedisDB)
	setIf(&config.RedisPrefix, c.RedisPrefix)
	setIf(&config.ExportsEnabled, c.ExportsEnabled)
	setIf(&config.RabbitMQURL, c.RabbitMQURL)
	setIf(&config.SMTPHost, c.SMTPHost)
	setIf(&config.SMTPPort, c.SMTPPort)
	setIf(&config.SMTPUser, c.SMTPUser)
	setIf(&config.SMTPPassword, c.SMTPPassword)
	setIf(&config.SMTPFrom, c.SMTPFrom)
	setIf(&config.S3RootUser, c.S3RootUser)
	setIf(&config.S3RootPassword, c.S3RootPassword)
	setIf(&config.S3Bucket, c.S3Bucket)
	setIf(&config.S3Region, c.S3Region)
	setIf(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setIf(&config.OTelEndpoint, c.OTelEndpoint)
	setIf(&config.OTelServiceName, c.OTelServiceName)
	setIf(&config.OTelSampleRatio, c.OTelSampleRatio)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
