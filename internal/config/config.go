package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// HTTP settings
	HTTPAddress string

	// Storage backends
	MongoURI      string
	MongoDatabase string
	RedisAddress  string

	// Content store root directory
	FolderPath string

	// Session settings
	SessionTTL time.Duration

	// Mail delivery (optional; logs instead when unset)
	ResendAPIKey string
	MailFrom     string
}

// Load reads configuration from an optional YAML file and environment
// variables, with environment taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":   "HTTP_ADDRESS",
		"MongoURI":      "MONGO_URI",
		"MongoDatabase": "MONGO_DATABASE",
		"RedisAddress":  "REDIS_ADDRESS",
		"FolderPath":    "FOLDER_PATH",
		"SessionTTL":    "SESSION_TTL",
		"ResendAPIKey":  "RESEND_API_KEY",
		"MailFrom":      "MAIL_FROM",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("files_manager")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":5000")
	v.SetDefault("MongoURI", "mongodb://localhost:27017")
	v.SetDefault("MongoDatabase", "files_manager")
	v.SetDefault("RedisAddress", "localhost:6379")
	v.SetDefault("FolderPath", "/tmp/files_manager")
	v.SetDefault("SessionTTL", 24*time.Hour)
}

func validate(config *Config) error {
	if config.MongoURI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	if config.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE must not be empty")
	}
	if config.RedisAddress == "" {
		return fmt.Errorf("REDIS_ADDRESS must not be empty")
	}
	if config.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}
