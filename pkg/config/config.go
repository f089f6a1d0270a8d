package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Generation GenerationConfig `mapstructure:"generation"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type AdminConfig struct {
	// Password must be provided (ADMIN_PASSWORD); the process refuses to
	// start without it.
	Password        string `mapstructure:"password"`
	SecretKey       string `mapstructure:"secret_key"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
}

type ModerationConfig struct {
	RulesPath string `mapstructure:"rules_path"`
}

type GenerationConfig struct {
	Provider     string                 `mapstructure:"provider"`
	ApiKey       string                 `mapstructure:"api_key"`
	Model        string                 `mapstructure:"model"`
	MaxTokens    int                    `mapstructure:"max_tokens"`
	Temperature  float64                `mapstructure:"temperature"`
	SystemPrompt string                 `mapstructure:"system_prompt"`
	Options      map[string]interface{} `mapstructure:"options"`
}

const defaultSystemPrompt = "You are ChatGuard, an educational assistant. Provide defensive, legal, " +
	"and instructional guidance suitable for learning in a private lab. If the user asks for illegal " +
	"or weaponized steps, refuse and suggest safe alternatives and learning resources."

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, and
	// Unmarshal never consults it for keys absent from the file (secrets
	// like admin.password are kept out of config.yaml on purpose). Bind
	// every key explicitly so ADMIN_PASSWORD, GENERATION_API_KEY and the
	// rest reach the struct with or without a config file.
	for _, key := range []string{
		"server.host",
		"server.port",
		"server.metrics_port",
		"admin.password",
		"admin.secret_key",
		"admin.token_ttl_minutes",
		"moderation.rules_path",
		"generation.provider",
		"generation.api_key",
		"generation.model",
		"generation.max_tokens",
		"generation.temperature",
		"generation.system_prompt",
	} {
		if err := viper.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// Environment variables alone are enough to run.
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Admin.SecretKey == "" {
		globalConfig.Admin.SecretKey = "change_this_secret"
	}
	if globalConfig.Admin.TokenTTLMinutes == 0 {
		globalConfig.Admin.TokenTTLMinutes = 60
	}
	if globalConfig.Moderation.RulesPath == "" {
		globalConfig.Moderation.RulesPath = "rules.json"
	}
	if globalConfig.Generation.Provider == "" {
		globalConfig.Generation.Provider = "openai"
	}
	if globalConfig.Generation.Model == "" {
		globalConfig.Generation.Model = "gpt-4o-mini"
	}
	if globalConfig.Generation.MaxTokens == 0 {
		globalConfig.Generation.MaxTokens = 300
	}
	if globalConfig.Generation.SystemPrompt == "" {
		globalConfig.Generation.SystemPrompt = defaultSystemPrompt
	}
}

func GetConfig() *Config {
	return &globalConfig
}
