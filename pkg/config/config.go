package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "MENU_"

const (
	SourceNone     = ""
	SourceFile     = "file"
	SourceFirebase = "firebase"
)

type Config struct {
	Vendor        string `koanf:"vendor" validate:"required"`
	ListenAddress string `koanf:"listen_address" validate:"required"`
	DebugAddress  string `koanf:"debug_address"`
	DataDir       string `koanf:"data_dir" validate:"required"`

	PreviewLimit int           `koanf:"preview_limit" validate:"gte=0,lte=100"`
	CacheSize    int           `koanf:"cache_size" validate:"gte=0"`
	SnapshotWait time.Duration `koanf:"snapshot_wait" validate:"gte=0"`

	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error fatal"`
	LogJson  bool   `koanf:"log_json"`

	RedisUrl      string `koanf:"redis_url"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db" validate:"gte=0"`

	RabbitUrl      string `koanf:"rabbit_url" validate:"omitempty,url"`
	PublishChanges bool   `koanf:"publish_changes"`

	Source              string `koanf:"source" validate:"omitempty,oneof=file firebase"`
	SourceFile          string `koanf:"source_file" validate:"required_if=Source file"`
	FirebaseDatabaseUrl string `koanf:"firebase_database_url" validate:"required_if=Source firebase"`
	FirebaseCredentials string `koanf:"firebase_credentials"`
}

func Default() Config {
	return Config{
		Vendor:        "default",
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		DataDir:       "data",
		PreviewLimit:  5,
		CacheSize:     1024,
		SnapshotWait:  2 * time.Second,
		LogLevel:      "info",
		Source:        SourceNone,
	}
}

func transformEnvKey(key string, value string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
}

func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the given .env files (missing
// ones are skipped) and MENU_ prefixed environment variables, in that order.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.FirebaseCredentials == "" {
		cfg.FirebaseCredentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
