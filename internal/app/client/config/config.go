package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"admingrid/internal/domain/collection"
)

const (
	defaultServerAddress = "localhost:8010"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".admingrid"
	defaultAuthScheme    = AuthBearer
)

// Supported credential transports.
const (
	AuthBearer = "bearer"
	AuthBasic  = "basic"
	AuthNone   = "none"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	LogLevel      string `mapstructure:"log_level"`
	ConfigDir     string `mapstructure:"config_dir"`
	EnableTLS     bool   `mapstructure:"enable_tls"`

	// Credential transport. The token (or basic-auth pair) is attached to
	// every request; issuing and refreshing credentials happens elsewhere.
	AuthScheme string `mapstructure:"auth_scheme"`
	Token      string `mapstructure:"token"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	TokenPath  string `mapstructure:"token_path"`

	// SnapshotPath is the sqlite file keeping the last successful load per
	// collection.
	SnapshotPath string `mapstructure:"snapshot_path"`

	Collections map[string]collection.Config `mapstructure:"collections"`
}

// MustLoad loads the client configuration from .env, the environment and
// the yaml config file in the config directory.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("AUTH_SCHEME", defaultAuthScheme)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	// Per-collection grid configuration lives in the yaml config file.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("failed to read config file: %v", err))
		}
	}

	config := &Config{
		Env:           viper.GetString("APP_ENV"),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		ConfigDir:     configDir,
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
		AuthScheme:    strings.ToLower(viper.GetString("AUTH_SCHEME")),
		Token:         viper.GetString("ADMIN_TOKEN"),
		Username:      viper.GetString("ADMIN_USER"),
		Password:      viper.GetString("ADMIN_PASS"),
		TokenPath:     filepath.Join(configDir, "token"),
		SnapshotPath:  filepath.Join(configDir, "snapshots.db"),
	}

	if err := viper.UnmarshalKey("collections", &config.Collections); err != nil {
		panic(fmt.Sprintf("failed to parse collections config: %v", err))
	}
	if len(config.Collections) == 0 {
		config.Collections = defaultCollections()
	}
	for name, col := range config.Collections {
		col.ApplyDefaults()
		if col.Path == "" {
			col.Path = "/api/" + name
		}
		config.Collections[name] = col
	}

	// A token file beats the environment so a freshly stored credential
	// wins without re-exporting.
	if data, err := os.ReadFile(config.TokenPath); err == nil {
		if tok := strings.TrimSpace(string(data)); tok != "" {
			config.Token = tok
		}
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	switch c.AuthScheme {
	case AuthBearer, AuthBasic, AuthNone:
	default:
		return fmt.Errorf("auth_scheme must be bearer, basic or none, got %q", c.AuthScheme)
	}
	return nil
}

// defaultCollections is the users admin grid the backends were built
// around, used when the config file defines nothing.
func defaultCollections() map[string]collection.Config {
	users := collection.Config{
		Path:         "/api/users",
		UpdateMethod: collection.MethodPut,
		WrapData:     true,
		BaseColumns: []string{
			"id", "email", "first_name", "last_name", "phone",
			"telegram_username", "active_until", "approved",
			"created_at", "updated_at",
		},
		ExcludedFields:  []string{"password_hash"},
		ImmutableFields: []string{"id", "created_at", "updated_at"},
		BoolFields:      []string{"approved", "affiliator"},
		TimeFields:      []string{"active_until", "created_at", "updated_at"},
	}
	users.ApplyDefaults()
	return map[string]collection.Config{"users": users}
}

// IsProd reports whether the environment is prod.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsDev reports whether the environment is dev.
func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

// IsLocal reports whether the environment is local.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
