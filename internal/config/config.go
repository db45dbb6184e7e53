package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr        string `mapstructure:"addr"`
		MetricsAddr string `mapstructure:"metrics_addr"`
	} `mapstructure:"server"`
	Data struct {
		File        string `mapstructure:"file"`
		ProjectName string `mapstructure:"project_name"`
		UsersFile   string `mapstructure:"users_file"`
	} `mapstructure:"data"`
	Auth struct {
		Secret          string `mapstructure:"secret"`
		SessionTTLHours int    `mapstructure:"session_ttl_hours"`
		// Comma-separated roles with update rights over entries they do
		// not own, e.g. "mechanical,electrical".
		MaintainerRoles string `mapstructure:"maintainer_roles"`
	} `mapstructure:"auth"`
	Storage struct {
		Provider string `mapstructure:"provider"` // "local" or "s3"
		LocalDir string `mapstructure:"local_dir"`
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Endpoint string `mapstructure:"endpoint"`
		Region   string `mapstructure:"region"`
		Bucket   string `mapstructure:"bucket"`
	} `mapstructure:"storage"`
	Upload struct {
		MaxSizeMB int64 `mapstructure:"max_size_mb"`
	} `mapstructure:"upload"`
	LogLevel string `mapstructure:"log_level"`
}

// MaintainerRoleList splits the configured CSV role set.
func (c *Config) MaintainerRoleList() []string {
	var roles []string
	for _, r := range strings.Split(c.Auth.MaintainerRoles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

func Load() *Config {
	viper.SetEnvPrefix("PITWALL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.addr")
	viper.BindEnv("server.metrics_addr")
	viper.BindEnv("data.file")
	viper.BindEnv("data.project_name")
	viper.BindEnv("data.users_file")
	viper.BindEnv("auth.secret")
	viper.BindEnv("auth.session_ttl_hours")
	viper.BindEnv("auth.maintainer_roles")
	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.local_dir")
	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket")
	viper.BindEnv("upload.max_size_mb")
	viper.BindEnv("log_level")

	// Defaults
	viper.SetDefault("server.addr", ":8081")
	viper.SetDefault("server.metrics_addr", ":9091")
	viper.SetDefault("data.file", "./data/pitwall.json")
	viper.SetDefault("data.project_name", "Phenix Racing - EV")
	viper.SetDefault("auth.session_ttl_hours", 24)
	viper.SetDefault("auth.maintainer_roles", "mechanical,electrical")
	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_dir", "./data/uploads")
	viper.SetDefault("upload.max_size_mb", 5)
	viper.SetDefault("log_level", "info")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = "pitwall-dev-secret-change-me"
		log.Println("Warning: PITWALL_AUTH_SECRET not set, using the built-in dev secret")
	}

	if cfg.Storage.Provider == "s3" && cfg.Storage.KeyID == "" {
		log.Fatal("Critical: storage key id is missing (PITWALL_STORAGE_KEY_ID)")
	}

	return &cfg
}
