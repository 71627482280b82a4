package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded once at startup and
// passed by value into the components that need it.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Content  ContentConfig  `mapstructure:"content"`
	Mail     MailConfig     `mapstructure:"mail"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// BaseURL is used to build absolute magic-link URLs in login emails.
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	// RestorePath is where restored backups are written; kept separate from
	// Path so a restore never clobbers the live database file.
	RestorePath string `mapstructure:"restore_path"`
}

type ContentConfig struct {
	Root string `mapstructure:"root"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

// Configured reports whether SMTP delivery is usable; without it the server
// logs magic links instead of emailing them.
func (m MailConfig) Configured() bool {
	return m.Host != "" && m.Sender != ""
}

type AuthConfig struct {
	SecretKey  string `mapstructure:"secret_key"`
	AdminEmail string `mapstructure:"admin_email"`
}

type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// Nightly enables the midnight backup loop in the serve command.
	Nightly bool `mapstructure:"nightly"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml from the working directory when present and lets
// CLASSQUIZ_* environment variables override any key (CLASSQUIZ_DATABASE_PATH
// overrides database.path, and so on).
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("classquiz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key gets a default so AutomaticEnv picks up overrides during
	// Unmarshal.
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("database.path", "data/app.db")
	v.SetDefault("database.restore_path", "data/app_restored.db")
	v.SetDefault("content.root", "quizzes")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.sender", "")
	v.SetDefault("auth.secret_key", "supersecretkey")
	v.SetDefault("auth.admin_email", "")
	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("backup.access_key", "")
	v.SetDefault("backup.secret_key", "")
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.region", "us-east-1")
	v.SetDefault("backup.use_ssl", true)
	v.SetDefault("backup.nightly", false)
	v.SetDefault("logging.level", "info")
}
