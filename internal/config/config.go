package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the application.
// It includes the environment type, the two server ports, database and
// token settings, and the local timezone used to derive attendance dates.
type Config struct {
	Env         string         `yaml:"env"`        // Env is the current environment: local, dev, prod.
	HTTPPort    int            `yaml:"http"`       // HTTPPort is the API server port.
	MonitorPort int            `yaml:"monitoring"` // MonitorPort is the monitoring server port.
	Database    PostgresConfig `yaml:"postgres"`   // Database holds the postgres database configuration
	Auth        AuthConfig     `yaml:"auth"`       // Auth holds the access token settings.
	Timezone    string         `yaml:"timezone"`   // Timezone is the zone attendance days are derived in.
	Location    *time.Location `yaml:"-"`          // Location is the parsed Timezone.
	Telegram    TelegramConfig `yaml:"telegram"`   // Telegram holds the optional notifier settings.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// AuthConfig holds the access token signing settings.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`    // Secret signs the access tokens.
	TokenTTL time.Duration `yaml:"token_ttl"` // TokenTTL is the access token lifetime.
}

// TelegramConfig holds the optional leave notification settings. An empty
// token disables the notifier.
type TelegramConfig struct {
	Token  string `yaml:"token"`   // Token is a telegram bot token.
	ChatID int64  `yaml:"chat_id"` // ChatID is the chat leave events are sent to.
}

// MustLoad loads the configuration and returns a Config struct. A .env file
// is honored when present, then a YAML file pointed to by CONFIG_PATH, then
// plain environment variables. It panics when the config is unusable.
func MustLoad() *Config {
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	for key, env := range map[string]string{
		"env":               "CHRONOS_ENV",
		"http.port":         "CHRONOS_HTTP_PORT",
		"monitoring.port":   "CHRONOS_MONITORING_PORT",
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.db_name":  "DB_NAME",
		"auth.secret":       "CHRONOS_JWT_SECRET",
		"auth.token_ttl":    "CHRONOS_TOKEN_TTL",
		"timezone":          "CHRONOS_TIMEZONE",
		"telegram.token":    "CHRONOS_TELEGRAM_TOKEN",
		"telegram.chat_id":  "CHRONOS_TELEGRAM_CHAT",
	} {
		_ = viper.BindEnv(key, env)
	}

	defHTTPPort := 8080
	defMonitorPort := 9091
	defTokenTTL := 24

	viper.SetDefault("env", "local")
	viper.SetDefault("http.port", defHTTPPort)
	viper.SetDefault("monitoring.port", defMonitorPort)
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("auth.token_ttl", time.Duration(defTokenTTL)*time.Hour)
	viper.SetDefault("timezone", "Asia/Kolkata")

	cfg := &Config{
		Env:         viper.GetString("env"),
		HTTPPort:    viper.GetInt("http.port"),
		MonitorPort: viper.GetInt("monitoring.port"),
		Timezone:    viper.GetString("timezone"),
		Database: PostgresConfig{
			Host:     viper.GetString("postgres.host"),
			Port:     viper.GetString("postgres.port"),
			User:     viper.GetString("postgres.user"),
			Password: viper.GetString("postgres.password"),
			Name:     viper.GetString("postgres.db_name"),
		},
		Auth: AuthConfig{
			Secret:   viper.GetString("auth.secret"),
			TokenTTL: viper.GetDuration("auth.token_ttl"),
		},
		Telegram: TelegramConfig{
			Token:  viper.GetString("telegram.token"),
			ChatID: viper.GetInt64("telegram.chat_id"),
		},
	}

	if cfg.Auth.Secret == "" {
		panic("auth secret is empty")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		panic("unknown timezone: " + cfg.Timezone)
	}
	cfg.Location = location

	return cfg
}
