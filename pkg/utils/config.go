package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Sync    SyncConfig
	Session SessionConfig
	Stub    StubConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SyncConfig holds the per-resource revalidation intervals. The product
// catalog has no interval: it only refetches on mutation or filter change.
type SyncConfig struct {
	UserOrdersRefresh  time.Duration
	AdminOrdersRefresh time.Duration
	DashboardRefresh   time.Duration
}

type SessionConfig struct {
	StatePath string
}

type StubConfig struct {
	Port        string
	AdminSecret string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "resto-client")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:3000")
	viper.SetDefault("API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("USER_ORDERS_REFRESH_SECONDS", 10)
	viper.SetDefault("ADMIN_ORDERS_REFRESH_SECONDS", 5)
	viper.SetDefault("DASHBOARD_REFRESH_SECONDS", 15)
	viper.SetDefault("STATE_PATH", "state/")
	viper.SetDefault("STUB_PORT", "3000")
	viper.SetDefault("STUB_ADMIN_SECRET", "changeme")

	// A missing .env is fine, defaults plus the environment cover it.
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Sync: SyncConfig{
			UserOrdersRefresh:  time.Duration(viper.GetInt("USER_ORDERS_REFRESH_SECONDS")) * time.Second,
			AdminOrdersRefresh: time.Duration(viper.GetInt("ADMIN_ORDERS_REFRESH_SECONDS")) * time.Second,
			DashboardRefresh:   time.Duration(viper.GetInt("DASHBOARD_REFRESH_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			StatePath: viper.GetString("STATE_PATH"),
		},
		Stub: StubConfig{
			Port:        viper.GetString("STUB_PORT"),
			AdminSecret: viper.GetString("STUB_ADMIN_SECRET"),
		},
	}

	return config, nil
}
