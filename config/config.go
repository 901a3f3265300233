package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Database struct {
		Host         string `mapstructure:"host"`
		Port         string `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Name         string `mapstructure:"name"`
		Sslmode      string `mapstructure:"sslmode"`
		Timezone     string `mapstructure:"timezone"`
		MaxIdleConns int    `mapstructure:"max_idle_conns"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	NewsAPI struct {
		Key     string `mapstructure:"key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"newsapi"`
	Client struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"client"`
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("app.port", ":8080")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("newsapi.base_url", "https://newsapi.org/v2")

	if err := viper.ReadInConfig(); err != nil {
		// env vars can still carry the full configuration
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Fatalf("Failed to read config file: %v", err)
		}
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		logrus.Fatalf("Failed to unmarshal config: %v", err)
	}

	initDB()
	initRedis()
}

// IsProduction reports whether the app runs with app.env=production.
// Controllers use it to decide on Secure cookies.
func IsProduction() bool {
	return AppConfig != nil && AppConfig.App.Env == "production"
}
