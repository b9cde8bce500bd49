package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/IlianBuh/Wall-service/internal/config/grpcobj"
	"github.com/IlianBuh/Wall-service/internal/config/httpobj"
	"github.com/IlianBuh/Wall-service/internal/config/kafka"
	"github.com/IlianBuh/Wall-service/internal/config/remote"
	"github.com/IlianBuh/Wall-service/internal/config/storage"
	"github.com/IlianBuh/Wall-service/internal/config/wall"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env    string         `mapstructure:"env"`
	Remote remote.Config  `mapstructure:"remote"`
	Local  storage.Config `mapstructure:"local"`
	Wall   wall.Config    `mapstructure:"wall"`
	GRPC   grpcobj.Config `mapstructure:"grpc"`
	HTTP   httpobj.Config `mapstructure:"http"`
	Kafka  kafka.Config   `mapstructure:"kafka"`
}

const (
	defaultConfigPath = "./config/config.json"

	envBackendURL = "WALL_BACKEND_URL"
	envAPIKey     = "WALL_API_KEY"
	envConfigPath = "CONFIG_PATH"
)

// New creates new object of applications' configuration
func New() *Config {
	// .env is optional, values from real environment are not overridden
	_ = godotenv.Load()

	path := fetchConfigPath()

	cfg := MustLoad(path)

	return cfg
}

// MustLoad is wrapper of load function to panic if error occurred
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic("failed to load config file: " + err.Error())
	}

	return cfg
}

// Load loads config from json file by path and environment. Missing file
// at default path is not an error, defaults and environment are used then
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := v.BindEnv("remote.url", envBackendURL); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := v.BindEnv("remote.api-key", envAPIKey); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
		case err != nil:
			return nil, fmt.Errorf("%s: %w", path, err)
		default:
			v.SetConfigFile(path)
			if err = v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("remote.timeout", "5s")
	v.SetDefault("local.path", "./data/wall.db")
	v.SetDefault("wall.refresh-interval", "60s")
	v.SetDefault("wall.timeout", "10s")
	v.SetDefault("grpc.port", 20203)
	v.SetDefault("grpc.timeout", "5s")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.timeout", "5s")
	v.SetDefault("kafka.topic", "wall-events")
	v.SetDefault("kafka.timeout", "5s")
	v.SetDefault("kafka.retries", 3)
}

// fetchConfigPath fetches config path from either flag 'config' or environment variable.
// If both are empty default value will be returned
// flag > env > default
func fetchConfigPath() string {
	res := ""

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res != "" {
		return res
	}

	res = os.Getenv(envConfigPath)
	if res != "" {
		return res
	}

	return defaultConfigPath
}
