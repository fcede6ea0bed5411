package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	Database DatabaseConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	Path   string `env:"DB_PATH" env-default:"equipeapp.sqlite"`
}

type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL" env-default:"60s"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads the given .env files, when they exist, and then the process
// environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
