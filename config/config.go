package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"5250"`

	// Environment toggles development conveniences (gin debug mode)
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Database struct {
		// Driver selects the storage backend: sqlite or postgres
		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`

		// DSN is a file path for sqlite or a connection string for postgres
		DSN string `env:"DB_DSN" envDefault:"database/homebase.db"`
	}

	// JWTSecret signs identity tokens
	JWTSecret string `env:"JWT_SECRET,required"`

	// ProductKeySecret is mixed into product keys required for
	// non-buyer signups
	ProductKeySecret string `env:"PRODUCT_KEY_SECRET,required"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
