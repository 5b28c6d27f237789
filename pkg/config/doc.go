// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read once per process, then env.Parse fills any struct
// annotated with `env` tags. MustLoad panics on failure for configuration the
// process cannot run without.
//
//	type ServiceConfig struct {
//		MaxUpdateAttempts int `env:"SESSION_MAX_UPDATE_ATTEMPTS" envDefault:"5"`
//	}
//
//	var cfg ServiceConfig
//	config.MustLoad(&cfg)
package config
