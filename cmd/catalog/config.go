package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type variables struct {
	Addr         string        `required:"true" envconfig:"addr"`
	Storage      string        `default:"postgres" envconfig:"storage"`
	PostgresHost string        `envconfig:"postgres_host"`
	PostgresPort int           `envconfig:"postgres_port"`
	PostgresDB   string        `envconfig:"postgres_db"`
	PostgresUser string        `envconfig:"postgres_user"`
	PostgresPass string        `envconfig:"postgres_pass"`
	PostgresSSL  bool          `envconfig:"postgres_ssl"`
	DBTimeout    time.Duration `default:"30s" envconfig:"db_timeout"`
	LogLevel     string        `default:"info" envconfig:"log_level"`
	AppName      string        `default:"music-catalog" envconfig:"app_name"`
}

// loadConfig reads the CATALOG_-prefixed environment, after loading any
// variables from the optional dotenv files. Variables already set in the
// environment win over the files.
func loadConfig(dotenv ...string) (variables, error) {
	var v variables
	for _, f := range dotenv {
		_ = godotenv.Load(f)
	}
	if err := envconfig.Process("catalog", &v); err != nil {
		return v, errors.Wrap(err, "process environment")
	}
	return v, v.validate()
}

func (v variables) validate() error {
	switch v.Storage {
	case storageMemory:
		return nil
	case storagePostgres:
		if v.PostgresHost == "" || v.PostgresDB == "" || v.PostgresUser == "" {
			return errors.New("postgres storage requires postgres_host, postgres_db and postgres_user")
		}
		return nil
	}
	return errors.Errorf("storage must be %q or %q, got %q", storagePostgres, storageMemory, v.Storage)
}
