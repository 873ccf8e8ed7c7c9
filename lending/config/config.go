package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/JasonDavD/biblioteca-bibliotech/pkg/kafka"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/logger"
	"github.com/JasonDavD/biblioteca-bibliotech/pkg/postgres"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LENDING_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LENDING_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Ledger struct {
	// Store selects the repository backend: postgres or memory.
	Store           string        `yaml:"store" envconfig:"LEDGER_STORE" default:"postgres"`
	SweepInterval   time.Duration `yaml:"sweepInterval" envconfig:"LEDGER_SWEEP_INTERVAL" default:"1h"`
	MaxOpenLoans    int           `yaml:"maxOpenLoans" envconfig:"LEDGER_MAX_OPEN_LOANS" default:"3"`
	DueSoonDays     int           `yaml:"dueSoonDays" envconfig:"LEDGER_DUE_SOON_DAYS" default:"3"`
	DefaultLoanDays int           `yaml:"defaultLoanDays" envconfig:"LEDGER_DEFAULT_LOAN_DAYS" default:"14"`
}

type Config struct {
	Server   HTTPServer  `yaml:"server"`
	Database postgres.DB `yaml:"db"`
	Kafka    kafka.Config
	Log      logger.Log `yaml:"log"`
	Ledger   Ledger     `yaml:"ledger"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options override what the
// environment provides.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
