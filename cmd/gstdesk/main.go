package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/gstdesk/internal/records/commands"
	"github.com/gartstein/gstdesk/internal/records/controller"
	"github.com/gartstein/gstdesk/internal/records/db"
	"github.com/gartstein/gstdesk/internal/records/events"
	"github.com/gartstein/gstdesk/internal/records/memory"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	HTTPPort           int      `yaml:"HTTP_PORT"`
	DBDialect          string   `yaml:"DB_DIALECT"` // sqlite, postgres or memory
	DBPath             string   `yaml:"DB_PATH"`
	DBHost             string   `yaml:"DB_HOST"`
	DBPort             int      `yaml:"DB_PORT"`
	DBUser             string   `yaml:"DB_USER"`
	DBPassword         string   `yaml:"DB_PASSWORD"`
	DBName             string   `yaml:"DB_NAME"`
	DBSSLMode          string   `yaml:"DB_SSLMODE"`
	KafkaBrokers       []string `yaml:"KAFKA_BROKERS"`
	Topic              string   `yaml:"TOPIC"`
	StrictCategoryRefs bool     `yaml:"STRICT_CATEGORY_REFS"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	companyStorage, categoryStorage, customerStorage, closeStorage, err := initStorage(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer closeStorage()

	producer := initProducer(cfg, logger)
	defer producer.Close()

	companySvc := controller.NewCompanyService(companyStorage, producer, logger)
	categorySvc := controller.NewCategoryService(categoryStorage, producer, logger)
	customerSvc := controller.NewCustomerService(customerStorage, categoryStorage, producer, logger)
	customerSvc.StrictCategoryRefs = cfg.StrictCategoryRefs

	dispatcher := commands.NewDispatcher(companySvc, categorySvc, customerSvc, logger)
	server := commands.NewServer(cfg.HTTPPort, dispatcher, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig loads configuration from config/config.yaml.
func loadConfig() (*Config, error) {
	configPath := filepath.Join("config", "config.yaml")
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initStorage opens the configured backend. The relational backends are
// opened with exponential-backoff retries so a slow-starting database does
// not kill the process.
func initStorage(cfg *Config) (
	controller.CompanyStorage,
	controller.CategoryStorage,
	controller.CustomerStorage,
	func(),
	error,
) {
	if cfg.DBDialect == "memory" {
		store := memory.New()
		return store.Companies, store.Categories, store.Customers, func() {}, nil
	}

	dbCfg := &db.Config{
		Dialect:  cfg.DBDialect,
		Path:     cfg.DBPath,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	var repo *db.Repository
	err := backoff.Retry(func() error {
		var openErr error
		repo, openErr = db.NewRepository(dbCfg)
		return openErr
	}, backoff.NewExponentialBackOff())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	closeFn := func() {
		_ = repo.Close()
	}
	return repo, repo, repo, closeFn, nil
}

// initProducer returns the Kafka producer when brokers are configured, the
// Nop producer otherwise. A desktop install normally runs without a broker.
func initProducer(cfg *Config, logger *zap.Logger) interface {
	controller.EventProducer
	Close()
} {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Nop{}
	}
	return events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then
// shuts down the server.
func waitForShutdown(server *commands.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
