package main

import (
	"fmt"
	"log"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/events"
	"fintrack/internal/logger"
	"fintrack/internal/server"
	"fintrack/internal/validator"
)

// @title           Personal Finance Tracker API
// @version         1.0
// @description     Track transactions against categories and monthly budgets, and read the monthly budget-vs-actual summary.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()

	if err := run(appConfig); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(appConfig *config.Config) error {
	log := logger.Get()

	validator.Register()

	// Initialize database
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Change events go to the broker when one is configured
	var publisher events.Publisher = events.NopPublisher{}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to event broker: %w", err)
		}
		defer func() {
			if err := amqpPublisher.Close(); err != nil {
				log.Warnf("event broker close error: %v", err)
			}
		}()
		publisher = amqpPublisher
		log.Infow("Publishing change events", "exchange", appConfig.AMQPExchange)
	}

	router := server.NewRouter(server.NewServices(dbManager.DB(), publisher), appConfig.CORSAllowedOrigin)

	log.Infof("Starting %s on port %s", appConfig.AppName, appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
