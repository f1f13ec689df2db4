package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb"
	"github.com/econorealize/credit-insights-api/infrastructure/integrator/bcb/bcbclient"
	"github.com/econorealize/credit-insights-api/internal/api"
	"github.com/econorealize/credit-insights-api/internal/config"
	"github.com/econorealize/credit-insights-api/internal/usecases/analyzing"
	"github.com/econorealize/credit-insights-api/internal/usecases/authenticating"
	"github.com/econorealize/credit-insights-api/internal/usecases/normalizing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authenticator := authenticating.NewService(cfg)

	bcbClient := bcbclient.NewClient(cfg)
	macroIntegrator := bcb.New(cfg, bcbClient)

	normalizer := normalizing.NewService(cfg)
	analyzer := analyzing.NewService(cfg, macroIntegrator)

	server, err := api.New(cfg, normalizer, analyzer, authenticator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
