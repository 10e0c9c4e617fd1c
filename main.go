package main

import (
	"context"
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harrisonrobin/budgetsync/pkg/asana"
	"github.com/harrisonrobin/budgetsync/pkg/budget"
	"github.com/harrisonrobin/budgetsync/pkg/config"
	"github.com/harrisonrobin/budgetsync/pkg/server"
)

func main() {
	debug := flag.Bool("debug", false, "verbose logging and gin debug mode")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	client := asana.NewClient(context.Background(), cfg.AsanaToken)

	resolver := budget.NewResolver(client, cfg.EstimatedCostField, cfg.ActualCostField, logger)
	status := budget.NewStatusManager(client, logger)
	orch := budget.NewOrchestrator(client, resolver, status,
		cfg.TemplateProjectGID, cfg.ReconcileConcurrency, logger)

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(orch, client, server.Options{
		PublicBaseURL:      cfg.PublicBaseURL,
		TemplateProjectGID: cfg.TemplateProjectGID,
	}, logger)

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
