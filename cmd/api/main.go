package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/JGunda88/battery-trade-optimiser/internal/api/handlers"
	"github.com/JGunda88/battery-trade-optimiser/internal/api/middleware"
	"github.com/JGunda88/battery-trade-optimiser/internal/config"
	"github.com/JGunda88/battery-trade-optimiser/internal/logger"
	"github.com/JGunda88/battery-trade-optimiser/internal/metrics"
	"github.com/JGunda88/battery-trade-optimiser/internal/runner"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("BTO_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	rec := metrics.New()

	run, err := runner.New(cfg, log, rec)
	if err != nil {
		log.Fatal().Err(err).Msg("runner init failed")
	}

	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	optimiseHandler := handlers.NewOptimiseHandler(run, log)
	api := router.Group("/api/v1")
	{
		api.POST("/optimise", optimiseHandler.Optimise)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("backend", cfg.Solver.Backend).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
