package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrea/wanderguide/internal/config"
	"github.com/kingrea/wanderguide/internal/logging"
	"github.com/kingrea/wanderguide/internal/tourstub"
)

func handleStubServerCommand() bool {
	if len(os.Args) < 2 || os.Args[1] != "stub-server" {
		return false
	}
	flags := flag.NewFlagSet("stub-server", flag.ExitOnError)
	latency := flags.Duration("latency", 0, "delay every tour response by this long")
	_ = flags.Parse(os.Args[2:])

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitProjectDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .wanderguide directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.ServerLogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	gin.SetMode(gin.ReleaseMode)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := tourstub.NewServer(tourstub.SettingsFromConfig(cfg),
		tourstub.WithLogger(logger),
		tourstub.WithLatency(*latency))
	if err := server.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting stub server: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stub tour service listening on %s (logs: %s)\n", server.TourURL(), cfg.ServerLogPath())
	fmt.Printf("Set %s=%s to point the quiz at it.\n", config.EnvEndpoint, server.TourURL())

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping stub server: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stopped after serving %d tour(s).\n", server.Served())
	return true
}
