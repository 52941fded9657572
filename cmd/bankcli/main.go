package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bankclient/internal/buildinfo"
	"github.com/dmitrijs2005/bankclient/internal/client/cli"
	"github.com/dmitrijs2005/bankclient/internal/client/config"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/dmitrijs2005/bankclient/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx, os.Args[1:], nil)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewZerologLogger(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, logger); err != nil {
				logger.Error(ctx, "metrics listener stopped", "err", err)
			}
		}()
	}

	app, err := cli.NewApp(ctx, cfg, logger, reg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close storage", "err", err)
		}
	}()

	// The REPL blocks on stdin, so a signal closes storage and exits here.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		_ = app.Close()
		os.Exit(130)
	}()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "client stopped", "err", err)
	}
}
