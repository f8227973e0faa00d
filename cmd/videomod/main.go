package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"videomod/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	_ "go.uber.org/automaxprocs"
)

var flagconf = flag.String("conf", "", "config file path, e.g. -conf configs/config.yaml")

func main() {
	flag.Parse()

	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	helper := log.NewHelper(logger)

	bc, err := conf.Load(*flagconf)
	if err != nil {
		helper.Fatalf("failed to load config: %v", err)
	}

	app, cleanup, err := wireApp(bc.Server, bc.Data, bc.Moderation, logger)
	if err != nil {
		helper.Fatalf("failed to wire application: %v", err)
	}
	defer cleanup()

	// Load stored fraud phrases before accepting traffic.
	if count, err := app.moderation.RebuildFraudTerms(context.Background()); err != nil {
		helper.Warnf("fraud phrase rebuild failed, using built-in list: %v", err)
	} else {
		helper.Infof("fraud phrase matcher ready with %d phrases", count)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			helper.Fatalf("server failed: %v", err)
		}
	case sig := <-stop:
		helper.Infof("received %s, shutting down", sig)
		if err := app.server.Stop(context.Background()); err != nil {
			helper.Errorf("shutdown failed: %v", err)
		}
	}
}
