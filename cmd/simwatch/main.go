package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/viert/simwatch/internal/config"
	"github.com/viert/simwatch/internal/manager"
	"github.com/viert/simwatch/internal/metrics"
	"github.com/viert/simwatch/internal/server"
	"github.com/viert/simwatch/internal/track"
	"github.com/viert/simwatch/internal/vatsim"
	"github.com/viert/simwatch/internal/weather"
)

const appName = "simwatch"

// version is stamped by the build via -ldflags.
var version = "dev"

var configPath = flag.String("c", "", "path to the config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("can't load config: %s", err)
	}
	logrus.SetLevel(cfg.LogrusLevel())
	logrus.Infof("%s %s starting", appName, version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api := weather.NewAPI(weather.DefaultBaseURL, cfg.API.Timeout.Std())
	wx := weather.NewService(api, cfg.Weather.TTL.Std())
	store := track.NewStore(cfg.Track.Folder)
	mtr := metrics.New(api.RequestCount)
	feed := vatsim.NewClient(cfg.API.URL, cfg.API.Timeout.Std())

	m := manager.New(cfg, feed, wx, store, mtr)
	go m.Run(ctx)
	go wx.Run(ctx, cfg.Weather.RefreshPeriod.Std())

	srv := server.New(cfg, m, store, mtr, server.BuildInfo{Name: appName, Version: version})
	if err := srv.Run(ctx); err != nil {
		logrus.Errorf("server stopped: %s", err)
		os.Exit(1)
	}
	logrus.Info("bye")
}
