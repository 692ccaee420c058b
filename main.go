package main

import (
	"log/slog"
	"os"

	"github.com/lazharichir/handreplay/applog"
	"github.com/lazharichir/handreplay/config"
	"github.com/lazharichir/handreplay/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := applog.Init(cfg.LogLevel)
	logger.Info("starting hand replay server")

	s := server.NewServer(cfg, logger)
	if err := s.Start(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
