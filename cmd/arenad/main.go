// Package main starts a Dragonfly server hosting arenas.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oriumgames/arena/internal/arenad"
)

func main() {
	cfg, err := arenad.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := arenad.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
