// Package main drives a running possession service from the command line.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	possessionctl "github.com/louisbranch/possession/internal/cmd/possessionctl"
	"github.com/louisbranch/possession/internal/platform/config"
)

func main() {
	cfg, err := possessionctl.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[POSSESSIONCTL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := possessionctl.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("%v", err)
	}
}
