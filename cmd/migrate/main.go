// Package main provides a CLI for the embedded schema migrations.
//
// Usage:
//
//	migrate [-env .env] up | down | version | steps N | force VERSION
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"doccstock/internal/config"
	"doccstock/internal/infrastructure/storage/postgres"
	"doccstock/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "path to .env file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [-env file] up|down|version|steps N|force VERSION\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.IsDevelopment()})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	ctx := logger.WithLogger(context.Background(), log)

	m, err := postgres.NewMigrator(cfg.Database.DSN(), log)
	if err != nil {
		log.Fatalw("failed to open migrator", "error", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn(ctx, "close migrator", "error", err)
		}
	}()

	if err := run(m, flag.Args()); err != nil {
		log.Errorw("migration failed", "command", flag.Arg(0), "error", err)
		_ = m.Close()
		os.Exit(1)
	}
}

func run(m *postgres.Migrator, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Force(v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", args[0], err)
	}
	return n, nil
}
