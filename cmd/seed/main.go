// Package main provides a CLI tool for seeding users and product types.
//
// Usage:
//
//	seed -admin-password secret -types "A100:Board A,B200:Board B"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"doccstock/internal/config"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/domain/auth"
	"doccstock/internal/domain/pba"
	"doccstock/internal/infrastructure/storage/postgres"
	"doccstock/internal/infrastructure/storage/postgres/auth_repo"
	"doccstock/internal/infrastructure/storage/postgres/pba_repo"
	"doccstock/pkg/logger"
)

type seedFlags struct {
	envFile       string
	adminUsername string
	adminPassword string
	userUsername  string
	userPassword  string
	productTypes  string
	migrate       bool
}

func main() {
	var f seedFlags
	flag.StringVar(&f.envFile, "env", "", "path to .env file")
	flag.StringVar(&f.adminUsername, "admin-username", envOr("SEED_ADMIN_USERNAME", "admin"), "admin username")
	flag.StringVar(&f.adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password (required)")
	flag.StringVar(&f.userUsername, "user-username", envOr("SEED_USER_USERNAME", "user"), "standard user username")
	flag.StringVar(&f.userPassword, "user-password", os.Getenv("SEED_USER_PASSWORD"), "standard user password, skipped when empty")
	flag.StringVar(&f.productTypes, "types", os.Getenv("SEED_PBA_TYPES"), "comma-separated CODE:Description pairs")
	flag.BoolVar(&f.migrate, "migrate", false, "apply migrations first")
	flag.Parse()

	cfg, err := config.Load(f.envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext())

	if f.adminPassword == "" {
		log.Fatal("admin password is required (-admin-password or SEED_ADMIN_PASSWORD)")
	}
	types, err := parseProductTypes(f.productTypes)
	if err != nil {
		log.Fatalw("invalid -types", "error", err)
	}

	dsn := cfg.Database.DSN()
	if f.migrate {
		if err := postgres.MigrateUp(ctx, dsn); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWT.Secret)),
	)
	pbaService := pba.NewService(pba_repo.NewProductTypeRepo(txManager))

	err = txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := seedUser(ctx, authService, f.adminUsername, f.adminPassword, appctx.RoleAdmin); err != nil {
			return err
		}
		if f.userPassword != "" {
			if err := seedUser(ctx, authService, f.userUsername, f.userPassword, appctx.RoleUser); err != nil {
				return err
			}
		}
		for _, t := range types {
			p, created, err := pbaService.Register(ctx, t.Code, t.Description)
			if err != nil {
				return fmt.Errorf("register pba type %s: %w", t.Code, err)
			}
			logger.Info(ctx, "pba type seeded", "code", p.Code, "created", created)
		}
		return nil
	})
	if err != nil {
		log.Fatalw("seeding failed", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedUser(ctx context.Context, svc *auth.Service, username, password, role string) error {
	user, created, err := svc.EnsureUser(ctx, username, password, role)
	if err != nil {
		return fmt.Errorf("seed user %s: %w", username, err)
	}
	logger.Info(ctx, "user seeded", "username", user.Username, "role", user.Role, "created", created)
	return nil
}

// parseProductTypes reads "CODE:Description" pairs separated by commas.
func parseProductTypes(raw string) ([]pba.ProductType, error) {
	var out []pba.ProductType
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, desc, _ := strings.Cut(pair, ":")
		p := pba.NewProductType(code, desc)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%q: %w", pair, err)
		}
		out = append(out, *p)
	}
	return out, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
