package main

import (
	"context"
	"fmt"

	memsheets "github.com/SscSPs/farm_ledger_app/internal/adapters/sheets/memory"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/farm_ledger_app/pkg/database"
	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&balancesCmd{},
	&summaryCmd{},
	&auditCmd{},
	&auditTailCmd{},
}

// env is what a data command needs: the service container and the session
// of the owner it reports on.
type env struct {
	services *portssvc.ServiceContainer
	session  domain.Session
	close    func()
}

func openEnv(ctx context.Context, ownerID string) (*env, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("-owner is required")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), nil, memsheets.New())
	session, err := container.User.ResolveSession(ctx, ownerID)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("resolve owner %s: %w", ownerID, err)
	}
	return &env{services: container, session: session, close: pool.Close}, nil
}
