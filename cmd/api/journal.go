package main

import (
	"context"
	"fmt"

	"github.com/fastprodman/slotledger/internal/config"
	"github.com/fastprodman/slotledger/internal/infra/pgutils"
	"github.com/fastprodman/slotledger/internal/repos/journal"
	pgjournal "github.com/fastprodman/slotledger/internal/repos/journal/postgres"
	sqlitejournal "github.com/fastprodman/slotledger/internal/repos/journal/sqlite"
)

func openJournal(ctx context.Context, cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Driver {
	case config.JournalNone, "":
		return journal.Nop{}, nil
	case config.JournalPostgres:
		db, err := pgutils.OpenDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		return pgjournal.New(db), nil
	case config.JournalSQLite:
		j, err := sqlitejournal.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %q: %w", cfg.SQLitePath, err)
		}

		return j, nil
	default:
		return nil, fmt.Errorf("unknown journal driver %q", cfg.Driver)
	}
}
