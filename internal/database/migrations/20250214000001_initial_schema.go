package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/vouchtally/vouchtally/internal/database/types"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Tables are created lazily on first access to a community store,
		// so creation must be idempotent and never destructive.
		tables := []struct {
			model any
			name  string
		}{
			{(*types.Member)(nil), "members"},
			{(*types.Vouch)(nil), "vouches"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		// Ranked listings filter and sort on vouch_count.
		_, err := db.NewRaw(
			"CREATE INDEX IF NOT EXISTS idx_members_vouch_count ON members (vouch_count DESC)").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create vouch count index: %w", err)
		}

		// Resets delete the subset of vouches for one member.
		_, err = db.NewRaw(
			"CREATE INDEX IF NOT EXISTS idx_vouches_vouched_for ON vouches (vouched_for)").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create vouched for index: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{"vouches", "members"}
		for _, table := range tables {
			_, err := db.NewDropTable().
				TableExpr(table).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
