package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/vouchtally/vouchtally/internal/export/sqlite"
	"github.com/vouchtally/vouchtally/internal/setup"
	"github.com/vouchtally/vouchtally/internal/setup/telemetry"
)

const (
	// ExportLogDir specifies where export log files are stored.
	ExportLogDir = "logs/export_logs"
)

var ErrMissingGuild = errors.New("missing required guild ID")

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export one community's vouch ledger to a snapshot database",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "guild",
				Aliases: []string{"g"},
				Usage:   "Community (guild) ID to snapshot",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Directory to write the snapshot into",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			communityID := c.Uint("guild")
			if communityID == 0 {
				return ErrMissingGuild
			}

			// Initialize application with required dependencies
			app, err := setup.InitializeApp(telemetry.ServiceExport, ExportLogDir)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup()

			app.Logger.Info("Opening community ledger",
				zap.Uint64("guildID", communityID),
				zap.String("path", app.Stores.Path(communityID)))

			// Open the community ledger
			client, err := app.Stores.Get(ctx, communityID)
			if err != nil {
				return fmt.Errorf("failed to open community ledger: %w", err)
			}

			// Read the full aggregate table and event log
			members, err := client.Model().Member().All(ctx)
			if err != nil {
				return fmt.Errorf("failed to read members: %w", err)
			}

			vouches, err := client.Model().Vouch().All(ctx)
			if err != nil {
				return fmt.Errorf("failed to read vouch log: %w", err)
			}

			// Write the snapshot
			path, err := sqlite.New(c.String("out")).Export(communityID, members, vouches)
			if err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			app.Logger.Info("Snapshot written",
				zap.Uint64("guildID", communityID),
				zap.String("path", path),
				zap.Int("members", len(members)),
				zap.Int("vouches", len(vouches)))

			log.Printf("Snapshot written to %s (%d members, %d vouches)", path, len(members), len(vouches))

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}
