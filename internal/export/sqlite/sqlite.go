package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vouchtally/vouchtally/internal/database/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Exporter writes a standalone SQLite snapshot of one community ledger.
// Snapshots are for operator backup and inspection; the live ledger is
// never the file being written.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes member aggregates and the full vouch log to a snapshot
// database named after the community. An existing snapshot with the same
// name is replaced.
func (e *Exporter) Export(communityID uint64, members []*types.Member, vouches []*types.Vouch) (string, error) {
	filename := fmt.Sprintf("guild_%d_snapshot.db", communityID)
	path := filepath.Join(e.outDir, filename)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to remove existing snapshot %s: %w", filename, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return "", fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer conn.Close()

	if err := e.writeMembers(conn, members); err != nil {
		return "", fmt.Errorf("failed to export members: %w", err)
	}

	if err := e.writeVouches(conn, vouches); err != nil {
		return "", fmt.Errorf("failed to export vouches: %w", err)
	}

	return path, nil
}

// writeMembers creates the members table and inserts all aggregate rows.
func (e *Exporter) writeMembers(conn *sqlite.Conn, members []*types.Member) error {
	err := sqlitex.Execute(conn, `
		CREATE TABLE members (
			user_id TEXT PRIMARY KEY,
			vouch_count INTEGER NOT NULL,
			referral_count INTEGER NOT NULL
		)
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create members table: %w", err)
	}

	err = sqlitex.Execute(conn, "BEGIN TRANSACTION", nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, member := range members {
		err = sqlitex.Execute(conn,
			"INSERT INTO members (user_id, vouch_count, referral_count) VALUES (?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []any{
					fmt.Sprintf("%d", member.UserID),
					member.VouchCount,
					member.ReferralCount,
				},
			})
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	err = sqlitex.Execute(conn, "COMMIT", nil)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// writeVouches creates the vouches table and inserts the full event log.
func (e *Exporter) writeVouches(conn *sqlite.Conn, vouches []*types.Vouch) error {
	err := sqlitex.Execute(conn, `
		CREATE TABLE vouches (
			id INTEGER PRIMARY KEY,
			vouched_for TEXT NOT NULL,
			vouched_by TEXT NOT NULL,
			referral TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create vouches table: %w", err)
	}

	err = sqlitex.Execute(conn, "BEGIN TRANSACTION", nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, vouch := range vouches {
		err = sqlitex.Execute(conn,
			"INSERT INTO vouches (id, vouched_for, vouched_by, referral, timestamp) VALUES (?, ?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []any{
					vouch.ID,
					fmt.Sprintf("%d", vouch.VouchedFor),
					fmt.Sprintf("%d", vouch.VouchedBy),
					fmt.Sprintf("%d", vouch.Referral),
					vouch.Timestamp.UTC().Format(time.RFC3339),
				},
			})
		if err != nil {
			return fmt.Errorf("failed to insert vouch: %w", err)
		}
	}

	err = sqlitex.Execute(conn, "COMMIT", nil)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
