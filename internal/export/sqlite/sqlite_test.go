package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vouchtally/vouchtally/internal/database/types"
	"github.com/vouchtally/vouchtally/internal/export/sqlite"
	zsqlite "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func TestExport(t *testing.T) {
	outDir := t.TempDir()

	members := []*types.Member{
		{UserID: 100, VouchCount: 2, ReferralCount: 2},
		{UserID: 101, VouchCount: 1, ReferralCount: 1},
	}

	ts := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	vouches := []*types.Vouch{
		{ID: 1, VouchedFor: 100, VouchedBy: 200, Referral: 300, Timestamp: ts},
		{ID: 2, VouchedFor: 100, VouchedBy: 201, Referral: 300, Timestamp: ts.Add(time.Minute)},
		{ID: 3, VouchedFor: 101, VouchedBy: 200, Referral: 300, Timestamp: ts.Add(2 * time.Minute)},
	}

	path, err := sqlite.New(outDir).Export(1234, members, vouches)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "guild_1234_snapshot.db"), path)

	conn, err := zsqlite.OpenConn(path, zsqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	type memberRow struct {
		userID        string
		vouchCount    int64
		referralCount int64
	}

	var memberRows []memberRow

	err = sqlitex.Execute(conn,
		"SELECT user_id, vouch_count, referral_count FROM members ORDER BY user_id",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *zsqlite.Stmt) error {
				memberRows = append(memberRows, memberRow{
					userID:        stmt.ColumnText(0),
					vouchCount:    stmt.ColumnInt64(1),
					referralCount: stmt.ColumnInt64(2),
				})
				return nil
			},
		})
	require.NoError(t, err)

	require.Len(t, memberRows, 2)
	assert.Equal(t, memberRow{userID: "100", vouchCount: 2, referralCount: 2}, memberRows[0])
	assert.Equal(t, memberRow{userID: "101", vouchCount: 1, referralCount: 1}, memberRows[1])

	var vouchCount int64

	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM vouches", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *zsqlite.Stmt) error {
			vouchCount = stmt.ColumnInt64(0)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), vouchCount)

	var firstTimestamp string

	err = sqlitex.Execute(conn,
		"SELECT timestamp FROM vouches WHERE id = 1",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *zsqlite.Stmt) error {
				firstTimestamp = stmt.ColumnText(0)
				return nil
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-14T12:00:00Z", firstTimestamp)
}

func TestExport_ReplacesExistingSnapshot(t *testing.T) {
	outDir := t.TempDir()
	exporter := sqlite.New(outDir)

	members := []*types.Member{{UserID: 100, VouchCount: 1, ReferralCount: 1}}

	_, err := exporter.Export(1234, members, nil)
	require.NoError(t, err)

	// Second export of the same community replaces the snapshot rather
	// than failing on the existing table.
	path, err := exporter.Export(1234, nil, nil)
	require.NoError(t, err)

	conn, err := zsqlite.OpenConn(path, zsqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	var count int64

	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM members", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *zsqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestExport_EmptyLedger(t *testing.T) {
	path, err := sqlite.New(t.TempDir()).Export(1, nil, nil)
	require.NoError(t, err)

	conn, err := zsqlite.OpenConn(path, zsqlite.OpenReadOnly)
	require.NoError(t, err)
	defer conn.Close()

	// Both tables exist even with nothing to export
	for _, table := range []string{"members", "vouches"} {
		err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM "+table, &sqlitex.ExecOptions{
			ResultFunc: func(*zsqlite.Stmt) error { return nil },
		})
		require.NoError(t, err)
	}
}
