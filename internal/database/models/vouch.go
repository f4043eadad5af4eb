package models

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/vouchtally/vouchtally/internal/database/types"
	"go.uber.org/zap"
)

// VouchModel handles database operations for the append-only vouch log.
type VouchModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVouch creates a new vouch model instance.
func NewVouch(db *bun.DB, logger *zap.Logger) *VouchModel {
	return &VouchModel{
		db:     db,
		logger: logger.Named("db_vouch"),
	}
}

// Insert appends one vouch event to the log and returns its assigned ID.
func (m *VouchModel) Insert(ctx context.Context, vouchedFor, vouchedBy, referral uint64) (int64, error) {
	vouch := &types.Vouch{
		VouchedFor: vouchedFor,
		VouchedBy:  vouchedBy,
		Referral:   referral,
		Timestamp:  time.Now().UTC(),
	}

	_, err := m.db.NewInsert().
		Model(vouch).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert vouch: %w", err)
	}

	m.logger.Debug("Inserted vouch",
		zap.Int64("id", vouch.ID),
		zap.Uint64("vouched_for", vouchedFor),
		zap.Uint64("vouched_by", vouchedBy),
		zap.Uint64("referral", referral))

	return vouch.ID, nil
}

// ListFor returns all vouch events where the given member is the target,
// oldest first.
func (m *VouchModel) ListFor(ctx context.Context, userID uint64) ([]*types.Vouch, error) {
	var vouches []*types.Vouch

	err := m.db.NewSelect().
		Model(&vouches).
		Where("vouched_for = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouches: %w", err)
	}

	return vouches, nil
}

// All returns the complete vouch log in insertion order. Used by
// snapshot exports.
func (m *VouchModel) All(ctx context.Context) ([]*types.Vouch, error) {
	var vouches []*types.Vouch

	err := m.db.NewSelect().
		Model(&vouches).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all vouches: %w", err)
	}

	return vouches, nil
}

// CountFor returns the number of stored vouch events targeting a member.
func (m *VouchModel) CountFor(ctx context.Context, userID uint64) (int, error) {
	count, err := m.db.NewSelect().
		Model((*types.Vouch)(nil)).
		Where("vouched_for = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count vouches: %w", err)
	}

	return count, nil
}

// DeleteFor removes all vouch events targeting a member. Events where the
// member appears only as the voucher or the referral are untouched.
// Missing rows are a silent no-op.
func (m *VouchModel) DeleteFor(ctx context.Context, userID uint64) error {
	_, err := m.db.NewDelete().
		Model((*types.Vouch)(nil)).
		Where("vouched_for = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vouches: %w", err)
	}

	m.logger.Debug("Deleted vouches for member", zap.Uint64("userID", userID))

	return nil
}
