package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/vouchtally/vouchtally/internal/database/types"
	"go.uber.org/zap"
)

// MemberModel handles database operations for member vouch aggregates.
type MemberModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMember creates a new member model instance.
func NewMember(db *bun.DB, logger *zap.Logger) *MemberModel {
	return &MemberModel{
		db:     db,
		logger: logger.Named("db_member"),
	}
}

// UpsertIncrement adds the given deltas to a member's counters, creating
// the row with the deltas as initial values if the member is new. The
// whole operation is a single round trip so concurrent upserts for the
// same member cannot lose updates.
func (m *MemberModel) UpsertIncrement(ctx context.Context, userID uint64, vouchDelta, referralDelta int64) error {
	member := &types.Member{
		UserID:        userID,
		VouchCount:    vouchDelta,
		ReferralCount: referralDelta,
	}

	_, err := m.db.NewInsert().
		Model(member).
		On("CONFLICT (user_id) DO UPDATE").
		Set("vouch_count = vouch_count + EXCLUDED.vouch_count").
		Set("referral_count = referral_count + EXCLUDED.referral_count").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert member counters: %w", err)
	}

	m.logger.Debug("Upserted member counters",
		zap.Uint64("userID", userID),
		zap.Int64("vouch_delta", vouchDelta),
		zap.Int64("referral_delta", referralDelta))

	return nil
}

// ListByVouches returns members with a positive vouch count ordered by
// vouch count descending. Ties break on user ID ascending so the order
// is stable within a single query.
func (m *MemberModel) ListByVouches(ctx context.Context) ([]*types.Member, error) {
	var members []*types.Member

	err := m.db.NewSelect().
		Model(&members).
		Where("vouch_count > 0").
		Order("vouch_count DESC", "user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members by vouches: %w", err)
	}

	return members, nil
}

// All returns every member aggregate row, including zeroed ones, ordered
// by user ID. Used by snapshot exports.
func (m *MemberModel) All(ctx context.Context) ([]*types.Member, error) {
	var members []*types.Member

	err := m.db.NewSelect().
		Model(&members).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all members: %w", err)
	}

	return members, nil
}

// Get retrieves a member's aggregate row, or nil if the member has never
// received a vouch.
func (m *MemberModel) Get(ctx context.Context, userID uint64) (*types.Member, error) {
	member := new(types.Member)

	err := m.db.NewSelect().
		Model(member).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// Zero resets both counters for a member to zero. Missing members are a
// silent no-op.
func (m *MemberModel) Zero(ctx context.Context, userID uint64) error {
	_, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("vouch_count = 0").
		Set("referral_count = 0").
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to zero member counters: %w", err)
	}

	m.logger.Debug("Zeroed member counters", zap.Uint64("userID", userID))

	return nil
}

// DecrementIfPositive subtracts one vouch from a member only when their
// count is positive. The conditional update is a single round trip; the
// returned flag reports whether a row actually changed.
func (m *MemberModel) DecrementIfPositive(ctx context.Context, userID uint64) (bool, error) {
	res, err := m.db.NewUpdate().
		Model((*types.Member)(nil)).
		Set("vouch_count = vouch_count - 1").
		Where("user_id = ?", userID).
		Where("vouch_count > 0").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to decrement member vouch count: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	changed := affected > 0
	m.logger.Debug("Decremented member vouch count",
		zap.Uint64("userID", userID),
		zap.Bool("changed", changed))

	return changed, nil
}
