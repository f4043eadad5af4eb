package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vouchtally/vouchtally/internal/database/models"
	"go.uber.org/zap"
)

// ErrPartialWrite indicates a vouch event was persisted but the counter
// update failed. The event log is the source of truth, so the counters
// can be reconciled later by replaying events; callers must still treat
// the operation as failed.
var ErrPartialWrite = errors.New("vouch recorded but counters not updated")

// VouchService composes ledger primitives into the vouch domain
// operations. Each operation is one logical unit of work.
type VouchService struct {
	member *models.MemberModel
	vouch  *models.VouchModel
	logger *zap.Logger
}

// NewVouch creates a new vouch service.
func NewVouch(member *models.MemberModel, vouch *models.VouchModel, logger *zap.Logger) *VouchService {
	return &VouchService{
		member: member,
		vouch:  vouch,
		logger: logger.Named("vouch_service"),
	}
}

// Record appends one vouch event and increments the target's vouch and
// referral counters by one each. If the event insert fails nothing is
// persisted. If the counter update fails after the event was persisted,
// the orphan event is tolerated and ErrPartialWrite is returned.
func (s *VouchService) Record(ctx context.Context, target, referral, issuer uint64) error {
	eventID, err := s.vouch.Insert(ctx, target, issuer, referral)
	if err != nil {
		return fmt.Errorf("failed to record vouch: %w", err)
	}

	if err := s.member.UpsertIncrement(ctx, target, 1, 1); err != nil {
		s.logger.Error("Vouch event persisted but counter update failed",
			zap.Int64("event_id", eventID),
			zap.Uint64("target", target),
			zap.Error(err))

		return fmt.Errorf("%w: %w", ErrPartialWrite, err)
	}

	s.logger.Debug("Recorded vouch",
		zap.Int64("event_id", eventID),
		zap.Uint64("target", target),
		zap.Uint64("issuer", issuer),
		zap.Uint64("referral", referral))

	return nil
}

// Reset deletes all vouch events targeting a member and zeroes both of
// their counters. Events are deleted first: a crash mid-operation leaves
// counters temporarily stale-high instead of losing event history.
func (s *VouchService) Reset(ctx context.Context, target uint64) error {
	if err := s.vouch.DeleteFor(ctx, target); err != nil {
		return fmt.Errorf("failed to reset vouches: %w", err)
	}

	if err := s.member.Zero(ctx, target); err != nil {
		return fmt.Errorf("failed to reset member counters: %w", err)
	}

	s.logger.Debug("Reset member vouches", zap.Uint64("target", target))

	return nil
}

// Decrement subtracts one vouch from a member if their count is positive.
// It returns false when the count was already zero, which is a successful
// no-op rather than an error. The event log is deliberately untouched:
// decrements adjust the counter only.
func (s *VouchService) Decrement(ctx context.Context, target uint64) (bool, error) {
	changed, err := s.member.DecrementIfPositive(ctx, target)
	if err != nil {
		return false, fmt.Errorf("failed to decrement vouches: %w", err)
	}

	return changed, nil
}
