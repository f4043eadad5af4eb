package service

import (
	"context"
	"fmt"

	"github.com/vouchtally/vouchtally/internal/database/models"
	"github.com/vouchtally/vouchtally/internal/database/types"
	"go.uber.org/zap"
)

// LeaderboardService answers ranked listing queries over the member
// aggregates.
type LeaderboardService struct {
	member *models.MemberModel
	logger *zap.Logger
}

// NewLeaderboard creates a new leaderboard service.
func NewLeaderboard(member *models.MemberModel, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		member: member,
		logger: logger.Named("leaderboard_service"),
	}
}

// Ranked returns members with a positive vouch count in descending order,
// each annotated with their 1-based position. An empty slice means no
// member has received a vouch; that is a valid result, not an error.
func (s *LeaderboardService) Ranked(ctx context.Context) ([]*types.RankedMember, error) {
	members, err := s.member.ListByVouches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	ranked := make([]*types.RankedMember, len(members))
	for i, member := range members {
		ranked[i] = &types.RankedMember{
			Rank:       i + 1,
			UserID:     member.UserID,
			VouchCount: member.VouchCount,
		}
	}

	return ranked, nil
}
