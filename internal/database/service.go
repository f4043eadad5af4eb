package database

import (
	"github.com/vouchtally/vouchtally/internal/database/service"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	vouch       *service.VouchService
	leaderboard *service.LeaderboardService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, logger *zap.Logger) *Service {
	memberModel := repository.Member()
	vouchModel := repository.Vouch()

	return &Service{
		vouch:       service.NewVouch(memberModel, vouchModel, logger),
		leaderboard: service.NewLeaderboard(memberModel, logger),
	}
}

// Vouch returns the vouch service.
func (s *Service) Vouch() *service.VouchService {
	return s.vouch
}

// Leaderboard returns the leaderboard service.
func (s *Service) Leaderboard() *service.LeaderboardService {
	return s.leaderboard
}
