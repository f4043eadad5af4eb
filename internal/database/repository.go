package database

import (
	"github.com/uptrace/bun"
	"github.com/vouchtally/vouchtally/internal/database/models"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	member *models.MemberModel
	vouch  *models.VouchModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		member: models.NewMember(db, logger),
		vouch:  models.NewVouch(db, logger),
	}
}

// Member returns the member model repository.
func (r *Repository) Member() *models.MemberModel {
	return r.member
}

// Vouch returns the vouch model repository.
func (r *Repository) Vouch() *models.VouchModel {
	return r.vouch
}
