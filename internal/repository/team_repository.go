package repository

import (
	"context"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

type TeamRepository interface {
	EntityRepository[domain.Team, domain.TeamPatch]
	Locker
	GetActiveByName(ctx context.Context, name string) (*domain.Team, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Team, error)
	MarkArchived(ctx context.Context, id int64, at time.Time) error
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, teamID, userID int64) (*domain.Membership, error)
	GetActiveByTeamID(ctx context.Context, teamID int64) ([]*domain.Membership, error)
	GetLeader(ctx context.Context, teamID int64) (*domain.Membership, error)
	SetLeader(ctx context.Context, teamID, userID int64, isLeader bool) error
	Archive(ctx context.Context, teamID, userID int64, at time.Time) error
	Delete(ctx context.Context, teamID, userID int64) error
}
