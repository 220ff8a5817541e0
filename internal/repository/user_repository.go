package repository

import (
	"context"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

type UserRepository interface {
	EntityRepository[domain.User, domain.UserPatch]
	Locker
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkArchived(ctx context.Context, id int64, at time.Time) error
}
