package repository

import (
	"context"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

// EntityRepository - базовые CRUD-операции над сущностью T с патчем P.
type EntityRepository[T any, P domain.Patch[T]] interface {
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	GetByParent(ctx context.Context, parentID int64) ([]*T, error)
	Create(ctx context.Context, entity *T) error
	// Update возвращает строку после обновления и признак того, что что-то изменилось.
	Update(ctx context.Context, id int64, patch P) (*T, bool, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// Locker блокирует строку до конца транзакции (SELECT ... FOR UPDATE).
type Locker interface {
	LockByID(ctx context.Context, id int64) error
}

// PositionedRepository - сущности, упорядоченные внутри родителя.
type PositionedRepository[T any, P domain.Patch[T]] interface {
	EntityRepository[T, P]
	CountByParent(ctx context.Context, parentID int64) (int, error)
	// ShiftDownAfter уменьшает на единицу позиции всех соседей после position.
	ShiftDownAfter(ctx context.Context, parentID int64, position int) (int64, error)
}
