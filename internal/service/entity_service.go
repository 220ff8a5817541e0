package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
	"github.com/jrconcha-strat/taskboard/internal/validation"
)

// positionedOps - операции, которые для упорядоченных сущностей выполняет PositionManager.
type positionedOps[T any] interface {
	Append(ctx context.Context, entity *T) domain.Result[*T]
	Delete(ctx context.Context, id int64) domain.Result[*T]
}

// EntityService - общий CRUD поверх репозитория одного вида сущностей.
type EntityService[T any, P domain.Patch[T]] struct {
	operations
	kind domain.Kind
	repo func(repos *repository.Repositories) repository.EntityRepository[T, P]

	// beforeCreate проверяет ссылки новой сущности внутри транзакции создания.
	beforeCreate func(ctx context.Context, repos *repository.Repositories, entity *T) error
	positions    positionedOps[T]
}

func newEntityService[T any, P domain.Patch[T]](
	ops operations,
	kind domain.Kind,
	repo func(repos *repository.Repositories) repository.EntityRepository[T, P],
) *EntityService[T, P] {
	return &EntityService[T, P]{
		operations: ops,
		kind:       kind,
		repo:       repo,
	}
}

func (s *EntityService[T, P]) Kind() domain.Kind {
	return s.kind
}

func (s *EntityService[T, P]) GetAll(ctx context.Context) domain.Result[[]*T] {
	op := "get all " + s.kind.Table()

	items, err := s.repo(s.tx.Repos()).GetAll(ctx)
	if err != nil {
		return fail[[]*T](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("found %d %s", len(items), s.kind.Table()), items)
}

func (s *EntityService[T, P]) GetByID(ctx context.Context, id int64) domain.Result[*T] {
	op := "get " + s.kind.String()

	entity, err := s.repo(s.tx.Repos()).GetByID(ctx, id)
	if err != nil {
		return fail[*T](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("%s %d found", s.kind, id), entity)
}

// GetByParent возвращает сущности внутри родителя: списки проекта, задачи списка и т.д.
func (s *EntityService[T, P]) GetByParent(ctx context.Context, parentID int64) domain.Result[[]*T] {
	op := "get " + s.kind.Table() + " by parent"

	items, err := s.repo(s.tx.Repos()).GetByParent(ctx, parentID)
	if err != nil {
		return fail[[]*T](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("found %d %s", len(items), s.kind.Table()), items)
}

func (s *EntityService[T, P]) Create(ctx context.Context, entity *T) domain.Result[*T] {
	if s.positions != nil {
		return s.positions.Append(ctx, entity)
	}

	op := "create " + s.kind.String()
	if err := validation.Struct(entity); err != nil {
		return fail[*T](s.operations, op, err)
	}

	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if s.beforeCreate != nil {
			if err := s.beforeCreate(ctx, repos, entity); err != nil {
				return err
			}
		}
		return s.repo(repos).Create(ctx, entity)
	})
	if err != nil {
		return fail[*T](s.operations, op, err)
	}

	return domain.OK(s.kind.String()+" created", entity)
}

// Update применяет только реально изменившиеся поля. Пустой diff - успех без записи.
func (s *EntityService[T, P]) Update(ctx context.Context, id int64, patch P) domain.Result[*T] {
	op := "update " + s.kind.String()
	if err := validation.Struct(patch); err != nil {
		return fail[*T](s.operations, op, err)
	}

	var (
		updated *T
		changed bool
	)
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		var err error
		updated, changed, err = s.repo(repos).Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return fail[*T](s.operations, op, err)
	}

	if !changed {
		s.log.WithFields(logrus.Fields{"op": op, "id": id}).Debug("no changes detected")
		return domain.OK(fmt.Sprintf("no changes detected for %s %d", s.kind, id), updated)
	}
	return domain.OK(s.kind.String()+" updated", updated)
}

// Delete удаляет сущность. Пользователи и команды только архивируются,
// удаление списков и задач уплотняет позиции соседей.
func (s *EntityService[T, P]) Delete(ctx context.Context, id int64) domain.Result[*T] {
	op := "delete " + s.kind.String()

	if s.kind.Archivable() {
		return fail[*T](s.operations, op,
			domain.NewValidationError("%s cannot be deleted, archive it instead", s.kind.Table()))
	}
	if s.positions != nil {
		return s.positions.Delete(ctx, id)
	}

	var deleted *T
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		var err error
		deleted, err = s.repo(repos).Delete(ctx, id)
		return err
	})
	if err != nil {
		return fail[*T](s.operations, op, err)
	}

	return domain.OK(s.kind.String()+" deleted", deleted)
}
