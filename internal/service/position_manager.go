package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
	"github.com/jrconcha-strat/taskboard/internal/validation"
)

// PositionManager поддерживает позиции 0..n-1 без пропусков внутри одного родителя.
// Обе операции сначала блокируют строку родителя, поэтому конкурентные
// создания и удаления в одном родителе выполняются по очереди.
type PositionManager[T any, P domain.Patch[T], PT domain.Positioned[T]] struct {
	operations
	kind     domain.Kind
	siblings func(repos *repository.Repositories) repository.PositionedRepository[T, P]
	parents  func(repos *repository.Repositories) repository.Locker
}

func NewListPositions(tx repository.TxManager, log logrus.FieldLogger) *PositionManager[domain.List, domain.ListPatch, *domain.List] {
	return &PositionManager[domain.List, domain.ListPatch, *domain.List]{
		operations: operations{tx: tx, log: log},
		kind:       domain.KindList,
		siblings: func(repos *repository.Repositories) repository.PositionedRepository[domain.List, domain.ListPatch] {
			return repos.Lists
		},
		parents: func(repos *repository.Repositories) repository.Locker {
			return repos.Projects
		},
	}
}

func NewTaskPositions(tx repository.TxManager, log logrus.FieldLogger) *PositionManager[domain.Task, domain.TaskPatch, *domain.Task] {
	return &PositionManager[domain.Task, domain.TaskPatch, *domain.Task]{
		operations: operations{tx: tx, log: log},
		kind:       domain.KindTask,
		siblings: func(repos *repository.Repositories) repository.PositionedRepository[domain.Task, domain.TaskPatch] {
			return repos.Tasks
		},
		parents: func(repos *repository.Repositories) repository.Locker {
			return repos.Lists
		},
	}
}

// Create добавляет сущность в конец родителя: position = текущее число соседей.
func (m *PositionManager[T, P, PT]) Create(ctx context.Context, parentID int64, entity *T) domain.Result[*T] {
	op := "create " + m.kind.String()

	PT(entity).SetParentID(parentID)
	if err := validation.Struct(entity); err != nil {
		return fail[*T](m.operations, op, err)
	}

	err := m.inTx(ctx, op, func(repos *repository.Repositories) error {
		if err := m.parents(repos).LockByID(ctx, parentID); err != nil {
			return err
		}

		count, err := m.siblings(repos).CountByParent(ctx, parentID)
		if err != nil {
			return err
		}

		PT(entity).SetPosition(count)
		return m.siblings(repos).Create(ctx, entity)
	})
	if err != nil {
		return fail[*T](m.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("%s created at position %d", m.kind, PT(entity).GetPosition()), entity)
}

// Append - Create с родителем, уже записанным в сущности.
func (m *PositionManager[T, P, PT]) Append(ctx context.Context, entity *T) domain.Result[*T] {
	return m.Create(ctx, PT(entity).ParentID(), entity)
}

// Delete удаляет сущность и сдвигает на одну позицию вниз всех соседей после нее.
// Возвращает строку в том виде, в каком она была до удаления.
func (m *PositionManager[T, P, PT]) Delete(ctx context.Context, id int64) domain.Result[*T] {
	op := "delete " + m.kind.String()

	var (
		deleted *T
		shifted int64
	)
	err := m.inTx(ctx, op, func(repos *repository.Repositories) error {
		siblings := m.siblings(repos)

		target, err := siblings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		parentID := PT(target).ParentID()

		if err := m.parents(repos).LockByID(ctx, parentID); err != nil {
			return err
		}

		// Delete перечитывает строку: пока мы ждали блокировку, позиция могла сдвинуться.
		deleted, err = siblings.Delete(ctx, id)
		if err != nil {
			return err
		}

		shifted, err = siblings.ShiftDownAfter(ctx, parentID, PT(deleted).GetPosition())
		return err
	})
	if err != nil {
		return fail[*T](m.operations, op, err)
	}

	m.log.WithFields(logrus.Fields{
		"op":      op,
		"id":      id,
		"shifted": shifted,
	}).Debug("positions compacted")

	return domain.OK(m.kind.String()+" deleted", deleted)
}
