package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// Store раздает репозитории поверх пула соединений и выполняет транзакции.
type Store struct {
	db    *sql.DB
	repos *repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: newRepositories(db),
	}
}

func newRepositories(executor DBExecutor) *repository.Repositories {
	return &repository.Repositories{
		Users:        newUserRepository(executor),
		Teams:        newTeamRepository(executor),
		Memberships:  newMembershipRepository(executor),
		Projects:     newProjectRepository(executor),
		Lists:        newListRepository(executor),
		Tasks:        newTaskRepository(executor),
		Comments:     newCommentRepository(executor),
		TeamProjects: newTeamProjectRepository(executor),
		Assignments:  newTaskAssignmentRepository(executor),
	}
}

func (s *Store) Repos() *repository.Repositories {
	return s.repos
}

// WithinTx выполняет fn в одной транзакции. Любая ошибка fn откатывает все изменения;
// ошибка коммита возвращается как TRANSACTION_ABORTED (или нарушение уникальности
// для отложенных ограничений позиций).
func (s *Store) WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(repos *repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return domain.NewTransactionAbortedError(fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		classified := classify(err, "transaction")
		var domainErr *domain.DomainError
		if errors.As(classified, &domainErr) {
			return classified
		}
		return domain.NewTransactionAbortedError(fmt.Errorf("commit: %w", err))
	}

	return nil
}
