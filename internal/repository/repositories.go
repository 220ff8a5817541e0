package repository

import (
	"context"
	"database/sql"
)

// Repositories - типизированный реестр репозиториев, привязанных к одному исполнителю запросов.
type Repositories struct {
	Users        UserRepository
	Teams        TeamRepository
	Memberships  MembershipRepository
	Projects     ProjectRepository
	Lists        ListRepository
	Tasks        TaskRepository
	Comments     CommentRepository
	TeamProjects TeamProjectRepository
	Assignments  TaskAssignmentRepository
}

// TxManager выполняет fn внутри одной транзакции: коммит при nil, откат при любой ошибке.
type TxManager interface {
	WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(repos *Repositories) error) error
	// Repos возвращает репозитории вне транзакции (для чтения).
	Repos() *Repositories
}
