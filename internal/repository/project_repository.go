package repository

import (
	"context"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

type ProjectRepository interface {
	EntityRepository[domain.Project, domain.ProjectPatch]
	Locker
	GetActiveByName(ctx context.Context, name string) (*domain.Project, error)
}

type ListRepository interface {
	PositionedRepository[domain.List, domain.ListPatch]
	Locker
}

type TaskRepository interface {
	PositionedRepository[domain.Task, domain.TaskPatch]
	Locker
}

type CommentRepository interface {
	EntityRepository[domain.Comment, domain.CommentPatch]
	// GetThread возвращает корневой комментарий и все ответы на него одним рекурсивным запросом.
	GetThread(ctx context.Context, rootID int64) ([]*domain.Comment, error)
}

type TeamProjectRepository interface {
	Link(ctx context.Context, link *domain.TeamProject) error
	Unlink(ctx context.Context, teamID, projectID int64) error
	GetByTeamID(ctx context.Context, teamID int64) ([]*domain.TeamProject, error)
}

type TaskAssignmentRepository interface {
	Assign(ctx context.Context, a *domain.TaskAssignment) error
	Unassign(ctx context.Context, taskID, userID int64) error
	GetByTaskID(ctx context.Context, taskID int64) ([]*domain.TaskAssignment, error)
}
