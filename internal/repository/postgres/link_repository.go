package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

type teamProjectRepository struct {
	executor DBExecutor
}

func newTeamProjectRepository(executor DBExecutor) *teamProjectRepository {
	return &teamProjectRepository{executor: executor}
}

func (r *teamProjectRepository) Link(ctx context.Context, link *domain.TeamProject) error {
	err := r.executor.QueryRowContext(
		ctx,
		"INSERT INTO team_projects (team_id, project_id, created_at) VALUES ($1, $2, $3) RETURNING created_at",
		link.TeamID,
		link.ProjectID,
		dbNow(),
	).Scan(&link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewWriteVerificationError("insert into team_projects", 0)
		}
		return classify(err, fmt.Sprintf("link of project %d to team %d", link.ProjectID, link.TeamID))
	}
	return nil
}

func (r *teamProjectRepository) Unlink(ctx context.Context, teamID, projectID int64) error {
	result, err := r.executor.ExecContext(
		ctx,
		"DELETE FROM team_projects WHERE team_id = $1 AND project_id = $2",
		teamID,
		projectID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("link of project %d to team %d", projectID, teamID))
	}
	if rowsAffected > 1 {
		return domain.NewWriteVerificationError("delete from team_projects", rowsAffected)
	}
	return nil
}

func (r *teamProjectRepository) GetByTeamID(ctx context.Context, teamID int64) ([]*domain.TeamProject, error) {
	rows, err := r.executor.QueryContext(
		ctx,
		"SELECT team_id, project_id, created_at FROM team_projects WHERE team_id = $1 ORDER BY created_at, project_id",
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*domain.TeamProject, 0)
	for rows.Next() {
		link := &domain.TeamProject{}
		if err := rows.Scan(&link.TeamID, &link.ProjectID, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

type taskAssignmentRepository struct {
	executor DBExecutor
}

func newTaskAssignmentRepository(executor DBExecutor) *taskAssignmentRepository {
	return &taskAssignmentRepository{executor: executor}
}

func (r *taskAssignmentRepository) Assign(ctx context.Context, a *domain.TaskAssignment) error {
	err := r.executor.QueryRowContext(
		ctx,
		"INSERT INTO task_assignments (task_id, user_id, created_at) VALUES ($1, $2, $3) RETURNING created_at",
		a.TaskID,
		a.UserID,
		dbNow(),
	).Scan(&a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewWriteVerificationError("insert into task_assignments", 0)
		}
		return classify(err, fmt.Sprintf("assignment of user %d to task %d", a.UserID, a.TaskID))
	}
	return nil
}

func (r *taskAssignmentRepository) Unassign(ctx context.Context, taskID, userID int64) error {
	result, err := r.executor.ExecContext(
		ctx,
		"DELETE FROM task_assignments WHERE task_id = $1 AND user_id = $2",
		taskID,
		userID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("assignment of user %d to task %d", userID, taskID))
	}
	if rowsAffected > 1 {
		return domain.NewWriteVerificationError("delete from task_assignments", rowsAffected)
	}
	return nil
}

func (r *taskAssignmentRepository) GetByTaskID(ctx context.Context, taskID int64) ([]*domain.TaskAssignment, error) {
	rows, err := r.executor.QueryContext(
		ctx,
		"SELECT task_id, user_id, created_at FROM task_assignments WHERE task_id = $1 ORDER BY created_at, user_id",
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.TaskAssignment, 0)
	for rows.Next() {
		a := &domain.TaskAssignment{}
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
