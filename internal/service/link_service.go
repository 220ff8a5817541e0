package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// LinkService управляет связями многие-ко-многим: команда-проект и задача-исполнитель.
type LinkService struct {
	operations
}

func NewLinkService(tx repository.TxManager, log logrus.FieldLogger) *LinkService {
	return &LinkService{operations: operations{tx: tx, log: log}}
}

func (s *LinkService) LinkProject(ctx context.Context, teamID, projectID int64) domain.Result[*domain.TeamProject] {
	const op = "link project to team"

	link := &domain.TeamProject{TeamID: teamID, ProjectID: projectID}
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := lockActiveTeam(ctx, repos, teamID); err != nil {
			return err
		}
		if _, err := repos.Projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		return repos.TeamProjects.Link(ctx, link)
	})
	if err != nil {
		return fail[*domain.TeamProject](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("project %d linked to team %d", projectID, teamID), link)
}

func (s *LinkService) UnlinkProject(ctx context.Context, teamID, projectID int64) domain.Result[*domain.TeamProject] {
	const op = "unlink project from team"

	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		return repos.TeamProjects.Unlink(ctx, teamID, projectID)
	})
	if err != nil {
		return fail[*domain.TeamProject](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("project %d unlinked from team %d", projectID, teamID),
		&domain.TeamProject{TeamID: teamID, ProjectID: projectID})
}

func (s *LinkService) ProjectsForTeam(ctx context.Context, teamID int64) domain.Result[[]*domain.TeamProject] {
	const op = "get team projects"

	links, err := s.tx.Repos().TeamProjects.GetByTeamID(ctx, teamID)
	if err != nil {
		return fail[[]*domain.TeamProject](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("team %d has %d projects", teamID, len(links)), links)
}

// AssignTask назначает задачу пользователю. Архивированному пользователю назначить нельзя.
func (s *LinkService) AssignTask(ctx context.Context, taskID, userID int64) domain.Result[*domain.TaskAssignment] {
	const op = "assign task"

	assignment := &domain.TaskAssignment{TaskID: taskID, UserID: userID}
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := repos.Tasks.GetByID(ctx, taskID); err != nil {
			return err
		}
		if _, err := activeUser(ctx, repos, userID); err != nil {
			return err
		}
		return repos.Assignments.Assign(ctx, assignment)
	})
	if err != nil {
		return fail[*domain.TaskAssignment](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("task %d assigned to user %d", taskID, userID), assignment)
}

func (s *LinkService) UnassignTask(ctx context.Context, taskID, userID int64) domain.Result[*domain.TaskAssignment] {
	const op = "unassign task"

	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		return repos.Assignments.Unassign(ctx, taskID, userID)
	})
	if err != nil {
		return fail[*domain.TaskAssignment](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("task %d unassigned from user %d", taskID, userID),
		&domain.TaskAssignment{TaskID: taskID, UserID: userID})
}

func (s *LinkService) AssigneesForTask(ctx context.Context, taskID int64) domain.Result[[]*domain.TaskAssignment] {
	const op = "get task assignees"

	assignments, err := s.tx.Repos().Assignments.GetByTaskID(ctx, taskID)
	if err != nil {
		return fail[[]*domain.TaskAssignment](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("task %d has %d assignees", taskID, len(assignments)), assignments)
}
