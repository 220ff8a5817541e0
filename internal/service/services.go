package service

import (
	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// Services - все операции слоя данных, собранные поверх одного TxManager.
type Services struct {
	Users    *EntityService[domain.User, domain.UserPatch]
	Teams    *EntityService[domain.Team, domain.TeamPatch]
	Projects *EntityService[domain.Project, domain.ProjectPatch]
	Lists    *EntityService[domain.List, domain.ListPatch]
	Tasks    *EntityService[domain.Task, domain.TaskPatch]
	Comments *EntityService[domain.Comment, domain.CommentPatch]

	ListPositions *PositionManager[domain.List, domain.ListPatch, *domain.List]
	TaskPositions *PositionManager[domain.Task, domain.TaskPatch, *domain.Task]

	Accounts   *UserService
	Archive    *ArchiveService
	Leadership *TeamService
	Threads    *CommentService
	Links      *LinkService
}

func New(tx repository.TxManager, log logrus.FieldLogger) *Services {
	ops := operations{tx: tx, log: log}

	s := &Services{
		Users: newEntityService(ops, domain.KindUser,
			func(r *repository.Repositories) repository.EntityRepository[domain.User, domain.UserPatch] { return r.Users }),
		Teams: newEntityService(ops, domain.KindTeam,
			func(r *repository.Repositories) repository.EntityRepository[domain.Team, domain.TeamPatch] { return r.Teams }),
		Projects: newEntityService(ops, domain.KindProject,
			func(r *repository.Repositories) repository.EntityRepository[domain.Project, domain.ProjectPatch] { return r.Projects }),
		Lists: newEntityService(ops, domain.KindList,
			func(r *repository.Repositories) repository.EntityRepository[domain.List, domain.ListPatch] { return r.Lists }),
		Tasks: newEntityService(ops, domain.KindTask,
			func(r *repository.Repositories) repository.EntityRepository[domain.Task, domain.TaskPatch] { return r.Tasks }),
		Comments: newEntityService(ops, domain.KindComment,
			func(r *repository.Repositories) repository.EntityRepository[domain.Comment, domain.CommentPatch] { return r.Comments }),

		ListPositions: NewListPositions(tx, log),
		TaskPositions: NewTaskPositions(tx, log),

		Accounts:   NewUserService(tx, log),
		Archive:    NewArchiveService(tx, log),
		Leadership: NewTeamService(tx, log),
		Links:      NewLinkService(tx, log),
	}

	s.Teams.beforeCreate = rejectTeamCreate
	s.Projects.beforeCreate = checkNewProject
	s.Comments.beforeCreate = checkCommentRefs
	s.Lists.positions = s.ListPositions
	s.Tasks.positions = s.TaskPositions
	s.Threads = NewCommentService(tx, log, s.Comments)

	return s
}
