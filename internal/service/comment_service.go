package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// CommentService - ответы и ветки обсуждения задачи.
type CommentService struct {
	operations
	comments *EntityService[domain.Comment, domain.CommentPatch]
}

func NewCommentService(tx repository.TxManager, log logrus.FieldLogger, comments *EntityService[domain.Comment, domain.CommentPatch]) *CommentService {
	return &CommentService{
		operations: operations{tx: tx, log: log},
		comments:   comments,
	}
}

// Reply создает ответ на комментарий. Ответ всегда относится к задаче родителя.
func (s *CommentService) Reply(ctx context.Context, parentID int64, reply *domain.Comment) domain.Result[*domain.Comment] {
	const op = "reply to comment"

	parent, err := s.tx.Repos().Comments.GetByID(ctx, parentID)
	if err != nil {
		return fail[*domain.Comment](s.operations, op, err)
	}

	if reply.TaskID == 0 {
		reply.TaskID = parent.TaskID
	}
	reply.ParentCommentID = &parentID
	return s.comments.Create(ctx, reply)
}

// Thread возвращает корневой комментарий и всех его потомков.
func (s *CommentService) Thread(ctx context.Context, rootID int64) domain.Result[[]*domain.Comment] {
	const op = "get comment thread"

	thread, err := s.tx.Repos().Comments.GetThread(ctx, rootID)
	if err != nil {
		return fail[[]*domain.Comment](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("thread of comment %d has %d comments", rootID, len(thread)), thread)
}

// checkCommentRefs выполняется перед созданием любого комментария.
func checkCommentRefs(ctx context.Context, repos *repository.Repositories, c *domain.Comment) error {
	if _, err := repos.Tasks.GetByID(ctx, c.TaskID); err != nil {
		return err
	}
	if _, err := activeUser(ctx, repos, c.AuthorID); err != nil {
		return err
	}

	if c.ParentCommentID == nil {
		return nil
	}
	parent, err := repos.Comments.GetByID(ctx, *c.ParentCommentID)
	if err != nil {
		return err
	}
	if parent.TaskID != c.TaskID {
		return domain.NewValidationError("comment %d belongs to another task", parent.ID)
	}
	return nil
}

// checkNewProject - владелец нового проекта активен, а имя не занято неархивным проектом.
func checkNewProject(ctx context.Context, repos *repository.Repositories, p *domain.Project) error {
	if _, err := activeUser(ctx, repos, p.OwnerID); err != nil {
		return err
	}
	if p.Status == domain.ProjectArchived {
		return nil
	}

	_, err := repos.Projects.GetActiveByName(ctx, p.Name)
	if err == nil {
		return ErrProjectExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func rejectTeamCreate(context.Context, *repository.Repositories, *domain.Team) error {
	return domain.NewValidationError("teams are created together with a leader, use CreateTeam")
}
