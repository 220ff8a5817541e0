package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var commentTable = &tableSpec[domain.Comment]{
	kind: domain.KindComment,
	columns: []string{
		"id", "task_id", "author_id", "parent_comment_id", "content", "created_at", "updated_at",
	},
	parentColumn:  "task_id",
	orderBy:       "created_at, id",
	insertColumns: []string{"task_id", "author_id", "parent_comment_id", "content"},
	insertValues: func(c *domain.Comment) []any {
		return []any{c.TaskID, c.AuthorID, c.ParentCommentID, c.Content}
	},
	scan: scanComment,
	assign: func(c *domain.Comment, id int64, createdAt, updatedAt time.Time) {
		c.ID = id
		c.CreatedAt = createdAt
		c.UpdatedAt = updatedAt
	},
	touch: func(c *domain.Comment, at time.Time) { c.UpdatedAt = at },
}

func scanComment(row scanner) (*domain.Comment, error) {
	c := &domain.Comment{}
	var parentID sql.NullInt64
	err := row.Scan(
		&c.ID,
		&c.TaskID,
		&c.AuthorID,
		&parentID,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ParentCommentID = nullInt64Ptr(parentID)
	return c, nil
}

type commentRepository struct {
	*entityRepository[domain.Comment, domain.CommentPatch]
}

func newCommentRepository(executor DBExecutor) *commentRepository {
	return &commentRepository{
		entityRepository: newEntityRepository[domain.Comment, domain.CommentPatch](executor, commentTable),
	}
}

func (r *commentRepository) GetThread(ctx context.Context, rootID int64) ([]*domain.Comment, error) {
	query := `
		WITH RECURSIVE thread AS (
			SELECT id, task_id, author_id, parent_comment_id, content, created_at, updated_at
			FROM comments
			WHERE id = $1
			UNION ALL
			SELECT c.id, c.task_id, c.author_id, c.parent_comment_id, c.content, c.created_at, c.updated_at
			FROM comments c
			JOIN thread t ON c.parent_comment_id = t.id
		)
		SELECT id, task_id, author_id, parent_comment_id, content, created_at, updated_at
		FROM thread
		ORDER BY created_at, id
	`

	comments, err := r.queryMany(ctx, query, rootID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, domain.NewNotFoundError(commentTable.resource(rootID))
	}
	return comments, nil
}
