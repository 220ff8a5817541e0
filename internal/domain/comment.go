package domain

import "time"

// Comment - узел дерева обсуждения. ParentCommentID ссылается на родителя по id.
type Comment struct {
	ID              int64     `json:"id"`
	TaskID          int64     `json:"task_id" validate:"required,gt=0"`
	AuthorID        int64     `json:"author_id" validate:"required,gt=0"`
	ParentCommentID *int64    `json:"parent_comment_id,omitempty"`
	Content         string    `json:"content" validate:"required,max=5000"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CommentPatch struct {
	Content *string `validate:"omitempty,min=1,max=5000"`
}

func (p CommentPatch) Diff(existing *Comment) Changeset[Comment] {
	var cs Changeset[Comment]
	cs = diffField(cs, "content", p.Content, existing.Content, func(e *Comment, v string) { e.Content = v })
	return cs
}
