package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task - карточка внутри списка. Position уникален и непрерывен в пределах списка.
type Task struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) ParentID() int64 { return t.ListID }
func (t *Task) SetParentID(id int64) { t.ListID = id }
func (t *Task) GetPosition() int { return t.Position }
func (t *Task) SetPosition(position int) { t.Position = position }

type TaskPatch struct {
	Title        *string   `validate:"omitempty,min=1,max=255"`
	Description  *string
	Priority     *Priority `validate:"omitempty,oneof=low medium high"`
	DueDate      *time.Time
	ClearDueDate bool
}

func (p TaskPatch) Diff(existing *Task) Changeset[Task] {
	var cs Changeset[Task]
	cs = diffField(cs, "title", p.Title, existing.Title, func(e *Task, v string) { e.Title = v })
	cs = diffField(cs, "description", p.Description, existing.Description, func(e *Task, v string) { e.Description = v })
	cs = diffField(cs, "priority", p.Priority, existing.Priority, func(e *Task, v Priority) { e.Priority = v })
	cs = diffTime(cs, "due_date", p.DueDate, p.ClearDueDate, existing.DueDate, func(e *Task, v *time.Time) { e.DueDate = v })
	return cs
}
