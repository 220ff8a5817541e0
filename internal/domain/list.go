package domain

import "time"

// List - колонка доски внутри проекта. Position уникален и непрерывен в пределах проекта.
type List struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id" validate:"required,gt=0"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l *List) ParentID() int64 { return l.ProjectID }
func (l *List) SetParentID(id int64) { l.ProjectID = id }
func (l *List) GetPosition() int { return l.Position }
func (l *List) SetPosition(position int) { l.Position = position }

type ListPatch struct {
	Name        *string `validate:"omitempty,min=1,max=255"`
	Description *string
}

func (p ListPatch) Diff(existing *List) Changeset[List] {
	var cs Changeset[List]
	cs = diffField(cs, "name", p.Name, existing.Name, func(e *List, v string) { e.Name = v })
	cs = diffField(cs, "description", p.Description, existing.Description, func(e *List, v string) { e.Description = v })
	return cs
}
