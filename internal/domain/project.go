package domain

import "time"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name" validate:"required,max=255"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status" validate:"required,oneof=planning active on_hold completed archived"`
	OwnerID     int64         `json:"owner_id" validate:"required,gt=0"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type ProjectPatch struct {
	Name         *string        `validate:"omitempty,min=1,max=255"`
	Description  *string
	Status       *ProjectStatus `validate:"omitempty,oneof=planning active on_hold completed archived"`
	DueDate      *time.Time
	ClearDueDate bool
}

func (p ProjectPatch) Diff(existing *Project) Changeset[Project] {
	var cs Changeset[Project]
	cs = diffField(cs, "name", p.Name, existing.Name, func(e *Project, v string) { e.Name = v })
	cs = diffField(cs, "description", p.Description, existing.Description, func(e *Project, v string) { e.Description = v })
	cs = diffField(cs, "status", p.Status, existing.Status, func(e *Project, v ProjectStatus) { e.Status = v })
	cs = diffTime(cs, "due_date", p.DueDate, p.ClearDueDate, existing.DueDate, func(e *Project, v *time.Time) { e.DueDate = v })
	return cs
}
