package domain

import "time"

type TeamProject struct {
	TeamID    int64     `json:"team_id"`
	ProjectID int64     `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskAssignment struct {
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Archival - итог архивации произвольной архивируемой сущности.
type Archival struct {
	Kind       string    `json:"kind"`
	ID         int64     `json:"id"`
	ArchivedAt time.Time `json:"archived_at"`
	Cascaded   int       `json:"cascaded"`
}
