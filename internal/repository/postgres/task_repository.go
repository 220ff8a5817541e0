package postgres

import (
	"database/sql"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var taskTable = &tableSpec[domain.Task]{
	kind: domain.KindTask,
	columns: []string{
		"id", "list_id", "title", "description", "priority", "due_date", "position", "created_at", "updated_at",
	},
	parentColumn:  "list_id",
	orderBy:       "position",
	insertColumns: []string{"list_id", "title", "description", "priority", "due_date", "position"},
	insertValues: func(t *domain.Task) []any {
		t.DueDate = domain.StoredTimePtr(t.DueDate)
		return []any{t.ListID, t.Title, t.Description, string(t.Priority), t.DueDate, t.Position}
	},
	scan: scanTask,
	assign: func(t *domain.Task, id int64, createdAt, updatedAt time.Time) {
		t.ID = id
		t.CreatedAt = createdAt
		t.UpdatedAt = updatedAt
	},
	touch: func(t *domain.Task, at time.Time) { t.UpdatedAt = at },
}

func scanTask(row scanner) (*domain.Task, error) {
	t := &domain.Task{}
	var priority string
	var dueDate sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.ListID,
		&t.Title,
		&t.Description,
		&priority,
		&dueDate,
		&t.Position,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	t.DueDate = nullTimePtr(dueDate)
	return t, nil
}

type taskRepository struct {
	*positionedRepository[domain.Task, domain.TaskPatch]
}

func newTaskRepository(executor DBExecutor) *taskRepository {
	return &taskRepository{
		positionedRepository: &positionedRepository[domain.Task, domain.TaskPatch]{
			entityRepository: newEntityRepository[domain.Task, domain.TaskPatch](executor, taskTable),
		},
	}
}
