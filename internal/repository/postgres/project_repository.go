package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var projectTable = &tableSpec[domain.Project]{
	kind: domain.KindProject,
	columns: []string{
		"id", "name", "description", "status", "owner_id", "due_date", "created_at", "updated_at",
	},
	parentColumn:  "owner_id",
	orderBy:       "id",
	insertColumns: []string{"name", "description", "status", "owner_id", "due_date"},
	insertValues: func(p *domain.Project) []any {
		p.DueDate = domain.StoredTimePtr(p.DueDate)
		return []any{p.Name, p.Description, string(p.Status), p.OwnerID, p.DueDate}
	},
	scan: scanProject,
	assign: func(p *domain.Project, id int64, createdAt, updatedAt time.Time) {
		p.ID = id
		p.CreatedAt = createdAt
		p.UpdatedAt = updatedAt
	},
	touch: func(p *domain.Project, at time.Time) { p.UpdatedAt = at },
}

func scanProject(row scanner) (*domain.Project, error) {
	p := &domain.Project{}
	var status string
	var dueDate sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&status,
		&p.OwnerID,
		&dueDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	p.DueDate = nullTimePtr(dueDate)
	return p, nil
}

type projectRepository struct {
	*entityRepository[domain.Project, domain.ProjectPatch]
}

func newProjectRepository(executor DBExecutor) *projectRepository {
	return &projectRepository{
		entityRepository: newEntityRepository[domain.Project, domain.ProjectPatch](executor, projectTable),
	}
}

func (r *projectRepository) GetActiveByName(ctx context.Context, name string) (*domain.Project, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM projects WHERE name = $1 AND status <> 'archived'",
		projectTable.selectList(),
	)
	return r.queryOne(ctx, "project with name "+name, query, name)
}
