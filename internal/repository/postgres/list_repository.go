package postgres

import (
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var listTable = &tableSpec[domain.List]{
	kind: domain.KindList,
	columns: []string{
		"id", "project_id", "name", "description", "position", "created_at", "updated_at",
	},
	parentColumn:  "project_id",
	orderBy:       "position",
	insertColumns: []string{"project_id", "name", "description", "position"},
	insertValues: func(l *domain.List) []any {
		return []any{l.ProjectID, l.Name, l.Description, l.Position}
	},
	scan: func(row scanner) (*domain.List, error) {
		l := &domain.List{}
		err := row.Scan(
			&l.ID,
			&l.ProjectID,
			&l.Name,
			&l.Description,
			&l.Position,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return l, nil
	},
	assign: func(l *domain.List, id int64, createdAt, updatedAt time.Time) {
		l.ID = id
		l.CreatedAt = createdAt
		l.UpdatedAt = updatedAt
	},
	touch: func(l *domain.List, at time.Time) { l.UpdatedAt = at },
}

type listRepository struct {
	*positionedRepository[domain.List, domain.ListPatch]
}

func newListRepository(executor DBExecutor) *listRepository {
	return &listRepository{
		positionedRepository: &positionedRepository[domain.List, domain.ListPatch]{
			entityRepository: newEntityRepository[domain.List, domain.ListPatch](executor, listTable),
		},
	}
}
