package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var teamTable = &tableSpec[domain.Team]{
	kind: domain.KindTeam,
	columns: []string{
		"id", "team_name", "is_archived", "archived_at", "created_at", "updated_at",
	},
	orderBy:       "id",
	insertColumns: []string{"team_name"},
	insertValues: func(t *domain.Team) []any {
		return []any{t.Name}
	},
	scan: scanTeam,
	assign: func(t *domain.Team, id int64, createdAt, updatedAt time.Time) {
		t.ID = id
		t.CreatedAt = createdAt
		t.UpdatedAt = updatedAt
	},
	touch: func(t *domain.Team, at time.Time) { t.UpdatedAt = at },
}

func scanTeam(row scanner) (*domain.Team, error) {
	team := &domain.Team{}
	var archivedAt sql.NullTime
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.IsArchived,
		&archivedAt,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	team.ArchivedAt = nullTimePtr(archivedAt)
	return team, nil
}

type teamRepository struct {
	*entityRepository[domain.Team, domain.TeamPatch]
}

func newTeamRepository(executor DBExecutor) *teamRepository {
	return &teamRepository{
		entityRepository: newEntityRepository[domain.Team, domain.TeamPatch](executor, teamTable),
	}
}

// GetActiveByName ищет команду только среди неархивных: имя архивной команды можно переиспользовать.
func (r *teamRepository) GetActiveByName(ctx context.Context, name string) (*domain.Team, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM teams WHERE team_name = $1 AND is_archived = FALSE",
		teamTable.selectList(),
	)
	return r.queryOne(ctx, "team with name "+name, query, name)
}

func (r *teamRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Team, error) {
	query := `
		SELECT t.id, t.team_name, t.is_archived, t.archived_at, t.created_at, t.updated_at
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1 AND tm.is_archived = FALSE
		ORDER BY t.id
	`
	return r.queryMany(ctx, query, userID)
}

func (r *teamRepository) MarkArchived(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE teams
		SET is_archived = TRUE, archived_at = $2, updated_at = $2
		WHERE id = $1 AND is_archived = FALSE
	`

	result, err := r.executor.ExecContext(ctx, query, id, at)
	if err != nil {
		return classify(err, teamTable.resource(id))
	}
	return verifyOne(result, "archive team")
}
