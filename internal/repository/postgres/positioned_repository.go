package postgres

import (
	"context"
	"fmt"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

// positionedRepository добавляет к CRUD операции над позициями внутри родителя.
type positionedRepository[T any, P domain.Patch[T]] struct {
	*entityRepository[T, P]
}

func (r *positionedRepository[T, P]) CountByParent(ctx context.Context, parentID int64) (int, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1",
		r.spec.table(), r.spec.parentColumn,
	)

	var count int
	if err := r.executor.QueryRowContext(ctx, query, parentID).Scan(&count); err != nil {
		return 0, classify(err, r.spec.kind.String())
	}
	return count, nil
}

// ShiftDownAfter закрывает дыру после удаления: все соседи с позицией больше position сдвигаются на одну вниз.
// Уникальность (parent, position) проверяется при коммите (DEFERRABLE INITIALLY DEFERRED),
// поэтому порядок обновления строк внутри запроса не важен.
func (r *positionedRepository[T, P]) ShiftDownAfter(ctx context.Context, parentID int64, position int) (int64, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET position = position - 1, updated_at = $3 WHERE %s = $1 AND position > $2",
		r.spec.table(), r.spec.parentColumn,
	)

	result, err := r.executor.ExecContext(ctx, query, parentID, position, dbNow())
	if err != nil {
		return 0, classify(err, r.spec.kind.String())
	}
	return result.RowsAffected()
}
