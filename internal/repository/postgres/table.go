package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

// tableSpec описывает, как сущность T раскладывается по колонкам своей таблицы.
type tableSpec[T any] struct {
	kind domain.Kind
	// columns - полный список колонок в порядке scan, id первым
	columns      []string
	parentColumn string
	orderBy      string

	insertColumns []string
	insertValues  func(e *T) []any
	scan          func(row scanner) (*T, error)
	// assign записывает значения, возвращенные INSERT ... RETURNING
	assign func(e *T, id int64, createdAt, updatedAt time.Time)
	touch  func(e *T, at time.Time)
}

func (s *tableSpec[T]) table() string {
	return s.kind.Table()
}

func (s *tableSpec[T]) selectList() string {
	return strings.Join(s.columns, ", ")
}

func (s *tableSpec[T]) resource(id int64) string {
	return fmt.Sprintf("%s with id %d", s.kind, id)
}

type entityRepository[T any, P domain.Patch[T]] struct {
	executor DBExecutor
	spec     *tableSpec[T]
}

func newEntityRepository[T any, P domain.Patch[T]](executor DBExecutor, spec *tableSpec[T]) *entityRepository[T, P] {
	return &entityRepository[T, P]{executor: executor, spec: spec}
}

func (r *entityRepository[T, P]) GetAll(ctx context.Context) ([]*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		r.spec.selectList(), r.spec.table(), r.spec.orderBy,
	)
	return r.queryMany(ctx, query)
}

func (r *entityRepository[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE id = $1",
		r.spec.selectList(), r.spec.table(),
	)

	entity, err := r.spec.scan(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, classify(err, r.spec.resource(id))
	}
	return entity, nil
}

func (r *entityRepository[T, P]) GetByParent(ctx context.Context, parentID int64) ([]*T, error) {
	if r.spec.parentColumn == "" {
		return nil, domain.NewValidationError("%s has no parent scope", r.spec.kind)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		r.spec.selectList(), r.spec.table(), r.spec.parentColumn, r.spec.orderBy,
	)
	return r.queryMany(ctx, query, parentID)
}

func (r *entityRepository[T, P]) Create(ctx context.Context, entity *T) error {
	cols := append(append([]string{}, r.spec.insertColumns...), "created_at", "updated_at")
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at, updated_at",
		r.spec.table(), strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	now := dbNow()
	args := append(r.spec.insertValues(entity), now, now)

	var id int64
	var createdAt, updatedAt time.Time
	err := r.executor.QueryRowContext(ctx, query, args...).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewWriteVerificationError("insert into "+r.spec.table(), 0)
		}
		return classify(err, r.spec.kind.String())
	}

	r.spec.assign(entity, id, createdAt, updatedAt)
	return nil
}

func (r *entityRepository[T, P]) Update(ctx context.Context, id int64, patch P) (*T, bool, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changes := patch.Diff(existing)
	if changes.Empty() {
		return existing, false, nil
	}

	now := dbNow()
	set := make([]string, 0, len(changes)+1)
	for i, col := range changes.Columns() {
		set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", len(changes)+1))

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d",
		r.spec.table(), strings.Join(set, ", "), len(changes)+2,
	)
	args := append(changes.Values(), now, id)

	result, err := r.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, false, classify(err, r.spec.resource(id))
	}
	if err := verifyOne(result, "update "+r.spec.table()); err != nil {
		return nil, false, err
	}

	changes.ApplyTo(existing)
	r.spec.touch(existing, now)
	return existing, true, nil
}

func (r *entityRepository[T, P]) Delete(ctx context.Context, id int64) (*T, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.spec.table())
	result, err := r.executor.ExecContext(ctx, query, id)
	if err != nil {
		return nil, classify(err, r.spec.resource(id))
	}
	if err := verifyOne(result, "delete from "+r.spec.table()); err != nil {
		return nil, err
	}

	return existing, nil
}

// LockByID блокирует строку до конца текущей транзакции.
func (r *entityRepository[T, P]) LockByID(ctx context.Context, id int64) error {
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = $1 FOR UPDATE", r.spec.table())

	var locked int64
	if err := r.executor.QueryRowContext(ctx, query, id).Scan(&locked); err != nil {
		return classify(err, r.spec.resource(id))
	}
	return nil
}

func (r *entityRepository[T, P]) queryOne(ctx context.Context, resource, query string, args ...any) (*T, error) {
	entity, err := r.spec.scan(r.executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err, resource)
	}
	return entity, nil
}

func (r *entityRepository[T, P]) queryMany(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, r.spec.kind.String())
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		entity, err := r.spec.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, entity)
	}

	return items, rows.Err()
}
