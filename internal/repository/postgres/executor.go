package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

// DBExecutor - общий интерфейс *sql.DB и *sql.Tx, чтобы репозитории работали и внутри транзакции.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// dbNow - текущее время с точностью, которую хранит Postgres.
func dbNow() time.Time {
	return domain.StoredTime(time.Now())
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

// verifyOne проверяет, что запись затронула ровно одну строку.
func verifyOne(result sql.Result, action string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected != 1 {
		return domain.NewWriteVerificationError(action, rowsAffected)
	}
	return nil
}
