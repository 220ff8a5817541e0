package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrconcha-strat/taskboard/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

var uniqueConstraintMessages = map[string]string{
	"users_external_id_key":       "user with this external id already exists",
	"users_email_active_key":      "email is already used by an active user",
	"teams_name_active_key":       "team name already exists",
	"projects_name_active_key":    "project name already exists",
	"lists_project_position_key":  "list position already taken in this project",
	"tasks_list_position_key":     "task position already taken in this list",
	"team_members_pkey":           "user is already a member of this team",
	"team_members_one_leader_key": "team already has a leader",
	"team_projects_pkey":          "project is already linked to this team",
	"task_assignments_pkey":       "user is already assigned to this task",
}

// classify переводит ошибки драйвера в доменные.
// Неизвестные ошибки возвращаются как есть: их оборачивает граница операции в сервисе.
func classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(resource)
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		msg, ok := uniqueConstraintMessages[pgErr.ConstraintName]
		if !ok {
			msg = resource + " violates a uniqueness constraint"
		}
		return domain.NewUniquenessError(msg, err)
	case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
		return &domain.DomainError{
			Code:    domain.CodeValidation,
			Message: resource + " violates a data constraint",
			Cause:   err,
		}
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return domain.NewTransactionAbortedError(err)
	default:
		return err
	}
}
