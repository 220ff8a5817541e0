package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

var userTable = &tableSpec[domain.User]{
	kind: domain.KindUser,
	columns: []string{
		"id", "external_id", "email", "name", "image_url",
		"is_archived", "archived_at", "created_at", "updated_at",
	},
	orderBy:       "id",
	insertColumns: []string{"external_id", "email", "name", "image_url"},
	insertValues: func(u *domain.User) []any {
		return []any{u.ExternalID, u.Email, u.Name, u.ImageURL}
	},
	scan: scanUser,
	assign: func(u *domain.User, id int64, createdAt, updatedAt time.Time) {
		u.ID = id
		u.CreatedAt = createdAt
		u.UpdatedAt = updatedAt
	},
	touch: func(u *domain.User, at time.Time) { u.UpdatedAt = at },
}

func scanUser(row scanner) (*domain.User, error) {
	user := &domain.User{}
	var archivedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.Name,
		&user.ImageURL,
		&user.IsArchived,
		&archivedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ArchivedAt = nullTimePtr(archivedAt)
	return user, nil
}

type userRepository struct {
	*entityRepository[domain.User, domain.UserPatch]
}

func newUserRepository(executor DBExecutor) *userRepository {
	return &userRepository{
		entityRepository: newEntityRepository[domain.User, domain.UserPatch](executor, userTable),
	}
}

func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM users WHERE email = $1 AND is_archived = FALSE",
		userTable.selectList(),
	)
	return r.queryOne(ctx, "user with email "+email, query, email)
}

// MarkArchived переводит пользователя в архив. Повторная архивация отсекается условием is_archived = FALSE.
func (r *userRepository) MarkArchived(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE users
		SET is_archived = TRUE, archived_at = $2, updated_at = $2
		WHERE id = $1 AND is_archived = FALSE
	`

	result, err := r.executor.ExecContext(ctx, query, id, at)
	if err != nil {
		return classify(err, userTable.resource(id))
	}
	return verifyOne(result, "archive user")
}
