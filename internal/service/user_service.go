package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// UserService - поиск пользователей по внешним ключам.
type UserService struct {
	operations
}

func NewUserService(tx repository.TxManager, log logrus.FieldLogger) *UserService {
	return &UserService{operations: operations{tx: tx, log: log}}
}

// GetByEmail ищет только среди активных пользователей: email архивного можно занять заново.
func (s *UserService) GetByEmail(ctx context.Context, email string) domain.Result[*domain.User] {
	const op = "get user by email"

	email = strings.TrimSpace(email)
	if email == "" {
		return fail[*domain.User](s.operations, op, domain.NewValidationError("email is required"))
	}

	user, err := s.tx.Repos().Users.GetActiveByEmail(ctx, email)
	if err != nil {
		return fail[*domain.User](s.operations, op, err)
	}
	return domain.OK("user found", user)
}
