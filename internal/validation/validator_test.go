package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

func TestStruct(t *testing.T) {
	t.Run("корректный пользователь", func(t *testing.T) {
		err := Struct(&domain.User{
			ExternalID: "user_2abc",
			Email:      "alice@example.com",
			Name:       "Alice",
		})

		assert.NoError(t, err)
	})

	t.Run("несколько нарушений в одном сообщении", func(t *testing.T) {
		err := Struct(&domain.User{Email: "not-an-email"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Contains(t, err.Error(), "externalid is required")
		assert.Contains(t, err.Error(), "email must be a valid email")
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("недопустимое значение перечисления", func(t *testing.T) {
		err := Struct(&domain.Task{ListID: 1, Title: "Write docs", Priority: "urgent"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "priority must be one of: low medium high")
	})

	t.Run("патч с пустым именем", func(t *testing.T) {
		empty := ""
		err := Struct(domain.TeamPatch{Name: &empty})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name must be at least 1 characters")
	})

	t.Run("пустой патч допустим", func(t *testing.T) {
		assert.NoError(t, Struct(domain.ProjectPatch{}))
	})
}
