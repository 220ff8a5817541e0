package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/service"
)

type testRuntime struct {
	repos      *service.MockRepositories
	connects   int
	closed     int
	migrateErr error
}

func (r *testRuntime) connector() Connector {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := service.New(service.NewMockTxManager(r.repos.Registry()), log)

	return func(ctx context.Context) (*Runtime, func(), error) {
		r.connects++
		return &Runtime{
			Services: svc,
			Migrate:  func(context.Context) error { return r.migrateErr },
			Log:      log,
		}, func() { r.closed++ }, nil
	}
}

func execute(t *testing.T, connect Connector, args ...string) (map[string]any, error) {
	t.Helper()

	cmd := NewRootCommand(connect)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	var decoded map[string]any
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	}
	return decoded, err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	commands := [][]string{
		{"migrate"},
		{"seed"},
		{"team", "create"},
		{"team", "add-members"},
		{"team", "remove-members"},
		{"team", "reassign"},
		{"archive"},
		{"list", "delete"},
		{"task", "delete"},
		{"project", "delete"},
		{"comment", "thread"},
		{"user", "find"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestUserFindCommand(t *testing.T) {
	t.Run("найденный пользователь печатается", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		rt.repos.Users.On("GetActiveByEmail", mock.Anything, "alice@example.com").
			Return(&domain.User{ID: 3, Email: "alice@example.com", Name: "Alice"}, nil).Once()

		out, err := execute(t, rt.connector(), "user", "find", "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, true, out["success"])
		data := out["data"].(map[string]any)
		assert.Equal(t, float64(3), data["id"])
	})

	t.Run("не найден - неуспешный результат", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		rt.repos.Users.On("GetActiveByEmail", mock.Anything, "gone@example.com").
			Return(nil, domain.NewNotFoundError("user with email gone@example.com")).Once()

		out, err := execute(t, rt.connector(), "user", "find", "gone@example.com")

		assert.Equal(t, ExitFailure, GetExitCode(err))
		errBody := out["error"].(map[string]any)
		assert.Equal(t, domain.CodeNotFound, errBody["code"])
	})
}

func TestArchiveCommand(t *testing.T) {
	t.Run("архивация команды печатает результат", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		rt.repos.Teams.On("LockByID", mock.Anything, int64(7)).Return(nil).Once()
		archivedAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		rt.repos.Teams.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Team{ID: 7, IsArchived: true, ArchivedAt: &archivedAt}, nil).Once()

		out, err := execute(t, rt.connector(), "archive", "team", "7")

		require.NoError(t, err)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "team 7 is already archived", out["message"])
		assert.Equal(t, 1, rt.closed)
	})

	t.Run("неверный id - ошибка команды без подключения", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		_, err := execute(t, rt.connector(), "archive", "user", "abc")

		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Zero(t, rt.connects)
	})

	t.Run("неизвестный вид сущности", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		_, err := execute(t, rt.connector(), "archive", "board", "1")

		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}

func TestTeamCommands(t *testing.T) {
	t.Run("неуспешный результат - код выхода 1", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		rt.repos.Teams.On("LockByID", mock.Anything, int64(7)).Return(nil).Once()
		rt.repos.Teams.On("GetByID", mock.Anything, int64(7)).Return(&domain.Team{ID: 7}, nil).Once()
		rt.repos.Memberships.On("Get", mock.Anything, int64(7), int64(1)).
			Return(&domain.Membership{TeamID: 7, UserID: 1, IsLeader: true}, nil).Once()

		out, err := execute(t, rt.connector(), "team", "remove-members", "7", "1")

		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "cannot remove sole leader", out["message"])
		errBody, ok := out["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, domain.CodeValidation, errBody["code"])
	})

	t.Run("create без --leader", func(t *testing.T) {
		rt := &testRuntime{repos: service.NewMockRepositories()}

		_, err := execute(t, rt.connector(), "team", "create", "backend")

		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Zero(t, rt.connects)
	})
}

func TestDeleteCommands(t *testing.T) {
	rt := &testRuntime{repos: service.NewMockRepositories()}

	list := &domain.List{ID: 2, ProjectID: 1, Position: 0}
	rt.repos.Lists.On("GetByID", mock.Anything, int64(2)).Return(list, nil).Once()
	rt.repos.Projects.On("LockByID", mock.Anything, int64(1)).Return(nil).Once()
	rt.repos.Lists.On("Delete", mock.Anything, int64(2)).Return(list, nil).Once()
	rt.repos.Lists.On("ShiftDownAfter", mock.Anything, int64(1), 0).Return(int64(1), nil).Once()

	out, err := execute(t, rt.connector(), "list", "delete", "2")

	require.NoError(t, err)
	assert.Equal(t, "list deleted", out["message"])
	rt.repos.Lists.AssertExpectations(t)
}

func TestMigrateCommand(t *testing.T) {
	rt := &testRuntime{repos: service.NewMockRepositories(), migrateErr: errors.New("relation already exists")}

	out, err := execute(t, rt.connector(), "migrate")

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "migration failed", out["message"])
}

func TestConnectFailure(t *testing.T) {
	connect := func(context.Context) (*Runtime, func(), error) {
		return nil, nil, errors.New("dial tcp: connection refused")
	}

	_, err := execute(t, connect, "comment", "thread", "1")

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorContains(t, err, "connection refused")
}
