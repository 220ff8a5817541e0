package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

func TestEntityService_GetByID(t *testing.T) {
	t.Run("успешное получение пользователя", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		user := &domain.User{ID: 1, Email: "alice@example.com", Name: "Alice"}
		repos.Users.On("GetByID", mock.Anything, int64(1)).Return(user, nil).Once()

		result := svc.Users.GetByID(ctx, 1)

		require.True(t, result.Success)
		assert.Equal(t, user, result.Data)
		assert.Nil(t, result.Error)
		repos.Users.AssertExpectations(t)
	})

	t.Run("ошибка: пользователь не найден", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Users.On("GetByID", mock.Anything, int64(42)).
			Return(nil, domain.NewNotFoundError("user with id 42")).Once()

		result := svc.Users.GetByID(ctx, 42)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeNotFound, result.Error.Code)
		assert.Equal(t, "user with id 42 not found", result.Message)
		assert.Nil(t, result.Data)
	})

	t.Run("непредвиденная ошибка превращается в TRANSACTION_ABORTED", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Projects.On("GetByID", mock.Anything, int64(3)).
			Return(nil, errors.New("connection reset")).Once()

		result := svc.Projects.GetByID(ctx, 3)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeTransactionAborted, result.Error.Code)
		assert.ErrorContains(t, result.Err(), "connection reset")
	})
}

func TestEntityService_GetAll(t *testing.T) {
	t.Run("пустая таблица - успех с пустым списком", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Projects.On("GetAll", mock.Anything).Return([]*domain.Project{}, nil).Once()

		result := svc.Projects.GetAll(ctx)

		require.True(t, result.Success)
		assert.Empty(t, result.Data)
		assert.Equal(t, "found 0 projects", result.Message)
	})
}

func TestEntityService_Create(t *testing.T) {
	t.Run("успешное создание пользователя", func(t *testing.T) {
		svc, repos, tx := setupServices(t)
		ctx := context.Background()

		user := &domain.User{ExternalID: "ext-1", Email: "alice@example.com", Name: "Alice"}
		repos.Users.On("Create", mock.Anything, user).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		}).Return(nil).Once()

		result := svc.Users.Create(ctx, user)

		require.True(t, result.Success)
		assert.Equal(t, int64(7), result.Data.ID)
		assert.Equal(t, 1, tx.Committed)
		repos.Users.AssertExpectations(t)
	})

	t.Run("ошибка валидации не доходит до репозитория", func(t *testing.T) {
		svc, repos, tx := setupServices(t)
		ctx := context.Background()

		result := svc.Users.Create(ctx, &domain.User{ExternalID: "ext-1", Email: "not-an-email", Name: "Alice"})

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		assert.Contains(t, result.Message, "email")
		assert.Equal(t, 0, tx.Committed+tx.RolledBack)
		repos.Users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ошибка уникальности откатывает транзакцию", func(t *testing.T) {
		svc, repos, tx := setupServices(t)
		ctx := context.Background()

		user := &domain.User{ExternalID: "ext-1", Email: "alice@example.com", Name: "Alice"}
		repos.Users.On("Create", mock.Anything, user).
			Return(domain.NewUniquenessError("email already in use", nil)).Once()

		result := svc.Users.Create(ctx, user)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeUniquenessViolation, result.Error.Code)
		assert.Equal(t, 1, tx.RolledBack)
	})

	t.Run("команда не создается без лидера", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		result := svc.Teams.Create(ctx, &domain.Team{Name: "backend"})

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		repos.Teams.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ответ на комментарий другой задачи отклоняется", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		parentID := int64(10)
		comment := &domain.Comment{TaskID: 1, AuthorID: 2, ParentCommentID: &parentID, Content: "+1"}

		repos.Tasks.On("GetByID", mock.Anything, int64(1)).Return(&domain.Task{ID: 1}, nil).Once()
		repos.Users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
		repos.Comments.On("GetByID", mock.Anything, int64(10)).Return(&domain.Comment{ID: 10, TaskID: 99}, nil).Once()

		result := svc.Comments.Create(ctx, comment)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		assert.Equal(t, "comment 10 belongs to another task", result.Message)
		repos.Comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("проект архивированного владельца отклоняется", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		project := &domain.Project{Name: "Apollo", Status: domain.ProjectPlanning, OwnerID: 5}
		repos.Users.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.User{ID: 5, IsArchived: true}, nil).Once()

		result := svc.Projects.Create(ctx, project)

		require.False(t, result.Success)
		assert.Equal(t, "user 5 is archived", result.Message)
		repos.Projects.AssertNotCalled(t, "GetActiveByName", mock.Anything, mock.Anything)
	})

	t.Run("имя занято активным проектом", func(t *testing.T) {
		svc, repos, tx := setupServices(t)
		ctx := context.Background()

		project := &domain.Project{Name: "Apollo", Status: domain.ProjectPlanning, OwnerID: 5}
		repos.Users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5}, nil).Once()
		repos.Projects.On("GetActiveByName", mock.Anything, "Apollo").
			Return(&domain.Project{ID: 1, Name: "Apollo", Status: domain.ProjectActive}, nil).Once()

		result := svc.Projects.Create(ctx, project)

		require.False(t, result.Success)
		assert.True(t, errors.Is(result.Err(), ErrProjectExists))
		assert.Equal(t, "project name already exists", result.Message)
		assert.Equal(t, 1, tx.RolledBack)
		repos.Projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("имя архивного проекта можно занять", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		project := &domain.Project{Name: "Apollo", Status: domain.ProjectPlanning, OwnerID: 5}
		repos.Users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5}, nil).Once()
		repos.Projects.On("GetActiveByName", mock.Anything, "Apollo").
			Return(nil, domain.NewNotFoundError("project with name Apollo")).Once()
		repos.Projects.On("Create", mock.Anything, project).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Project).ID = 8
		}).Return(nil).Once()

		result := svc.Projects.Create(ctx, project)

		require.True(t, result.Success)
		assert.Equal(t, int64(8), result.Data.ID)
		repos.Projects.AssertExpectations(t)
	})
}

func TestEntityService_Update(t *testing.T) {
	t.Run("без изменений - успех без записи", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		project := &domain.Project{ID: 4, Name: "Apollo"}
		repos.Projects.On("Update", mock.Anything, int64(4), mock.Anything).Return(project, false, nil).Once()

		result := svc.Projects.Update(ctx, 4, domain.ProjectPatch{Name: strPtr("Apollo")})

		require.True(t, result.Success)
		assert.Equal(t, "no changes detected for project 4", result.Message)
		assert.Equal(t, project, result.Data)
	})

	t.Run("успешное обновление", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		updated := &domain.Project{ID: 4, Name: "Artemis"}
		repos.Projects.On("Update", mock.Anything, int64(4), mock.Anything).Return(updated, true, nil).Once()

		result := svc.Projects.Update(ctx, 4, domain.ProjectPatch{Name: strPtr("Artemis")})

		require.True(t, result.Success)
		assert.Equal(t, "project updated", result.Message)
		assert.Equal(t, "Artemis", result.Data.Name)
	})

	t.Run("ошибка: неверный статус", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		status := domain.ProjectStatus("paused")
		result := svc.Projects.Update(ctx, 4, domain.ProjectPatch{Status: &status})

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		repos.Projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка проверки записи", func(t *testing.T) {
		svc, repos, tx := setupServices(t)
		ctx := context.Background()

		repos.Tasks.On("Update", mock.Anything, int64(8), mock.Anything).
			Return(nil, false, domain.NewWriteVerificationError("update tasks", 0)).Once()

		result := svc.Tasks.Update(ctx, 8, domain.TaskPatch{Title: strPtr("new")})

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeWriteVerificationFailed, result.Error.Code)
		assert.Equal(t, 1, tx.RolledBack)
	})
}

func TestEntityService_Delete(t *testing.T) {
	t.Run("пользователя нельзя удалить", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		result := svc.Users.Delete(ctx, 1)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		assert.Equal(t, "users cannot be deleted, archive it instead", result.Message)
		repos.Users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("успешное удаление проекта", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		project := &domain.Project{ID: 4, Name: "Apollo"}
		repos.Projects.On("Delete", mock.Anything, int64(4)).Return(project, nil).Once()

		result := svc.Projects.Delete(ctx, 4)

		require.True(t, result.Success)
		assert.Equal(t, project, result.Data)
	})

	t.Run("удаление списка уплотняет позиции", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		list := &domain.List{ID: 2, ProjectID: 1, Position: 1}
		repos.Lists.On("GetByID", mock.Anything, int64(2)).Return(list, nil).Once()
		repos.Projects.On("LockByID", mock.Anything, int64(1)).Return(nil).Once()
		repos.Lists.On("Delete", mock.Anything, int64(2)).Return(list, nil).Once()
		repos.Lists.On("ShiftDownAfter", mock.Anything, int64(1), 1).Return(int64(2), nil).Once()

		result := svc.Lists.Delete(ctx, 2)

		require.True(t, result.Success)
		repos.Lists.AssertExpectations(t)
		repos.Projects.AssertExpectations(t)
	})
}
