package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

func TestCommentService_Reply(t *testing.T) {
	t.Run("ответ наследует задачу родителя", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		parent := &domain.Comment{ID: 10, TaskID: 4, AuthorID: 1, Content: "root"}
		repos.Comments.On("GetByID", mock.Anything, int64(10)).Return(parent, nil).Twice()
		repos.Tasks.On("GetByID", mock.Anything, int64(4)).Return(&domain.Task{ID: 4}, nil).Once()
		repos.Users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
		repos.Comments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()

		result := svc.Threads.Reply(ctx, 10, &domain.Comment{AuthorID: 2, Content: "agreed"})

		require.True(t, result.Success)
		assert.Equal(t, int64(4), result.Data.TaskID)
		require.NotNil(t, result.Data.ParentCommentID)
		assert.Equal(t, int64(10), *result.Data.ParentCommentID)
		repos.Comments.AssertExpectations(t)
	})

	t.Run("ошибка: родитель не найден", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Comments.On("GetByID", mock.Anything, int64(10)).
			Return(nil, domain.NewNotFoundError("comment with id 10")).Once()

		result := svc.Threads.Reply(ctx, 10, &domain.Comment{AuthorID: 2, Content: "agreed"})

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeNotFound, result.Error.Code)
	})
}

func TestCommentService_Thread(t *testing.T) {
	svc, repos, _ := setupServices(t)
	ctx := context.Background()

	rootID := int64(10)
	repos.Comments.On("GetThread", mock.Anything, rootID).Return([]*domain.Comment{
		{ID: 10, TaskID: 4},
		{ID: 11, TaskID: 4, ParentCommentID: &rootID},
	}, nil).Once()

	result := svc.Threads.Thread(ctx, rootID)

	require.True(t, result.Success)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, "thread of comment 10 has 2 comments", result.Message)
}

func TestLinkService_AssignTask(t *testing.T) {
	t.Run("успешное назначение", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Tasks.On("GetByID", mock.Anything, int64(4)).Return(&domain.Task{ID: 4}, nil).Once()
		repos.Users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
		repos.Assignments.On("Assign", mock.Anything, &domain.TaskAssignment{TaskID: 4, UserID: 2}).Return(nil).Once()

		result := svc.Links.AssignTask(ctx, 4, 2)

		require.True(t, result.Success)
		repos.Assignments.AssertExpectations(t)
	})

	t.Run("ошибка: архивированный пользователь", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Tasks.On("GetByID", mock.Anything, int64(4)).Return(&domain.Task{ID: 4}, nil).Once()
		repos.Users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, IsArchived: true}, nil).Once()

		result := svc.Links.AssignTask(ctx, 4, 2)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeValidation, result.Error.Code)
		repos.Assignments.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	})
}

func TestLinkService_LinkProject(t *testing.T) {
	t.Run("успешная привязка проекта", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.Teams.On("LockByID", mock.Anything, int64(7)).Return(nil).Once()
		repos.Teams.On("GetByID", mock.Anything, int64(7)).Return(&domain.Team{ID: 7}, nil).Once()
		repos.Projects.On("GetByID", mock.Anything, int64(3)).Return(&domain.Project{ID: 3}, nil).Once()
		repos.TeamProjects.On("Link", mock.Anything, &domain.TeamProject{TeamID: 7, ProjectID: 3}).Return(nil).Once()

		result := svc.Links.LinkProject(ctx, 7, 3)

		require.True(t, result.Success)
		assert.Equal(t, "project 3 linked to team 7", result.Message)
	})

	t.Run("ошибка: связь не найдена при отвязке", func(t *testing.T) {
		svc, repos, _ := setupServices(t)
		ctx := context.Background()

		repos.TeamProjects.On("Unlink", mock.Anything, int64(7), int64(3)).
			Return(domain.NewNotFoundError("link between team 7 and project 3")).Once()

		result := svc.Links.UnlinkProject(ctx, 7, 3)

		require.False(t, result.Success)
		assert.Equal(t, domain.CodeNotFound, result.Error.Code)
	})
}
