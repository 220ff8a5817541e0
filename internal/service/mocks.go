package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// MockEntityRepository реализует общие CRUD-методы для любого вида сущностей.
type MockEntityRepository[T any, P domain.Patch[T]] struct {
	mock.Mock
}

func (m *MockEntityRepository[T, P]) GetAll(ctx context.Context) ([]*T, error) {
	args := m.MethodCalled("GetAll", ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *MockEntityRepository[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	args := m.MethodCalled("GetByID", ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockEntityRepository[T, P]) GetByParent(ctx context.Context, parentID int64) ([]*T, error) {
	args := m.MethodCalled("GetByParent", ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*T), args.Error(1)
}

func (m *MockEntityRepository[T, P]) Create(ctx context.Context, entity *T) error {
	args := m.MethodCalled("Create", ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository[T, P]) Update(ctx context.Context, id int64, patch P) (*T, bool, error) {
	args := m.MethodCalled("Update", ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*T), args.Bool(1), args.Error(2)
}

func (m *MockEntityRepository[T, P]) Delete(ctx context.Context, id int64) (*T, error) {
	args := m.MethodCalled("Delete", ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockEntityRepository[T, P]) LockByID(ctx context.Context, id int64) error {
	args := m.MethodCalled("LockByID", ctx, id)
	return args.Error(0)
}

func (m *MockEntityRepository[T, P]) CountByParent(ctx context.Context, parentID int64) (int, error) {
	args := m.MethodCalled("CountByParent", ctx, parentID)
	return args.Int(0), args.Error(1)
}

func (m *MockEntityRepository[T, P]) ShiftDownAfter(ctx context.Context, parentID int64, position int) (int64, error) {
	args := m.MethodCalled("ShiftDownAfter", ctx, parentID, position)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	MockEntityRepository[domain.User, domain.UserPatch]
}

func (m *MockUserRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.MethodCalled("GetActiveByEmail", ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) MarkArchived(ctx context.Context, id int64, at time.Time) error {
	args := m.MethodCalled("MarkArchived", ctx, id, at)
	return args.Error(0)
}

type MockTeamRepository struct {
	MockEntityRepository[domain.Team, domain.TeamPatch]
}

func (m *MockTeamRepository) GetActiveByName(ctx context.Context, name string) (*domain.Team, error) {
	args := m.MethodCalled("GetActiveByName", ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Team, error) {
	args := m.MethodCalled("GetByUserID", ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) MarkArchived(ctx context.Context, id int64, at time.Time) error {
	args := m.MethodCalled("MarkArchived", ctx, id, at)
	return args.Error(0)
}

type MockProjectRepository struct {
	MockEntityRepository[domain.Project, domain.ProjectPatch]
}

func (m *MockProjectRepository) GetActiveByName(ctx context.Context, name string) (*domain.Project, error) {
	args := m.MethodCalled("GetActiveByName", ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

type MockListRepository struct {
	MockEntityRepository[domain.List, domain.ListPatch]
}

type MockTaskRepository struct {
	MockEntityRepository[domain.Task, domain.TaskPatch]
}

type MockCommentRepository struct {
	MockEntityRepository[domain.Comment, domain.CommentPatch]
}

func (m *MockCommentRepository) GetThread(ctx context.Context, rootID int64) ([]*domain.Comment, error) {
	args := m.MethodCalled("GetThread", ctx, rootID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(ctx context.Context, teamID, userID int64) (*domain.Membership, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetActiveByTeamID(ctx context.Context, teamID int64) ([]*domain.Membership, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetLeader(ctx context.Context, teamID int64) (*domain.Membership, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) SetLeader(ctx context.Context, teamID, userID int64, isLeader bool) error {
	args := m.Called(ctx, teamID, userID, isLeader)
	return args.Error(0)
}

func (m *MockMembershipRepository) Archive(ctx context.Context, teamID, userID int64, at time.Time) error {
	args := m.Called(ctx, teamID, userID, at)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, teamID, userID int64) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

type MockTeamProjectRepository struct {
	mock.Mock
}

func (m *MockTeamProjectRepository) Link(ctx context.Context, link *domain.TeamProject) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockTeamProjectRepository) Unlink(ctx context.Context, teamID, projectID int64) error {
	args := m.Called(ctx, teamID, projectID)
	return args.Error(0)
}

func (m *MockTeamProjectRepository) GetByTeamID(ctx context.Context, teamID int64) ([]*domain.TeamProject, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamProject), args.Error(1)
}

type MockTaskAssignmentRepository struct {
	mock.Mock
}

func (m *MockTaskAssignmentRepository) Assign(ctx context.Context, a *domain.TaskAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockTaskAssignmentRepository) Unassign(ctx context.Context, taskID, userID int64) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}

func (m *MockTaskAssignmentRepository) GetByTaskID(ctx context.Context, taskID int64) ([]*domain.TaskAssignment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TaskAssignment), args.Error(1)
}

// MockRepositories - набор моков, собранный в repository.Repositories.
type MockRepositories struct {
	Users        *MockUserRepository
	Teams        *MockTeamRepository
	Memberships  *MockMembershipRepository
	Projects     *MockProjectRepository
	Lists        *MockListRepository
	Tasks        *MockTaskRepository
	Comments     *MockCommentRepository
	TeamProjects *MockTeamProjectRepository
	Assignments  *MockTaskAssignmentRepository
}

func NewMockRepositories() *MockRepositories {
	return &MockRepositories{
		Users:        new(MockUserRepository),
		Teams:        new(MockTeamRepository),
		Memberships:  new(MockMembershipRepository),
		Projects:     new(MockProjectRepository),
		Lists:        new(MockListRepository),
		Tasks:        new(MockTaskRepository),
		Comments:     new(MockCommentRepository),
		TeamProjects: new(MockTeamProjectRepository),
		Assignments:  new(MockTaskAssignmentRepository),
	}
}

func (m *MockRepositories) Registry() *repository.Repositories {
	return &repository.Repositories{
		Users:        m.Users,
		Teams:        m.Teams,
		Memberships:  m.Memberships,
		Projects:     m.Projects,
		Lists:        m.Lists,
		Tasks:        m.Tasks,
		Comments:     m.Comments,
		TeamProjects: m.TeamProjects,
		Assignments:  m.Assignments,
	}
}

// MockTxManager выполняет fn сразу и считает коммиты и откаты.
type MockTxManager struct {
	repos      *repository.Repositories
	Committed  int
	RolledBack int
}

func NewMockTxManager(repos *repository.Repositories) *MockTxManager {
	return &MockTxManager{repos: repos}
}

func (m *MockTxManager) WithinTx(ctx context.Context, opts *sql.TxOptions, fn func(repos *repository.Repositories) error) error {
	if err := fn(m.repos); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

func (m *MockTxManager) Repos() *repository.Repositories {
	return m.repos
}
