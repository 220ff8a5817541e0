//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"io"
	"strconv"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jrconcha-strat/taskboard/internal/db"
	"github.com/jrconcha-strat/taskboard/internal/domain"
	postgresrepo "github.com/jrconcha-strat/taskboard/internal/repository/postgres"
	"github.com/jrconcha-strat/taskboard/internal/service"
)

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	// Создаём контейнер Postgres через testcontainers
	postgresContainer, err := postgres.Run(ctx,
		"postgres:17.7",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, database.Ping())

	// Миграции идемпотентны: второй прогон не должен падать
	require.NoError(t, db.Migrate(ctx, database))
	require.NoError(t, db.Migrate(ctx, database))

	t.Cleanup(func() {
		database.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return database
}

func setupServices(t *testing.T) (*service.Services, *sql.DB) {
	database := setupTestDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return service.New(postgresrepo.NewStore(database), log), database
}

func mustUser(t *testing.T, svc *service.Services, name string) *domain.User {
	t.Helper()

	res := svc.Users.Create(context.Background(), &domain.User{
		ExternalID: "ext-" + name,
		Email:      name + "@example.com",
		Name:       name,
	})
	require.True(t, res.Success, res.Message)
	return res.Data
}

func mustProject(t *testing.T, svc *service.Services, ownerID int64, name string) *domain.Project {
	t.Helper()

	res := svc.Projects.Create(context.Background(), &domain.Project{
		Name:    name,
		Status:  domain.ProjectActive,
		OwnerID: ownerID,
	})
	require.True(t, res.Success, res.Message)
	return res.Data
}

func mustList(t *testing.T, svc *service.Services, projectID int64, name string) *domain.List {
	t.Helper()

	res := svc.ListPositions.Create(context.Background(), projectID, &domain.List{Name: name})
	require.True(t, res.Success, res.Message)
	return res.Data
}

func mustTask(t *testing.T, svc *service.Services, listID int64, title string) *domain.Task {
	t.Helper()

	res := svc.TaskPositions.Create(context.Background(), listID, &domain.Task{
		Title:    title,
		Priority: domain.PriorityMedium,
	})
	require.True(t, res.Success, res.Message)
	return res.Data
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
