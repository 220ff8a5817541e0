//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

func TestTeamLeadership(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	alice := mustUser(t, svc, "alice")
	bob := mustUser(t, svc, "bob")
	carol := mustUser(t, svc, "carol")

	created := svc.Leadership.CreateTeam(ctx, "backend", alice.ID)
	require.True(t, created.Success, created.Message)
	teamID := created.Data.Team.ID

	dup := svc.Leadership.CreateTeam(ctx, "backend", bob.ID)
	assert.Equal(t, domain.CodeUniquenessViolation, dup.Error.Code)

	added := svc.Leadership.AddMembers(ctx, teamID, []int64{bob.ID, carol.ID})
	require.True(t, added.Success, added.Message)

	// повтор одного из участников отменяет всю операцию
	again := svc.Leadership.AddMembers(ctx, teamID, []int64{carol.ID})
	assert.Equal(t, domain.CodeUniquenessViolation, again.Error.Code)
	assert.Contains(t, again.Message, "user")

	removeLeader := svc.Leadership.RemoveMembers(ctx, teamID, []int64{bob.ID, alice.ID})
	assert.True(t, errors.Is(removeLeader.Err(), domain.ErrSoleLeader))

	members := svc.Leadership.GetMembers(ctx, teamID)
	require.True(t, members.Success)
	assert.Len(t, members.Data, 3, "bob не должен быть удален: операция атомарна")

	reassigned := svc.Leadership.ReassignLeader(ctx, teamID, alice.ID, bob.ID)
	require.True(t, reassigned.Success, reassigned.Message)

	leader := svc.Leadership.GetLeader(ctx, teamID)
	require.True(t, leader.Success)
	assert.Equal(t, bob.ID, leader.Data.UserID)

	wrongOld := svc.Leadership.ReassignLeader(ctx, teamID, alice.ID, carol.ID)
	assert.Equal(t, domain.CodeValidation, wrongOld.Error.Code)

	removed := svc.Leadership.RemoveMembers(ctx, teamID, []int64{alice.ID})
	require.True(t, removed.Success, removed.Message)

	teams := svc.Leadership.GetTeamsForUser(ctx, bob.ID)
	require.True(t, teams.Success)
	require.Len(t, teams.Data, 1)
	assert.Equal(t, "backend", teams.Data[0].Name)
}

func TestConcurrentReassignLeader(t *testing.T) {
	svc, database := setupServices(t)
	ctx := context.Background()

	alice := mustUser(t, svc, "alice")
	candidates := []*domain.User{
		mustUser(t, svc, "bob"),
		mustUser(t, svc, "carol"),
		mustUser(t, svc, "dave"),
		mustUser(t, svc, "erin"),
	}

	created := svc.Leadership.CreateTeam(ctx, "backend", alice.ID)
	require.True(t, created.Success, created.Message)
	teamID := created.Data.Team.ID

	ids := make([]int64, 0, len(candidates))
	for _, u := range candidates {
		ids = append(ids, u.ID)
	}
	require.True(t, svc.Leadership.AddMembers(ctx, teamID, ids).Success)

	results := make([]domain.Result[*domain.LeaderChange], len(candidates))
	var wg sync.WaitGroup
	for i, u := range candidates {
		wg.Add(1)
		go func(i int, newLeaderID int64) {
			defer wg.Done()
			results[i] = svc.Leadership.ReassignLeader(ctx, teamID, alice.ID, newLeaderID)
		}(i, u.ID)
	}
	wg.Wait()

	var winner int64
	succeeded := 0
	for _, res := range results {
		if res.Success {
			succeeded++
			winner = res.Data.NewLeader.UserID
			continue
		}
		assert.Equal(t, domain.CodeValidation, res.Error.Code, res.Message)
	}
	require.Equal(t, 1, succeeded, "лидерство от alice может перейти только один раз")

	var leaders int
	require.NoError(t, database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM team_members WHERE team_id = $1 AND is_leader AND NOT is_archived", teamID,
	).Scan(&leaders))
	assert.Equal(t, 1, leaders)

	leader := svc.Leadership.GetLeader(ctx, teamID)
	require.True(t, leader.Success)
	assert.Equal(t, winner, leader.Data.UserID)
}

func TestArchiveTeamIsIdempotent(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	alice := mustUser(t, svc, "alice")
	bob := mustUser(t, svc, "bob")

	created := svc.Leadership.CreateTeam(ctx, "backend", alice.ID)
	require.True(t, created.Success, created.Message)
	teamID := created.Data.Team.ID
	require.True(t, svc.Leadership.AddMembers(ctx, teamID, []int64{bob.ID}).Success)

	first := svc.Archive.Archive(ctx, domain.KindTeam, teamID)
	require.True(t, first.Success, first.Message)
	assert.Equal(t, 2, first.Data.Cascaded)

	second := svc.Archive.Archive(ctx, domain.KindTeam, teamID)
	require.True(t, second.Success, second.Message)
	assert.True(t, first.Data.ArchivedAt.Equal(second.Data.ArchivedAt))
	assert.Zero(t, second.Data.Cascaded)

	members := svc.Leadership.GetMembers(ctx, teamID)
	require.True(t, members.Success)
	assert.Empty(t, members.Data)

	blocked := svc.Leadership.AddMembers(ctx, teamID, []int64{bob.ID})
	assert.Equal(t, domain.CodeValidation, blocked.Error.Code)

	// имя архивированной команды снова свободно
	reused := svc.Leadership.CreateTeam(ctx, "backend", bob.ID)
	require.True(t, reused.Success, reused.Message)

	deleteAttempt := svc.Teams.Delete(ctx, teamID)
	assert.Equal(t, domain.CodeValidation, deleteAttempt.Error.Code)
}

func TestArchiveUser(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()

	alice := mustUser(t, svc, "alice")

	archived := svc.Archive.ArchiveUser(ctx, alice.ID)
	require.True(t, archived.Success, archived.Message)
	require.NotNil(t, archived.Data.ArchivedAt)

	again := svc.Archive.ArchiveUser(ctx, alice.ID)
	require.True(t, again.Success)
	assert.True(t, archived.Data.ArchivedAt.Equal(*again.Data.ArchivedAt))

	team := svc.Leadership.CreateTeam(ctx, "backend", alice.ID)
	assert.Equal(t, domain.CodeValidation, team.Error.Code)

	// email архивированного пользователя можно занять заново
	res := svc.Users.Create(ctx, &domain.User{ExternalID: "ext-alice-2", Email: "alice@example.com", Name: "Alice"})
	assert.True(t, res.Success, res.Message)

	missing := svc.Archive.ArchiveUser(ctx, 999999)
	assert.Equal(t, domain.CodeNotFound, missing.Error.Code)
}
