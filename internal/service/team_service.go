package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
	"github.com/jrconcha-strat/taskboard/internal/validation"
)

var (
	ErrTeamExists = &domain.DomainError{
		Code:    domain.CodeUniquenessViolation,
		Message: "team name already exists",
	}

	ErrProjectExists = &domain.DomainError{
		Code:    domain.CodeUniquenessViolation,
		Message: "project name already exists",
	}
)

// TeamService отвечает за состав команды и за то, чтобы у активной команды
// всегда был ровно один лидер.
type TeamService struct {
	operations
}

func NewTeamService(tx repository.TxManager, log logrus.FieldLogger) *TeamService {
	return &TeamService{operations: operations{tx: tx, log: log}}
}

// CreateTeam создает команду, а ее создатель становится лидером.
func (s *TeamService) CreateTeam(ctx context.Context, name string, creatorID int64) domain.Result[*domain.TeamWithLeader] {
	const op = "create team"

	team := &domain.Team{Name: name}
	if err := validation.Struct(team); err != nil {
		return fail[*domain.TeamWithLeader](s.operations, op, err)
	}

	var leader *domain.Membership
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := activeUser(ctx, repos, creatorID); err != nil {
			return err
		}

		_, err := repos.Teams.GetActiveByName(ctx, name)
		if err == nil {
			return ErrTeamExists
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := repos.Teams.Create(ctx, team); err != nil {
			return err
		}

		leader = &domain.Membership{
			TeamID:   team.ID,
			UserID:   creatorID,
			IsLeader: true,
		}
		return repos.Memberships.Create(ctx, leader)
	})
	if err != nil {
		return fail[*domain.TeamWithLeader](s.operations, op, err)
	}

	s.log.WithFields(logrus.Fields{"team_id": team.ID, "leader_id": creatorID}).Info("team created")
	return domain.OK("team created", &domain.TeamWithLeader{Team: team, Leader: leader})
}

// AddMembers добавляет пользователей в команду: либо всех, либо никого.
// Первый отказ прерывает операцию и называется в сообщении.
func (s *TeamService) AddMembers(ctx context.Context, teamID int64, userIDs []int64) domain.Result[[]*domain.Membership] {
	const op = "add team members"

	if len(userIDs) == 0 {
		return fail[[]*domain.Membership](s.operations, op, domain.NewValidationError("no users to add"))
	}

	added := make([]*domain.Membership, 0, len(userIDs))
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := lockActiveTeam(ctx, repos, teamID); err != nil {
			return err
		}

		for _, userID := range userIDs {
			if _, err := activeUser(ctx, repos, userID); err != nil {
				return memberFailure(userID, err)
			}

			m := &domain.Membership{TeamID: teamID, UserID: userID}
			if err := repos.Memberships.Create(ctx, m); err != nil {
				return memberFailure(userID, err)
			}
			added = append(added, m)
		}
		return nil
	})
	if err != nil {
		return fail[[]*domain.Membership](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("added %d members to team %d", len(added), teamID), added)
}

// RemoveMembers удаляет пользователей из команды атомарно. Лидера удалить нельзя:
// сначала нужно передать лидерство.
func (s *TeamService) RemoveMembers(ctx context.Context, teamID int64, userIDs []int64) domain.Result[[]*domain.Membership] {
	const op = "remove team members"

	if len(userIDs) == 0 {
		return fail[[]*domain.Membership](s.operations, op, domain.NewValidationError("no users to remove"))
	}

	removed := make([]*domain.Membership, 0, len(userIDs))
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := lockActiveTeam(ctx, repos, teamID); err != nil {
			return err
		}

		for _, userID := range userIDs {
			m, err := repos.Memberships.Get(ctx, teamID, userID)
			if err != nil {
				return memberFailure(userID, err)
			}
			if m.IsLeader && !m.IsArchived {
				return domain.ErrSoleLeader
			}

			if err := repos.Memberships.Delete(ctx, teamID, userID); err != nil {
				return memberFailure(userID, err)
			}
			removed = append(removed, m)
		}
		return nil
	})
	if err != nil {
		return fail[[]*domain.Membership](s.operations, op, err)
	}

	return domain.OK(fmt.Sprintf("removed %d members from team %d", len(removed), teamID), removed)
}

// ReassignLeader передает лидерство от текущего лидера другому активному участнику.
// Снятие старого и назначение нового лидера происходят в одной транзакции.
func (s *TeamService) ReassignLeader(ctx context.Context, teamID, oldLeaderID, newLeaderID int64) domain.Result[*domain.LeaderChange] {
	const op = "reassign team leader"

	if oldLeaderID == newLeaderID {
		return fail[*domain.LeaderChange](s.operations, op,
			domain.NewValidationError("user %d is already the leader", newLeaderID))
	}

	var change *domain.LeaderChange
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if _, err := lockActiveTeam(ctx, repos, teamID); err != nil {
			return err
		}

		current, err := repos.Memberships.GetLeader(ctx, teamID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("user %d is not the leader of team %d", oldLeaderID, teamID)
		}
		if err != nil {
			return err
		}
		if current.UserID != oldLeaderID {
			return domain.NewValidationError("user %d is not the leader of team %d", oldLeaderID, teamID)
		}

		next, err := repos.Memberships.Get(ctx, teamID, newLeaderID)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && next.IsArchived) {
			return domain.NewValidationError("user %d is not an active member of team %d", newLeaderID, teamID)
		}
		if err != nil {
			return err
		}
		if _, err := activeUser(ctx, repos, newLeaderID); err != nil {
			return err
		}

		// снимаем старого лидера первым: частичный уникальный индекс допускает одного лидера
		if err := repos.Memberships.SetLeader(ctx, teamID, oldLeaderID, false); err != nil {
			return err
		}
		if err := repos.Memberships.SetLeader(ctx, teamID, newLeaderID, true); err != nil {
			return err
		}

		current.IsLeader = false
		next.IsLeader = true
		change = &domain.LeaderChange{TeamID: teamID, OldLeader: current, NewLeader: next}
		return nil
	})
	if err != nil {
		return fail[*domain.LeaderChange](s.operations, op, err)
	}

	s.log.WithFields(logrus.Fields{
		"team_id":    teamID,
		"old_leader": oldLeaderID,
		"new_leader": newLeaderID,
	}).Info("team leader reassigned")
	return domain.OK(fmt.Sprintf("user %d is now the leader of team %d", newLeaderID, teamID), change)
}

// GetMembers возвращает активных участников команды.
func (s *TeamService) GetMembers(ctx context.Context, teamID int64) domain.Result[[]*domain.Membership] {
	const op = "get team members"

	repos := s.tx.Repos()
	if _, err := repos.Teams.GetByID(ctx, teamID); err != nil {
		return fail[[]*domain.Membership](s.operations, op, err)
	}

	members, err := repos.Memberships.GetActiveByTeamID(ctx, teamID)
	if err != nil {
		return fail[[]*domain.Membership](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("team %d has %d members", teamID, len(members)), members)
}

func (s *TeamService) GetLeader(ctx context.Context, teamID int64) domain.Result[*domain.Membership] {
	const op = "get team leader"

	leader, err := s.tx.Repos().Memberships.GetLeader(ctx, teamID)
	if err != nil {
		return fail[*domain.Membership](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("user %d leads team %d", leader.UserID, teamID), leader)
}

// GetTeamsForUser возвращает команды, в которых пользователь состоит активно.
func (s *TeamService) GetTeamsForUser(ctx context.Context, userID int64) domain.Result[[]*domain.Team] {
	const op = "get teams for user"

	repos := s.tx.Repos()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return fail[[]*domain.Team](s.operations, op, err)
	}

	teams, err := repos.Teams.GetByUserID(ctx, userID)
	if err != nil {
		return fail[[]*domain.Team](s.operations, op, err)
	}
	return domain.OK(fmt.Sprintf("user %d is in %d teams", userID, len(teams)), teams)
}

func (s *TeamService) GetActiveByName(ctx context.Context, name string) domain.Result[*domain.Team] {
	const op = "get team by name"

	team, err := s.tx.Repos().Teams.GetActiveByName(ctx, name)
	if err != nil {
		return fail[*domain.Team](s.operations, op, err)
	}
	return domain.OK("team found", team)
}

// lockActiveTeam блокирует строку команды; все изменения состава идут через эту блокировку.
func lockActiveTeam(ctx context.Context, repos *repository.Repositories, teamID int64) (*domain.Team, error) {
	if err := repos.Teams.LockByID(ctx, teamID); err != nil {
		return nil, err
	}

	team, err := repos.Teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.IsArchived {
		return nil, domain.NewValidationError("team %d is archived", teamID)
	}
	return team, nil
}

func activeUser(ctx context.Context, repos *repository.Repositories, userID int64) (*domain.User, error) {
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsArchived {
		return nil, domain.NewValidationError("user %d is archived", userID)
	}
	return user, nil
}

// memberFailure сохраняет код исходной ошибки и добавляет в сообщение id пользователя.
func memberFailure(userID int64, err error) error {
	domainErr := domain.AsDomainError(err)
	return &domain.DomainError{
		Code:    domainErr.Code,
		Message: fmt.Sprintf("user %d: %s", userID, domainErr.Message),
		Cause:   domainErr.Cause,
	}
}
