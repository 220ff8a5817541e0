package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/repository"
)

// ArchiveService выполняет мягкое удаление пользователей и команд.
// Повторная архивация - успешный no-op, archived_at не меняется.
type ArchiveService struct {
	operations
	now func() time.Time
}

func NewArchiveService(tx repository.TxManager, log logrus.FieldLogger) *ArchiveService {
	return &ArchiveService{
		operations: operations{tx: tx, log: log},
		now:        time.Now,
	}
}

func (s *ArchiveService) ArchiveUser(ctx context.Context, id int64) domain.Result[*domain.User] {
	const op = "archive user"

	var (
		user    *domain.User
		already bool
	)
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if err := repos.Users.LockByID(ctx, id); err != nil {
			return err
		}

		var err error
		user, err = repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.IsArchived {
			already = true
			return nil
		}

		at := domain.StoredTime(s.now())
		if err := repos.Users.MarkArchived(ctx, id, at); err != nil {
			return err
		}
		user.IsArchived = true
		user.ArchivedAt = &at
		user.UpdatedAt = at
		return nil
	})
	if err != nil {
		return fail[*domain.User](s.operations, op, err)
	}

	if already {
		return domain.OK(fmt.Sprintf("user %d is already archived", id), user)
	}
	return domain.OK(fmt.Sprintf("user %d archived", id), user)
}

// ArchiveTeam архивирует команду и все ее активные членства в одной транзакции.
func (s *ArchiveService) ArchiveTeam(ctx context.Context, id int64) domain.Result[*domain.Team] {
	team, _, result := s.archiveTeam(ctx, id)
	if !result.Success {
		return failedAs[*domain.Team](result)
	}
	return domain.OK(result.Message, team)
}

func (s *ArchiveService) archiveTeam(ctx context.Context, id int64) (*domain.Team, int, domain.Result[struct{}]) {
	const op = "archive team"

	var (
		team     *domain.Team
		already  bool
		cascaded int
	)
	err := s.inTx(ctx, op, func(repos *repository.Repositories) error {
		if err := repos.Teams.LockByID(ctx, id); err != nil {
			return err
		}

		var err error
		team, err = repos.Teams.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if team.IsArchived {
			already = true
			return nil
		}

		at := domain.StoredTime(s.now())
		if err := repos.Teams.MarkArchived(ctx, id, at); err != nil {
			return err
		}

		members, err := repos.Memberships.GetActiveByTeamID(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := repos.Memberships.Archive(ctx, id, m.UserID, at); err != nil {
				return err
			}
			cascaded++
		}

		team.IsArchived = true
		team.ArchivedAt = &at
		team.UpdatedAt = at
		return nil
	})
	if err != nil {
		return nil, 0, fail[struct{}](s.operations, op, err)
	}

	if already {
		return team, 0, domain.OK(fmt.Sprintf("team %d is already archived", id), struct{}{})
	}

	s.log.WithFields(logrus.Fields{"team_id": id, "memberships": cascaded}).Info("team archived")
	return team, cascaded, domain.OK(fmt.Sprintf("team %d archived with %d memberships", id, cascaded), struct{}{})
}

// Archive - общая точка входа по виду сущности.
func (s *ArchiveService) Archive(ctx context.Context, kind domain.Kind, id int64) domain.Result[domain.Archival] {
	switch kind {
	case domain.KindUser:
		res := s.ArchiveUser(ctx, id)
		if !res.Success {
			return failedAs[domain.Archival](res)
		}
		return domain.OK(res.Message, domain.Archival{
			Kind:       kind.String(),
			ID:         id,
			ArchivedAt: valueOf(res.Data.ArchivedAt),
		})
	case domain.KindTeam:
		team, cascaded, res := s.archiveTeam(ctx, id)
		if !res.Success {
			return failedAs[domain.Archival](res)
		}
		return domain.OK(res.Message, domain.Archival{
			Kind:       kind.String(),
			ID:         id,
			ArchivedAt: valueOf(team.ArchivedAt),
			Cascaded:   cascaded,
		})
	default:
		return fail[domain.Archival](s.operations, "archive "+kind.String(),
			domain.NewValidationError("%s cannot be archived", kind))
	}
}
