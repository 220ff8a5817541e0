package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jrconcha-strat/taskboard/internal/domain"
)

const membershipColumns = "team_id, user_id, is_leader, is_archived, archived_at, created_at, updated_at"

type membershipRepository struct {
	executor DBExecutor
}

func newMembershipRepository(executor DBExecutor) *membershipRepository {
	return &membershipRepository{executor: executor}
}

func membershipResource(teamID, userID int64) string {
	return fmt.Sprintf("membership of user %d in team %d", userID, teamID)
}

func scanMembership(row scanner) (*domain.Membership, error) {
	m := &domain.Membership{}
	var archivedAt sql.NullTime
	err := row.Scan(
		&m.TeamID,
		&m.UserID,
		&m.IsLeader,
		&m.IsArchived,
		&archivedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.ArchivedAt = nullTimePtr(archivedAt)
	return m, nil
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO team_members (team_id, user_id, is_leader, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING created_at, updated_at
	`

	now := dbNow()
	err := r.executor.QueryRowContext(ctx, query, m.TeamID, m.UserID, m.IsLeader, now).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewWriteVerificationError("insert into team_members", 0)
		}
		return classify(err, membershipResource(m.TeamID, m.UserID))
	}

	m.IsArchived = false
	m.ArchivedAt = nil
	return nil
}

func (r *membershipRepository) Get(ctx context.Context, teamID, userID int64) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM team_members WHERE team_id = $1 AND user_id = $2`

	m, err := scanMembership(r.executor.QueryRowContext(ctx, query, teamID, userID))
	if err != nil {
		return nil, classify(err, membershipResource(teamID, userID))
	}
	return m, nil
}

func (r *membershipRepository) GetActiveByTeamID(ctx context.Context, teamID int64) ([]*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM team_members WHERE team_id = $1 AND is_archived = FALSE ORDER BY created_at, user_id`
	return r.queryMany(ctx, query, teamID)
}

func (r *membershipRepository) GetLeader(ctx context.Context, teamID int64) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM team_members WHERE team_id = $1 AND is_leader = TRUE AND is_archived = FALSE`

	m, err := scanMembership(r.executor.QueryRowContext(ctx, query, teamID))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("leader of team %d", teamID))
	}
	return m, nil
}

func (r *membershipRepository) SetLeader(ctx context.Context, teamID, userID int64, isLeader bool) error {
	query := `
		UPDATE team_members
		SET is_leader = $3, updated_at = $4
		WHERE team_id = $1 AND user_id = $2 AND is_archived = FALSE
	`

	result, err := r.executor.ExecContext(ctx, query, teamID, userID, isLeader, dbNow())
	if err != nil {
		return classify(err, membershipResource(teamID, userID))
	}
	return verifyOne(result, "update team_members leader flag")
}

func (r *membershipRepository) Archive(ctx context.Context, teamID, userID int64, at time.Time) error {
	query := `
		UPDATE team_members
		SET is_archived = TRUE, archived_at = $3, updated_at = $3
		WHERE team_id = $1 AND user_id = $2 AND is_archived = FALSE
	`

	result, err := r.executor.ExecContext(ctx, query, teamID, userID, at)
	if err != nil {
		return classify(err, membershipResource(teamID, userID))
	}
	return verifyOne(result, "archive team_members row")
}

func (r *membershipRepository) Delete(ctx context.Context, teamID, userID int64) error {
	result, err := r.executor.ExecContext(
		ctx,
		"DELETE FROM team_members WHERE team_id = $1 AND user_id = $2",
		teamID,
		userID,
	)
	if err != nil {
		return classify(err, membershipResource(teamID, userID))
	}
	return verifyOne(result, "delete from team_members")
}

func (r *membershipRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Membership, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]*domain.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}
