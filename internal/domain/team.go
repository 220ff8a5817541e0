package domain

import "time"

type Team struct {
	ID         int64      `json:"id"`
	Name       string     `json:"team_name" validate:"required,max=255"`
	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TeamPatch struct {
	Name *string `validate:"omitempty,min=1,max=255"`
}

func (p TeamPatch) Diff(existing *Team) Changeset[Team] {
	var cs Changeset[Team]
	cs = diffField(cs, "team_name", p.Name, existing.Name, func(t *Team, v string) { t.Name = v })
	return cs
}

// Membership - связь пользователя с командой, несет флаг лидера.
type Membership struct {
	TeamID     int64      `json:"team_id"`
	UserID     int64      `json:"user_id"`
	IsLeader   bool       `json:"is_leader"`
	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TeamWithLeader возвращается из CreateTeam: команда и членство создателя.
type TeamWithLeader struct {
	Team   *Team       `json:"team"`
	Leader *Membership `json:"leader"`
}

// LeaderChange описывает результат передачи лидерства.
type LeaderChange struct {
	TeamID    int64       `json:"team_id"`
	OldLeader *Membership `json:"old_leader"`
	NewLeader *Membership `json:"new_leader"`
}
