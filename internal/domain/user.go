package domain

import "time"

type User struct {
	ID         int64      `json:"id"`
	ExternalID string     `json:"external_id" validate:"required,max=255"`
	Email      string     `json:"email" validate:"required,email"`
	Name       string     `json:"name" validate:"required,max=255"`
	ImageURL   string     `json:"image_url,omitempty" validate:"omitempty,url"`
	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UserPatch - изменяемые поля пользователя. nil означает "не менять".
type UserPatch struct {
	Email    *string `validate:"omitempty,email"`
	Name     *string `validate:"omitempty,min=1,max=255"`
	ImageURL *string `validate:"omitempty,url"`
}

func (p UserPatch) Diff(existing *User) Changeset[User] {
	var cs Changeset[User]
	cs = diffField(cs, "email", p.Email, existing.Email, func(u *User, v string) { u.Email = v })
	cs = diffField(cs, "name", p.Name, existing.Name, func(u *User, v string) { u.Name = v })
	cs = diffField(cs, "image_url", p.ImageURL, existing.ImageURL, func(u *User, v string) { u.ImageURL = v })
	return cs
}
