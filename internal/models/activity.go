package models

import (
	"time"
)

// Notification is a UI inbox item; Read is the only field mutated in place
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
	RelatedID string    `json:"relatedId,omitempty"`
}

// HiddenActivity records the dismissal of an activity-feed item. The id is
// the external activity id, not a domain entity of its own.
type HiddenActivity struct {
	ID       string    `json:"id"`
	HiddenAt time.Time `json:"hiddenAt"`
}

// UserProfile holds the single demo user's account settings
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfilePatch is a partial update to the user profile
type ProfilePatch struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
	Theme  *string `json:"theme"`
}

// Apply merges the patch into the profile
func (p *ProfilePatch) Apply(u *UserProfile) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
}
