// Package models defines the records persisted by the account vault and the
// drafts the CLI collects before a workflow runs.
package models

import "time"

// Account is one registered user. JSON keys follow the web demo so that
// collections written by either side stay readable.
type Account struct {
	// ID is unique per account and ordered by creation time.
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Organization string `json:"organization"`

	// Password holds the credential as encoded by the configured hasher:
	// the verbatim password in plain mode, a PHC string otherwise.
	Password string `json:"password"`

	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// Session is the snapshot written under the current-user key on login.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

// NewSession derives a session snapshot from a.
func NewSession(a Account, loginTime time.Time) Session {
	return Session{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		LoginTime: loginTime,
	}
}
