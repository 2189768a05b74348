package models

// RegisterDraft is the raw registration form as typed by the user.
// Nothing is trimmed or normalized yet.
type RegisterDraft struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	Organization    string
}

// LoginDraft is the raw login form.
type LoginDraft struct {
	Email    string
	Password string
}
