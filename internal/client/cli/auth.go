package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
	"github.com/dmitrijs2005/cyberdefense/internal/client/services"
	"github.com/dmitrijs2005/cyberdefense/internal/client/validation"
	"github.com/dmitrijs2005/cyberdefense/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgAccountExists      = "An account with this email already exists. Please use a different email or sign in."
	msgInvalidCredentials = "Invalid email or password. Please check your credentials."
	msgRegisterFailed     = "Registration failed. Please try again."
	msgLoginFailed        = "Login failed. Please try again."
)

// fieldOrder is the order in which field errors are printed, matching the
// order of the form.
var fieldOrder = []string{
	validation.FieldFullName,
	validation.FieldEmail,
	validation.FieldPassword,
	validation.FieldConfirmPassword,
	validation.FieldRole,
	validation.FieldOrganization,
}

// Register collects the registration form and submits it. On success the
// view switches to login after the redirect delay.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "You are already signed in. Use logout first.")
		return nil
	}
	a.setView(services.ViewRegister)

	d, err := a.readRegisterDraft()
	if err != nil {
		return err
	}

	res, err := a.service.Register(ctx, d)
	if err != nil {
		a.report(err, msgRegisterFailed)
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	a.scheduleView(res.Delay, res.Next)
	return nil
}

func (a *App) readRegisterDraft() (models.RegisterDraft, error) {
	var d models.RegisterDraft
	var err error

	if d.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return d, err
	}
	if d.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return d, err
	}
	if d.Password, err = a.readSecret("Password"); err != nil {
		return d, err
	}
	if d.ConfirmPassword, err = a.readSecret("Confirm password"); err != nil {
		return d, err
	}

	a.printRoles()
	role, err := getSimpleText(a.reader, "Role (number or value)", a.out)
	if err != nil {
		return d, err
	}
	d.Role = parseRole(role)

	if d.Organization, err = getSimpleText(a.reader, "Organization", a.out); err != nil {
		return d, err
	}
	return d, nil
}

// Login collects the login form and submits it. On success the session is
// kept immediately and the view switches to the dashboard after the
// redirect delay.
func (a *App) Login(ctx context.Context) error {
	a.setView(services.ViewLogin)

	var (
		d   models.LoginDraft
		err error
	)
	if d.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if d.Password, err = a.readSecret("Password"); err != nil {
		return err
	}

	res, s, err := a.service.Login(ctx, d)
	if err != nil {
		a.report(err, msgLoginFailed)
		return err
	}

	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	fmt.Fprintln(a.out, res.Message)
	a.scheduleView(res.Delay, res.Next)
	return nil
}

// WhoAmI prints the persisted session.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.service.CurrentSession(ctx)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	case err != nil:
		fmt.Fprintln(a.out, "Could not read the current session.")
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>\n", s.FullName, s.Email)
	fmt.Fprintf(a.out, "  role:      %s\n", s.Role.Label())
	fmt.Fprintf(a.out, "  id:        %s\n", s.ID)
	fmt.Fprintf(a.out, "  signed in: %s\n", s.LoginTime.Local().Format(time.RFC1123))
	return nil
}

// Logout forgets the session and returns to the landing view.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	if err := a.service.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed. Please try again.")
		return err
	}

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()
	a.setView(services.ViewLanding)

	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Roles prints the selectable roles.
func (a *App) Roles(context.Context) error {
	a.printRoles()
	return nil
}

// Back returns to the landing view, or stays on the dashboard when signed
// in. A pending view switch is dropped either way.
func (a *App) Back(context.Context) error {
	if a.isLoggedIn() {
		a.setView(services.ViewDashboard)
		fmt.Fprintln(a.out, "Use logout to leave the dashboard.")
		return nil
	}
	a.setView(services.ViewLanding)
	return nil
}

func (a *App) printRoles() {
	for i, r := range models.Roles() {
		fmt.Fprintf(a.out, "  %d. %-18s %s\n", i+1, r, r.Label())
	}
}

func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// report prints the user-facing feedback for a failed workflow. Errors that
// are neither field errors nor domain rejections collapse into fallback.
func (a *App) report(err error, fallback string) {
	var fe validation.Errors
	switch {
	case errors.As(err, &fe):
		for _, f := range fieldOrder {
			if msg, ok := fe[f]; ok {
				fmt.Fprintf(a.out, "  %s: %s\n", f, msg)
			}
		}
	case errors.Is(err, common.ErrAccountExists):
		fmt.Fprintln(a.out, msgAccountExists)
	case errors.Is(err, common.ErrInvalidCredentials):
		fmt.Fprintln(a.out, msgInvalidCredentials)
	default:
		fmt.Fprintln(a.out, fallback)
	}
}
