// Package cli provides the interactive CyberDefense account vault client.
//
// The REPL mirrors the views of the landing page: it starts on the landing
// view, collects the registration or login form field by field, prints field
// errors or the workflow outcome, and switches view after the configured
// redirect delay.
//
// Commands:
//   - register / login: fill in a form and submit it
//   - whoami / logout: inspect or forget the current session
//   - roles: list the selectable roles
//   - back: return to the landing view, dropping a pending transition
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
