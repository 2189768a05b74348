package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	Roles(ctx context.Context) error
	Back(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on a cancelled ctx, or when the user types "exit"
// or "quit".
//
//	Signed out:
//	  - help           - show available commands
//	  - register       - create an account
//	  - login          - sign in
//	  - roles          - list selectable roles
//	  - back           - return to the landing view
//	  - exit | quit    - leave the program
//
//	Signed in:
//	  - help           - show available commands
//	  - whoami         - show the current session
//	  - roles          - list selectable roles
//	  - logout         - sign out
//	  - exit | quit    - leave the program
//
// Errors returned by command handlers are ignored here; handlers print their
// own feedback.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("cd %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, roles, logout, help, exit")
			} else {
				printlnFn("Available commands: register, login, roles, back, help, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "roles":
			_ = a.Roles(ctx)

		case "back":
			_ = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
