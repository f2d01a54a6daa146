package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Password(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Apply(ctx context.Context) error
	Apps(ctx context.Context) error
	Update(ctx context.Context, id string) error
	Withdraw(ctx context.Context, id string) error
	Stats(ctx context.Context) error
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	Docs(ctx context.Context) error
	AddDoc(ctx context.Context) error
	Chat(ctx context.Context) error
	History(ctx context.Context) error
	Civics(ctx context.Context) error
}

// commands that need a logged-in user.
var sessionCommands = map[string]bool{
	"whoami": true, "profile": true, "password": true, "deleteaccount": true,
	"apply": true, "apps": true, "update": true, "withdraw": true, "stats": true,
	"docs": true, "adddoc": true, "chat": true, "history": true, "civics": true,
}

// runREPL starts a simple read-eval-print loop for the visadesk CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                  - show available commands
//	  - register | login      - create an account or authenticate
//	  - approve | reject <id> - administrative status change
//	  - exit | quit           - leave the program
//
//	Logged in, additionally:
//	  - whoami, profile, password, deleteaccount, logout
//	  - apply, apps, update <id>, withdraw <id>, stats
//	  - docs, adddoc, chat, history, civics
//
// Errors returned by handlers are printed with errorMessage.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("visadesk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if sessionCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, password, deleteaccount, apply, apps, update <id>, withdraw <id>, stats, approve <id>, reject <id>, docs, adddoc, chat, history, civics, logout, exit")
			} else {
				printlnFn("Available commands: register, login, approve <id>, reject <id>, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "password":
			err = a.Password(ctx)
		case "deleteaccount":
			err = a.DeleteAccount(ctx)

		case "apply":
			err = a.Apply(ctx)
		case "apps":
			err = a.Apps(ctx)
		case "stats":
			err = a.Stats(ctx)
		case "update", "withdraw", "approve", "reject":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "update":
				err = a.Update(ctx, args[0])
			case "withdraw":
				err = a.Withdraw(ctx, args[0])
			case "approve":
				err = a.SetStatus(ctx, args[0], models.StatusApproved)
			case "reject":
				err = a.SetStatus(ctx, args[0], models.StatusRejected)
			}

		case "docs":
			err = a.Docs(ctx)
		case "adddoc":
			err = a.AddDoc(ctx)
		case "chat":
			err = a.Chat(ctx)
		case "history":
			err = a.History(ctx)
		case "civics":
			err = a.Civics(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", errorMessage(err))
		}
	}
}

// errorMessage renders registry errors the way a Result would, so storage
// failures stay generic. Input errors are shown as is.
func errorMessage(err error) string {
	var e *common.Error
	if errors.As(err, &e) {
		return common.Done(err).Message
	}
	return err.Error()
}
