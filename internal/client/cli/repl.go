package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

// printlnFn is a test seam for REPL chrome (prompt, help, bye).
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context, form SignupForm) error
	Login(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.UserPatch) error
	Avatar(ctx context.Context, path string) error
	Dashboard(ctx context.Context) error
	Quiz(ctx context.Context, count int) error
	Chat(ctx context.Context, message string) error
}

// runREPL starts a simple read–eval–print loop for the PhishShield CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Signed out:
//	  - help                 show available commands
//	  - signup | login       create an account / authenticate
//	  - quiz [n] | chat      take a quiz / talk to the assistant
//	  - exit | quit          leave the program
//
//	Signed in, additionally:
//	  - whoami | profile     show / edit the profile
//	  - avatar [path]        upload a profile picture
//	  - dashboard            protection summary
//	  - logout
//
// Errors returned by command handlers are not printed here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("phishshield %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, avatar, dashboard, quiz, chat, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, quiz, chat, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx, SignupForm{})

		case "login":
			_ = a.Login(ctx, argOr(args, 0, ""))

		case "logout":
			_ = a.Logout(ctx)

		case "whoami", "me":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.UpdateProfile(ctx, models.UserPatch{})

		case "avatar":
			_ = a.Avatar(ctx, argOr(args, 0, ""))

		case "dashboard", "d":
			_ = a.Dashboard(ctx)

		case "quiz":
			n, convErr := strconv.Atoi(argOr(args, 0, "0"))
			if convErr != nil {
				printlnFn("Usage: quiz [count]")
				continue
			}
			_ = a.Quiz(ctx, n)

		case "chat":
			_ = a.Chat(ctx, strings.Join(args, " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func argOr(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// Shell runs the interactive REPL until the user exits.
func (a *App) Shell(ctx context.Context) {
	printlnFn("Welcome to PhishShield CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}
