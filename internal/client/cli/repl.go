package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophsession/internal/client/auth"
)

// isTerminal decides whether the prompt is printed. Tests replace it.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Status(ctx context.Context) error
	Login(ctx context.Context) error
	Callback(ctx context.Context, rawURL string) error
	Nickname(ctx context.Context, nickname string) error
	Cancel(ctx context.Context) error
	TestLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	NotePut(ctx context.Context, key, text string) error
	NoteGet(ctx context.Context, key string) error
	NoteList(ctx context.Context) error
	NoteDelete(ctx context.Context, key string) error
}

const (
	helpAnonymous = "Available commands: status, login, callback <url>, nickname <name>, cancel, testlogin, note put|get|list|del, exit"
	helpSignedIn  = "Available commands: status, logout, note put <key> [text] | get <key> | list | del <key>, exit"
	noteUsage     = "Usage: note put <key> [text] | note get <key> | note list | note del <key>"
)

// runREPL reads commands line by line from in and dispatches them to a. It
// returns on EOF or on "exit"/"quit".
//
// Failures of the sign-in flow have already been shown through the UI hooks,
// so only other errors are printed here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if isTerminal() {
			fmt.Fprintf(out, "gs %s> ", statusFn())
		}
		line, err := in.ReadString('\n')
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
				fmt.Fprintln(out, helpSignedIn)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}

		case "status":
			report(out, a.Status(ctx))

		case "login":
			report(out, a.Login(ctx))

		case "callback":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: callback <url>")
				continue
			}
			report(out, a.Callback(ctx, args[0]))

		case "nickname":
			report(out, a.Nickname(ctx, strings.Join(args, " ")))

		case "cancel":
			report(out, a.Cancel(ctx))

		case "testlogin":
			report(out, a.TestLogin(ctx))

		case "logout":
			report(out, a.Logout(ctx))

		case "note":
			runNote(ctx, a, args, out)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

func runNote(ctx context.Context, a execIface, args []string, out io.Writer) {
	if len(args) == 0 {
		fmt.Fprintln(out, noteUsage)
		return
	}
	switch {
	case args[0] == "put" && len(args) >= 2:
		report(out, a.NotePut(ctx, args[1], strings.Join(args[2:], " ")))
	case args[0] == "get" && len(args) == 2:
		report(out, a.NoteGet(ctx, args[1]))
	case args[0] == "list" && len(args) == 1:
		report(out, a.NoteList(ctx))
	case args[0] == "del" && len(args) == 2:
		report(out, a.NoteDelete(ctx, args[1]))
	default:
		fmt.Fprintln(out, noteUsage)
	}
}

func report(out io.Writer, err error) {
	if err == nil {
		return
	}
	var fe *auth.Error
	if errors.As(err, &fe) {
		return
	}
	fmt.Fprintln(out, "Error:", err)
}
