package cli

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
)

var errUsage = errors.New("wrong number of arguments")

type command struct {
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":    {"login", "sign in", (*App).login},
	"register": {"register", "create a customer account", (*App).register},
	"logout":   {"logout", "sign out", (*App).logout},
	"whoami":   {"whoami", "show the signed-in user", (*App).whoami},
	"go":       {"go <path>", "open a screen", (*App).goCmd},
	"where":    {"where", "show the current screen", (*App).where},
	"account":  {"account", "show the account balance", (*App).account},
	"ops":      {"ops", "list your operations", (*App).ops},
	"op":       {"op <id>", "show one operation", (*App).op},
	"newop":    {"newop", "submit a deposit, withdrawal or transfer", (*App).newOp},
	"upload":   {"upload <id> <file>", "attach a document to an operation", (*App).upload},
	"download": {"download <docId> <file>", "save a document to a file", (*App).download},
	"pending":  {"pending", "list operations awaiting review", (*App).pending},
	"review":   {"review <id>", "show an operation under review", (*App).review},
	"approve":  {"approve <id>", "approve an operation", (*App).approve},
	"reject":   {"reject <id>", "reject an operation", (*App).reject},
	"users":    {"users [role]", "list users", (*App).users},
	"adduser":  {"adduser", "create a user", (*App).addUser},
	"toggle":   {"toggle <id>", "enable or disable a user", (*App).toggle},
}

// runREPL reads one command per line from the app's input until EOF, exit
// or quit. Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a *App) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		a.printf("%s> ", a.prompt(ctx))

		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if err != nil {
				a.printf("\n")
				return nil
			}
			continue
		}

		name, args := fields[0], fields[1:]
		switch name {
		case "exit", "quit":
			return nil
		case "help":
			a.help()
		default:
			cmd, ok := commands[name]
			if !ok {
				a.printf("Unknown command %q, type 'help'\n", name)
				break
			}
			if cerr := cmd.run(a, ctx, args); cerr != nil {
				if errors.Is(cerr, errUsage) {
					a.printf("Usage: %s\n", cmd.usage)
				} else {
					a.report(cerr)
				}
			}
		}
		if err != nil {
			return nil
		}
	}
}

func (a *App) prompt(ctx context.Context) string {
	loc := a.router.Current().Location.Path
	if id := a.session.CurrentIdentity(); id != nil && a.session.IsAuthenticated(ctx) {
		return id.Email + " " + loc
	}
	return loc
}

func (a *App) help() {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := commands[n]
		a.printf("  %-26s %s\n", c.usage, c.help)
	}
	a.printf("  %-26s %s\n", "exit | quit", "leave")
}
