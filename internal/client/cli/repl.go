package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bizcards/internal/client/policy"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	role() policy.Role
	report(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Business(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Status(ctx context.Context) error
	Reset(ctx context.Context) error
	ToggleTheme(ctx context.Context) error

	List(ctx context.Context, query string, page int) error
	Page(ctx context.Context, page int) error
	Show(ctx context.Context, id string) error
	MyCards(ctx context.Context) error
	Favorites(ctx context.Context) error
	Like(ctx context.Context, id string) error
	CreateCard(ctx context.Context) error
	EditCard(ctx context.Context, id string) error
	DeleteCard(ctx context.Context, id string) error

	Users(ctx context.Context, query string) error
	UserType(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
}

// idCommands take exactly one card or user id.
var idCommands = map[string]func(execIface, context.Context, string) error{
	"show":       execIface.Show,
	"like":       execIface.Like,
	"edit":       execIface.EditCard,
	"delete":     execIface.DeleteCard,
	"usertype":   execIface.UserType,
	"deleteuser": execIface.DeleteUser,
}

// plainCommands take no arguments.
var plainCommands = map[string]func(execIface, context.Context) error{
	"register":      execIface.Register,
	"login":         execIface.Login,
	"logout":        execIface.Logout,
	"profile":       execIface.Profile,
	"editprofile":   execIface.EditProfile,
	"business":      execIface.Business,
	"deleteaccount": execIface.DeleteAccount,
	"status":        execIface.Status,
	"whoami":        execIface.Status,
	"reset":         execIface.Reset,
	"theme":         execIface.ToggleTheme,
	"mycards":       execIface.MyCards,
	"favorites":     execIface.Favorites,
	"create":        execIface.CreateCard,
}

// helpFor lists the commands that make sense for role. Commands outside the
// list still run; the services reject what the role may not do.
func helpFor(role policy.Role) string {
	cmds := []string{"list [page]", "search <query>", "page <n>", "show <id>"}

	if role == policy.RoleGuest {
		cmds = append(cmds, "register", "login")
	} else {
		cmds = append(cmds, "like <id>", "favorites", "profile", "editprofile", "business", "deleteaccount")
	}
	if role == policy.RoleBusiness || role == policy.RoleAdmin {
		cmds = append(cmds, "mycards", "create", "edit <id>", "delete <id>")
	}
	if role == policy.RoleAdmin {
		cmds = append(cmds, "users [query]", "usertype <id>", "deleteuser <id>")
	}
	if role != policy.RoleGuest {
		cmds = append(cmds, "logout")
	}
	cmds = append(cmds, "theme", "status", "reset", "help", "exit")

	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts a simple read–eval–print loop for the bizcards CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by handlers are passed to
// a.report, which turns them into notifications, so no command failure ends
// the loop. The loop exits on EOF or when the user types "exit" or "quit".
//
// The prompt shows whatever statusFn returns.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	run := func(err error) {
		if err != nil {
			a.report(ctx, err)
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}

		printFn(statusFn() + "> ")
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if fn, ok := plainCommands[cmd]; ok {
			run(fn(a, ctx))
			continue
		}
		if fn, ok := idCommands[cmd]; ok {
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			run(fn(a, ctx, args[0]))
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpFor(a.role()))

		case "l", "list":
			page, ok := pageArg(args)
			if !ok {
				printlnFn("Usage: list [page]")
				continue
			}
			run(a.List(ctx, "", page))

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <query>")
				continue
			}
			run(a.List(ctx, strings.Join(args, " "), 1))

		case "page", "p":
			page, ok := pageArg(args)
			if !ok || len(args) == 0 {
				printlnFn("Usage: page <n>")
				continue
			}
			run(a.Page(ctx, page))

		case "users":
			run(a.Users(ctx, strings.Join(args, " ")))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// pageArg parses an optional page number; no argument means page 1.
func pageArg(args []string) (int, bool) {
	switch len(args) {
	case 0:
		return 1, true
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
