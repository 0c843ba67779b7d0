package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/bizcards/internal/client/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls    []string
	reported []error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakeExec) role() policy.Role {
	if f.loggedIn {
		return policy.RoleUser
	}
	return policy.RoleGuest
}

func (f *fakeExec) report(_ context.Context, err error) { f.reported = append(f.reported, err) }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Profile(context.Context) error       { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error   { return f.record("editprofile") }
func (f *fakeExec) Business(context.Context) error      { return f.record("business") }
func (f *fakeExec) DeleteAccount(context.Context) error { return f.record("deleteaccount") }
func (f *fakeExec) Status(context.Context) error        { return f.record("status") }
func (f *fakeExec) Reset(context.Context) error         { return f.record("reset") }
func (f *fakeExec) ToggleTheme(context.Context) error   { return f.record("theme") }
func (f *fakeExec) List(_ context.Context, query string, page int) error {
	return f.record(fmt.Sprintf("list %q %d", query, page))
}
func (f *fakeExec) Page(_ context.Context, page int) error {
	return f.record(fmt.Sprintf("page %d", page))
}
func (f *fakeExec) Show(_ context.Context, id string) error { return f.record("show " + id) }
func (f *fakeExec) MyCards(context.Context) error           { return f.record("mycards") }
func (f *fakeExec) Favorites(context.Context) error         { return f.record("favorites") }
func (f *fakeExec) Like(_ context.Context, id string) error { return f.record("like " + id) }
func (f *fakeExec) CreateCard(context.Context) error        { return f.record("create") }
func (f *fakeExec) EditCard(_ context.Context, id string) error {
	return f.record("edit " + id)
}
func (f *fakeExec) DeleteCard(_ context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Users(_ context.Context, query string) error {
	return f.record(fmt.Sprintf("users %q", query))
}
func (f *fakeExec) UserType(_ context.Context, id string) error {
	return f.record("usertype " + id)
}
func (f *fakeExec) DeleteUser(_ context.Context, id string) error {
	return f.record("deleteuser " + id)
}

// silencePrint captures REPL output instead of writing to stdout.
func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origLn, orig := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origLn, orig })
	return &lines
}

func repl(input ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(input, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, repl(
		"login",
		"list",
		"list 3",
		"search wood fired",
		"page 2",
		"show c1",
		"like c1",
		"mycards",
		"favorites",
		"create",
		"edit c1",
		"delete c1",
		"profile",
		"editprofile",
		"business",
		"users",
		"users dana levi",
		"usertype u1",
		"deleteuser u1",
		"theme",
		"whoami",
		"reset",
		"deleteaccount",
		"logout",
		"exit",
		"login",
	))

	assert.Equal(t, []string{
		"login",
		`list "" 1`,
		`list "" 3`,
		`list "wood fired" 1`,
		"page 2",
		"show c1",
		"like c1",
		"mycards",
		"favorites",
		"create",
		"edit c1",
		"delete c1",
		"profile",
		"editprofile",
		"business",
		`users ""`,
		`users "dana levi"`,
		"usertype u1",
		"deleteuser u1",
		"theme",
		"status",
		"reset",
		"deleteaccount",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	lines := silencePrint(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, repl(
		"show",
		"like a b",
		"list x",
		"list 0",
		"page",
		"search",
		"foobar",
		"quit",
	))

	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{
		"Usage: show <id>",
		"Usage: like <id>",
		"Usage: list [page]",
		"Usage: list [page]",
		"Usage: page <n>",
		"Usage: search <query>",
		"Unknown command: foobar",
		"Bye!",
	}, *lines)
}

func TestRunREPL_ReportsErrorsAndKeepsGoing(t *testing.T) {
	silencePrint(t)

	boom := errors.New("boom")
	exec := &fakeExec{failWith: boom}
	runREPL(context.Background(), exec, func() string { return "" }, repl("mycards", "show x", "exit"))

	assert.Equal(t, []string{"mycards", "show x"}, exec.calls)
	assert.Equal(t, []error{boom, boom}, exec.reported)
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, repl("status"))
	assert.Equal(t, []string{"status"}, exec.calls, "last line without newline still runs")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, repl("status", "status"))
	assert.Empty(t, exec.calls)
}

func TestRunREPL_HelpDependsOnRole(t *testing.T) {
	lines := silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, repl("help", "login", "help", "exit"))

	require.Len(t, *lines, 3)
	assert.Equal(t, helpFor(policy.RoleGuest), (*lines)[0])
	assert.Equal(t, helpFor(policy.RoleUser), (*lines)[1])
}

func TestHelpFor(t *testing.T) {
	guest := helpFor(policy.RoleGuest)
	assert.Contains(t, guest, "login")
	assert.NotContains(t, guest, "logout")
	assert.NotContains(t, guest, "create")

	user := helpFor(policy.RoleUser)
	assert.Contains(t, user, "favorites")
	assert.NotContains(t, user, "create")
	assert.NotContains(t, user, "register")

	business := helpFor(policy.RoleBusiness)
	assert.Contains(t, business, "create")
	assert.NotContains(t, business, "usertype")

	admin := helpFor(policy.RoleAdmin)
	assert.Contains(t, admin, "usertype <id>")
	assert.Contains(t, admin, "mycards")
}

func TestPageArg(t *testing.T) {
	tests := []struct {
		args []string
		want int
		ok   bool
	}{
		{nil, 1, true},
		{[]string{"4"}, 4, true},
		{[]string{"0"}, 0, false},
		{[]string{"-1"}, 0, false},
		{[]string{"x"}, 0, false},
		{[]string{"1", "2"}, 0, false},
	}
	for _, tt := range tests {
		got, ok := pageArg(tt.args)
		assert.Equal(t, tt.want, got, tt.args)
		assert.Equal(t, tt.ok, ok, tt.args)
	}
}
