package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context, form SignupForm) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(ctx context.Context, email string) error {
	f.calls = append(f.calls, "login")
	f.args = append(f.args, email)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Avatar(ctx context.Context, path string) error {
	f.calls = append(f.calls, "avatar")
	f.args = append(f.args, path)
	return nil
}
func (f *fakeExec) Dashboard(ctx context.Context) error {
	f.calls = append(f.calls, "dashboard")
	return nil
}
func (f *fakeExec) Quiz(ctx context.Context, count int) error {
	f.calls = append(f.calls, "quiz")
	return nil
}
func (f *fakeExec) Chat(ctx context.Context, message string) error {
	f.calls = append(f.calls, "chat")
	f.args = append(f.args, message)
	return nil
}

func silenceREPL(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silenceREPL(t)

	input := strings.Join([]string{
		"help",
		"login user@phishshield.ai",
		"help",
		"whoami",
		"dashboard",
		"quiz 3",
		"chat is this link safe?",
		"avatar /tmp/me.png",
		"profile",
		"logout",
		"foobar",
		"exit",
		"whoami",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "whoami", "dashboard", "quiz", "chat", "avatar", "profile", "logout"}, exec.calls)
	assert.Equal(t, []string{"user@phishshield.ai", "is this link safe?", "/tmp/me.png"}, exec.args)
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	printed := silenceREPL(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("quiz many\nsignup")))

	assert.Equal(t, []string{"signup"}, exec.calls)
	assert.Contains(t, *printed, "Usage: quiz [count]")
}
