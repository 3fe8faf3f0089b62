package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

// fakeAPI is a scripted API. Results are preset per operation; gate, when
// set, blocks network calls until it is closed.
type fakeAPI struct {
	mu    sync.Mutex
	token string

	loginRes   client.Result[models.AuthPayload]
	signupRes  client.Result[models.AuthPayload]
	profileRes client.Result[models.User]
	updateRes  client.Result[models.User]
	logoutErr  error
	tokenErr   error

	gate    chan struct{}
	started chan struct{}

	loginCalls   atomic.Int32
	signupCalls  atomic.Int32
	profileCalls atomic.Int32
	updateCalls  atomic.Int32
	lastPatch    models.UserPatch
	lastSignup   models.SignupRequest
}

func (f *fakeAPI) wait() {
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeAPI) setToken(t string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = t
}

func (f *fakeAPI) Login(ctx context.Context, _, _ string) client.Result[models.AuthPayload] {
	f.loginCalls.Add(1)
	f.wait()
	if err := ctx.Err(); err != nil {
		return client.Fail[models.AuthPayload](err)
	}
	if f.loginRes.OK {
		f.setToken(f.loginRes.Data.Token)
	}
	return f.loginRes
}

func (f *fakeAPI) Signup(_ context.Context, req models.SignupRequest) client.Result[models.AuthPayload] {
	f.signupCalls.Add(1)
	f.mu.Lock()
	f.lastSignup = req
	f.mu.Unlock()
	f.wait()
	if f.signupRes.OK {
		f.setToken(f.signupRes.Data.Token)
	}
	return f.signupRes
}

func (f *fakeAPI) Logout(context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.setToken("")
	return nil
}

func (f *fakeAPI) GetUserProfile(context.Context) client.Result[models.User] {
	f.profileCalls.Add(1)
	f.wait()
	return f.profileRes
}

func (f *fakeAPI) UpdateUserProfile(_ context.Context, patch models.UserPatch) client.Result[models.User] {
	f.updateCalls.Add(1)
	f.mu.Lock()
	f.lastPatch = patch
	f.mu.Unlock()
	f.wait()
	return f.updateRes
}

func (f *fakeAPI) StoredToken(context.Context) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeAPI) IsAuthenticated(ctx context.Context) bool {
	t, err := f.StoredToken(ctx)
	return err == nil && t != ""
}

// recordingNotifier keeps every notification in order.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, "ok: "+msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, "error: "+msg)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
