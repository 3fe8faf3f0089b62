package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/client/validate"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"golang.org/x/sync/singleflight"
)

// API is the part of the gateway client the store drives.
//
// Contract:
//   - Login / Signup: authenticate and persist the returned credential on success.
//   - Logout: forget the stored credential; no request is sent.
//   - GetUserProfile / UpdateUserProfile: read or patch the signed-in account.
//   - StoredToken: the current credential, "" when there is none.
//   - IsAuthenticated: whether a credential is stored.
//
// *client.APIClient implements API.
type API interface {
	Login(ctx context.Context, email, password string) client.Result[models.AuthPayload]
	Signup(ctx context.Context, req models.SignupRequest) client.Result[models.AuthPayload]
	Logout(ctx context.Context) error
	GetUserProfile(ctx context.Context) client.Result[models.User]
	UpdateUserProfile(ctx context.Context, patch models.UserPatch) client.Result[models.User]
	StoredToken(ctx context.Context) (string, error)
	IsAuthenticated(ctx context.Context) bool
}

const (
	msgSessionExpired = "Your session has expired. Please sign in again."
	msgSessionStorage = "Could not read the stored session"
	msgLogoutStorage  = "Signed out, but the stored credential could not be removed"
)

type subscription struct {
	id uint64
	fn func(State)
}

type Store struct {
	api      API
	notifier Notifier
	log      logging.Logger
	now      func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	state     State
	epoch     uint64
	pending   int
	listeners []subscription
	nextSub   uint64

	// snapshots not yet delivered, in transition order
	queue      []State
	delivering bool
}

// NewStore returns an Unauthenticated store. A nil notifier discards
// notifications.
func NewStore(api API, notifier Notifier, log logging.Logger) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Store{
		api:      api,
		notifier: notifier,
		log:      log.With("component", "session"),
		now:      time.Now,
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// User returns a copy of the signed-in user, nil when there is none.
func (s *Store) User() *models.User {
	return s.State().User
}

// IsAuthenticated reports whether a user is loaded and a credential is
// stored.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.State().User != nil && s.api.IsAuthenticated(ctx)
}

// Subscribe registers fn for state snapshots. Snapshots arrive in
// transition order, one at a time. fn may call back into the store; the
// snapshots such a call produces are delivered after fn returns. The
// returned function removes the subscription and may be called any number
// of times.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			kept := make([]subscription, 0, len(s.listeners))
			for _, l := range s.listeners {
				if l.id != id {
					kept = append(kept, l)
				}
			}
			s.listeners = kept
		})
	}
}

// transition mutates the state under the lock and queues the new snapshot.
// The first caller to find no delivery in progress drains the queue,
// invoking subscribers outside the lock; other callers leave their
// snapshot to it. Without concurrent or nested operations every snapshot
// is delivered before transition returns.
func (s *Store) transition(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	s.queue = append(s.queue, s.state.clone())
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for len(s.queue) > 0 {
		snap := s.queue[0]
		s.queue = s.queue[1:]
		listeners := s.listeners
		s.mu.Unlock()

		for _, l := range listeners {
			l.fn(snap.clone())
		}

		s.mu.Lock()
	}
	s.queue = nil
	s.delivering = false
	s.mu.Unlock()
}

// shared runs call once for all concurrent callers using the same key.
// call gets a context that keeps the first caller's values but not its
// cancellation, so callers that joined are not failed by it. Requests stay
// bounded by the transport timeout.
func shared[T any](s *Store, ctx context.Context, key string, call func(ctx context.Context) T) T {
	v, _, _ := s.group.Do(key, func() (any, error) {
		return call(context.WithoutCancel(ctx)), nil
	})
	return v.(T)
}

// begin marks a network operation as started and returns the epoch it
// belongs to.
func (s *Store) begin(status *Status) uint64 {
	var epoch uint64
	s.transition(func(st *State) {
		s.pending++
		st.Loading = true
		if status != nil {
			st.Status = *status
		}
		epoch = s.epoch
	})
	return epoch
}

// finish ends a network operation. fn runs only when no Logout happened
// since begin; the return value tells whether it ran.
func (s *Store) finish(epoch uint64, fn func(st *State)) (applied bool) {
	s.transition(func(st *State) {
		s.pending--
		st.Loading = s.pending > 0
		if s.epoch != epoch {
			return
		}
		applied = true
		if fn != nil {
			fn(st)
		}
	})
	return applied
}

func (s *Store) succeed(msg string) Outcome {
	s.notifier.Success(msg)
	return Outcome{OK: true, Message: msg}
}

func (s *Store) fail(msg string) Outcome {
	s.notifier.Error(msg)
	return Outcome{Message: msg}
}

func (s *Store) invalid(errs validate.Errors) Outcome {
	s.notifier.Error(errs.Summary())
	return Outcome{Message: errs.Summary(), Fields: errs}
}

func failureMessage(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// discardStale removes token from the credential slot unless something else
// has replaced it since.
func (s *Store) discardStale(ctx context.Context, token string) {
	current, err := s.api.StoredToken(ctx)
	if err != nil || current != token {
		return
	}
	if err := s.api.Logout(ctx); err != nil {
		s.log.Error(ctx, "failed to discard stale credential", "error", err)
	}
}

func setUser(st *State, u models.User) {
	st.Status = Authenticated
	st.User = &u
}

func clearUser(st *State) {
	st.Status = Unauthenticated
	st.User = nil
}

// Restore resumes a session from the stored credential. Without one the
// store stays Unauthenticated. A credential the server rejects, or a JWT
// that has already expired, is discarded.
func (s *Store) Restore(ctx context.Context) Outcome {
	if s.State().Status == Authenticated {
		return Outcome{OK: true}
	}

	token, err := s.api.StoredToken(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read stored credential", "error", err)
		return s.fail(msgSessionStorage)
	}
	if token == "" {
		return Outcome{Message: MsgNotSignedIn}
	}

	if client.TokenExpired(token, s.now()) {
		s.log.Info(ctx, "stored credential expired")
		if err := s.api.Logout(ctx); err != nil {
			s.log.Error(ctx, "failed to discard expired credential", "error", err)
		}
		return s.fail(msgSessionExpired)
	}

	restoring := Restoring
	epoch := s.begin(&restoring)

	res := shared(s, ctx, "restore", s.api.GetUserProfile)

	// a login that completed meanwhile takes precedence over the probe
	stillRestoring := func(st *State) bool { return st.Status == Restoring }

	if res.OK {
		if !s.finish(epoch, func(st *State) {
			if stillRestoring(st) {
				setUser(st, res.Data)
			}
		}) {
			return s.fail(MsgSessionChanged)
		}
		s.log.Info(ctx, "session restored", "user_id", res.Data.ID)
		return Outcome{OK: true, Message: MsgWelcomeBack}
	}

	s.log.Info(ctx, "stored credential rejected", "error", res.Error)
	if !s.finish(epoch, func(st *State) {
		if stillRestoring(st) {
			clearUser(st)
		}
	}) {
		return s.fail(MsgSessionChanged)
	}
	s.discardStale(ctx, token)
	return s.fail(msgSessionExpired)
}

// Login signs in. On failure the previous state is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) Outcome {
	email = strings.TrimSpace(email)
	if errs := validate.Login(email, password); errs.Any() {
		return s.invalid(errs)
	}

	epoch := s.begin(nil)
	res := shared(s, ctx, "login\x00"+email+"\x00"+password, func(ctx context.Context) client.Result[models.AuthPayload] {
		return s.api.Login(ctx, email, password)
	})
	return s.completeAuth(ctx, epoch, res, MsgWelcomeBack, MsgLoginFailed)
}

// Signup creates an account and signs in to it.
func (s *Store) Signup(ctx context.Context, req models.SignupRequest) Outcome {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if errs := validate.Signup(req); errs.Any() {
		return s.invalid(errs)
	}

	key, _ := json.Marshal(req)
	epoch := s.begin(nil)
	res := shared(s, ctx, "signup\x00"+string(key), func(ctx context.Context) client.Result[models.AuthPayload] {
		return s.api.Signup(ctx, req)
	})
	return s.completeAuth(ctx, epoch, res, MsgAccountCreated, MsgSignupFailed)
}

func (s *Store) completeAuth(ctx context.Context, epoch uint64, res client.Result[models.AuthPayload], okMsg, failMsg string) Outcome {
	if !res.OK {
		s.finish(epoch, nil)
		return s.fail(failureMessage(res.Error, failMsg))
	}

	if !s.finish(epoch, func(st *State) { setUser(st, res.Data.User) }) {
		s.discardStale(ctx, res.Data.Token)
		return s.fail(MsgSessionChanged)
	}

	s.log.Info(ctx, "signed in", "user_id", res.Data.User.ID)
	return s.succeed(okMsg)
}

// Logout ends the session. It always clears the local state and is safe to
// call when already signed out.
func (s *Store) Logout(ctx context.Context) Outcome {
	s.transition(func(st *State) {
		s.epoch++
		clearUser(st)
	})

	if err := s.api.Logout(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored credential", "error", err)
		return s.fail(msgLogoutStorage)
	}
	return s.succeed(MsgLoggedOut)
}

// UpdateUser patches the profile. On success the identity is replaced with
// the server's full record; on failure it is left untouched.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) Outcome {
	if s.State().User == nil {
		return s.fail(MsgNotSignedIn)
	}
	if patch.IsEmpty() {
		return s.fail(MsgNothingToSave)
	}
	if errs := validate.Profile(patch); errs.Any() {
		return s.invalid(errs)
	}

	key, _ := json.Marshal(patch)
	epoch := s.begin(nil)
	res := shared(s, ctx, "update\x00"+string(key), func(ctx context.Context) client.Result[models.User] {
		return s.api.UpdateUserProfile(ctx, patch)
	})

	if !res.OK {
		s.finish(epoch, nil)
		return s.fail(failureMessage(res.Error, MsgUpdateFailed))
	}
	if !s.finish(epoch, func(st *State) { setUser(st, res.Data) }) {
		return s.fail(MsgSessionChanged)
	}
	return s.succeed(MsgProfileUpdated)
}

// Refresh reloads the profile from the server, e.g. after credits changed.
func (s *Store) Refresh(ctx context.Context) Outcome {
	if s.State().User == nil {
		return s.fail(MsgNotSignedIn)
	}

	epoch := s.begin(nil)
	res := shared(s, ctx, "refresh", s.api.GetUserProfile)

	if !res.OK {
		s.finish(epoch, nil)
		return s.fail(failureMessage(res.Error, MsgUpdateFailed))
	}
	if !s.finish(epoch, func(st *State) { setUser(st, res.Data) }) {
		return s.fail(MsgSessionChanged)
	}
	return Outcome{OK: true, Message: MsgProfileLoaded}
}
