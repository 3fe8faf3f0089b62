package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/fixture"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/client/validate"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var johnDoe = models.User{
	ID:        "1",
	Name:      "John Doe",
	Email:     "user@phishshield.ai",
	Credits:   125,
	CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
}

func authOK(token string, u models.User) client.Result[models.AuthPayload] {
	return client.Ok(models.AuthPayload{Token: token, User: u})
}

func unauthorized[T any](msg string) client.Result[T] {
	return client.Fail[T](&client.StatusError{StatusCode: http.StatusUnauthorized, Message: msg})
}

func newTestStore(api API) (*Store, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewStore(api, n, logging.Discard()), n
}

func newFixtureStore(t *testing.T, tokens client.TokenStore) *Store {
	t.Helper()
	backend, err := fixture.NewBackend(fixture.Options{Secret: []byte("k"), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	api := client.NewAPIClient(fixture.NewTransport(backend, 0), tokens, logging.Discard(), nil)
	return NewStore(api, nil, logging.Discard())
}

func TestLoginLogout_EndsUnauthenticatedWithoutToken(t *testing.T) {
	ctx := context.Background()
	tokens := client.NewMemoryTokenStore()
	s := newFixtureStore(t, tokens)

	for i := 0; i < 3; i++ {
		out := s.Login(ctx, fixture.DemoEmail, fixture.DemoPassword)
		require.True(t, out.OK, out.Message)
		require.True(t, s.IsAuthenticated(ctx))

		out = s.Logout(ctx)
		require.True(t, out.OK)

		st := s.State()
		assert.Equal(t, Unauthenticated, st.Status)
		assert.Nil(t, st.User)
		tok, _ := tokens.Token(ctx)
		assert.Empty(t, tok)
		assert.False(t, s.IsAuthenticated(ctx))
	}

	// logout when already signed out
	assert.True(t, s.Logout(ctx).OK)
}

func TestLogin_IdentityEqualsServerUser(t *testing.T) {
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, n := newTestStore(api)

	out := s.Login(context.Background(), "user@phishshield.ai", "password")
	require.True(t, out.OK)
	assert.Equal(t, MsgWelcomeBack, out.Message)

	st := s.State()
	assert.Equal(t, Authenticated, st.Status)
	require.NotNil(t, st.User)
	assert.Equal(t, johnDoe, *st.User)
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"ok: " + MsgWelcomeBack}, n.all())
}

func TestLogin_InvalidCredentialsKeepPriorState(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, n := newTestStore(api)
	require.True(t, s.Login(ctx, "user@phishshield.ai", "password").OK)
	before := s.State()

	api.loginRes = unauthorized[models.AuthPayload]("Invalid credentials")
	for i := 0; i < 2; i++ {
		out := s.Login(ctx, "other@example.com", "wrong")
		require.False(t, out.OK)
		assert.Equal(t, "Invalid credentials", out.Message)
		assert.Equal(t, before, s.State())
	}

	tok, _ := api.StoredToken(ctx)
	assert.Equal(t, "t1", tok)
	assert.Equal(t, "error: Invalid credentials", n.all()[len(n.all())-1])
}

func TestLogin_InvalidCredentialsFromScratch(t *testing.T) {
	s := newFixtureStore(t, client.NewMemoryTokenStore())

	out := s.Login(context.Background(), fixture.DemoEmail, "nope")
	require.False(t, out.OK)
	assert.Equal(t, "Invalid credentials", out.Message)
	assert.Equal(t, State{Status: Unauthenticated}, s.State())
}

func TestLogin_ValidationNeverReachesNetwork(t *testing.T) {
	api := &fakeAPI{}
	s, n := newTestStore(api)

	out := s.Login(context.Background(), "not-an-email", "")
	require.False(t, out.OK)
	assert.Equal(t, validate.MsgEmailInvalid, out.Fields.Get(validate.FieldEmail))
	assert.Equal(t, validate.MsgPasswordRequired, out.Fields.Get(validate.FieldPassword))
	assert.Equal(t, validate.MsgEmailInvalid, out.Message)
	assert.Zero(t, api.loginCalls.Load())
	assert.Equal(t, []string{"error: " + validate.MsgEmailInvalid}, n.all())
}

func TestLogin_EmptyServerMessageFallsBack(t *testing.T) {
	api := &fakeAPI{loginRes: client.Result[models.AuthPayload]{}}
	s, _ := newTestStore(api)

	out := s.Login(context.Background(), "user@phishshield.ai", "pw")
	assert.Equal(t, MsgLoginFailed, out.Message)
}

func TestSignup(t *testing.T) {
	newUser := models.User{ID: "2", Name: "Jane Roe", Email: "jane@example.com", PhoneNumber: "+15551234567"}
	api := &fakeAPI{signupRes: authOK("t2", newUser)}
	s, _ := newTestStore(api)

	out := s.Signup(context.Background(), models.SignupRequest{
		Name: " Jane Roe ", Email: "jane@example.com", Password: "Secret123", PhoneNumber: "+15551234567",
	})
	require.True(t, out.OK, out.Message)
	assert.Equal(t, MsgAccountCreated, out.Message)
	assert.Equal(t, "Jane Roe", api.lastSignup.Name)
	assert.Equal(t, newUser, *s.User())
}

func TestSignup_Validation(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newTestStore(api)

	out := s.Signup(context.Background(), models.SignupRequest{Name: "J", Email: "jane@example.com", Password: "weak", PhoneNumber: "+15551234567"})
	require.False(t, out.OK)
	assert.Equal(t, validate.MsgNameTooShort, out.Fields.Get(validate.FieldName))
	assert.Equal(t, validate.MsgPasswordTooShort, out.Fields.Get(validate.FieldPassword))
	assert.Zero(t, api.signupCalls.Load())
}

func TestUpdateUser_PartialPatchKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	s := newFixtureStore(t, client.NewMemoryTokenStore())
	require.True(t, s.Login(ctx, fixture.DemoEmail, fixture.DemoPassword).OK)
	before := *s.User()

	out := s.UpdateUser(ctx, models.UserPatch{Name: models.Ptr("Johnny Doe")})
	require.True(t, out.OK, out.Message)
	assert.Equal(t, MsgProfileUpdated, out.Message)

	after := *s.User()
	assert.Equal(t, "Johnny Doe", after.Name)
	after.Name = before.Name
	assert.Equal(t, before, after)
}

// stubServer answers the handful of endpoints the credits scenario needs and
// merges PUT bodies into its single user.
func stubServer(t *testing.T) client.Transport {
	t.Helper()
	var mu sync.Mutex
	user := models.User{ID: "1", Name: "Good", Email: "good@x.com", Credits: 10,
		CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}

	return client.TransportFunc(func(_ context.Context, req *client.Request) (*client.Response, error) {
		mu.Lock()
		defer mu.Unlock()
		var body any
		switch req.Method + " " + req.Path {
		case "POST /auth/login":
			body = models.AuthPayload{Token: "t1", User: user}
		case "PUT /user/me":
			var patch models.UserPatch
			require.NoError(t, json.Unmarshal(req.Body, &patch))
			user = patch.Apply(user)
			body = user
		default:
			return &client.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"Endpoint not found"}`)}, nil
		}
		b, err := json.Marshal(body)
		require.NoError(t, err)
		return &client.Response{StatusCode: http.StatusOK, Body: b}, nil
	})
}

func TestScenario_CreditsTenToFifteen(t *testing.T) {
	ctx := context.Background()
	api := client.NewAPIClient(stubServer(t), client.NewMemoryTokenStore(), logging.Discard(), nil)
	s := NewStore(api, nil, logging.Discard())

	require.True(t, s.Login(ctx, "good@x.com", "pw").OK)
	before := *s.User()
	assert.Equal(t, 10, before.Credits)

	out := s.UpdateUser(ctx, models.UserPatch{Credits: models.Ptr(15)})
	require.True(t, out.OK, out.Message)

	after := *s.User()
	assert.Equal(t, 15, after.Credits)
	after.Credits = before.Credits
	assert.Equal(t, before, after, "no other field changed")
}

func TestUpdateUser_FailureKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, _ := newTestStore(api)
	require.True(t, s.Login(ctx, "user@phishshield.ai", "password").OK)

	api.updateRes = client.Fail[models.User](client.ErrUnavailable)
	out := s.UpdateUser(ctx, models.UserPatch{Name: models.Ptr("New Name")})
	require.False(t, out.OK)
	assert.Equal(t, client.MsgNetworkError, out.Message)
	assert.Equal(t, johnDoe, *s.User())
}

func TestUpdateUser_Guards(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, _ := newTestStore(api)

	assert.Equal(t, MsgNotSignedIn, s.UpdateUser(ctx, models.UserPatch{Name: models.Ptr("x")}).Message)

	require.True(t, s.Login(ctx, "user@phishshield.ai", "password").OK)
	assert.Equal(t, MsgNothingToSave, s.UpdateUser(ctx, models.UserPatch{}).Message)

	out := s.UpdateUser(ctx, models.UserPatch{PhoneNumber: models.Ptr("123")})
	assert.Equal(t, validate.MsgPhoneTooShort, out.Fields.Get(validate.FieldPhoneNumber))
	assert.Zero(t, api.updateCalls.Load())
}

func TestRestore_UnknownTokenEndsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	tokens := client.NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken(ctx, "token-the-server-forgot"))
	s := newFixtureStore(t, tokens)

	var seen []Status
	s.Subscribe(func(st State) { seen = append(seen, st.Status) })

	out := s.Restore(ctx)
	require.False(t, out.OK)

	assert.Equal(t, Unauthenticated, s.State().Status)
	assert.Nil(t, s.User())
	tok, _ := tokens.Token(ctx)
	assert.Empty(t, tok)
	assert.Equal(t, []Status{Restoring, Unauthenticated}, seen)
}

func TestRestore_ValidToken(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{token: "t1", profileRes: client.Ok(johnDoe)}
	s, n := newTestStore(api)

	out := s.Restore(ctx)
	require.True(t, out.OK)
	assert.Equal(t, Authenticated, s.State().Status)
	assert.Equal(t, johnDoe, *s.User())
	assert.Empty(t, n.all(), "successful restore is silent")

	// already authenticated: no second probe
	require.True(t, s.Restore(ctx).OK)
	assert.Equal(t, int32(1), api.profileCalls.Load())
}

func TestRestore_NoToken(t *testing.T) {
	api := &fakeAPI{}
	s, n := newTestStore(api)

	out := s.Restore(context.Background())
	assert.False(t, out.OK)
	assert.Equal(t, Unauthenticated, s.State().Status)
	assert.Zero(t, api.profileCalls.Load())
	assert.Empty(t, n.all())
}

func TestRestore_ExpiredJWTSkipsNetwork(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	api := &fakeAPI{token: expired, profileRes: client.Ok(johnDoe)}
	s, _ := newTestStore(api)

	out := s.Restore(context.Background())
	require.False(t, out.OK)
	assert.Zero(t, api.profileCalls.Load())
	tok, _ := api.StoredToken(context.Background())
	assert.Empty(t, tok)
}

func TestRestore_StorageFailure(t *testing.T) {
	api := &fakeAPI{tokenErr: errors.New("disk")}
	s, n := newTestStore(api)

	out := s.Restore(context.Background())
	require.False(t, out.OK)
	assert.Equal(t, []string{"error: " + msgSessionStorage}, n.all())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, _ := newTestStore(api)

	assert.Equal(t, MsgNotSignedIn, s.Refresh(ctx).Message)

	require.True(t, s.Login(ctx, "user@phishshield.ai", "password").OK)
	richer := johnDoe
	richer.Credits = 175
	api.profileRes = client.Ok(richer)

	require.True(t, s.Refresh(ctx).OK)
	assert.Equal(t, 175, s.User().Credits)
}

func TestLogout_StorageFailureStillClearsIdentity(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, _ := newTestStore(api)
	require.True(t, s.Login(ctx, "user@phishshield.ai", "password").OK)

	api.logoutErr = errors.New("read-only")
	out := s.Logout(ctx)
	assert.False(t, out.OK)
	assert.Nil(t, s.User())
	assert.Equal(t, Unauthenticated, s.State().Status)
}

func TestState_IsACopy(t *testing.T) {
	api := &fakeAPI{loginRes: authOK("t1", johnDoe)}
	s, _ := newTestStore(api)
	require.True(t, s.Login(context.Background(), "user@phishshield.ai", "password").OK)

	st := s.State()
	st.User.Name = "Mallory"
	assert.Equal(t, "John Doe", s.User().Name)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "restoring", Restoring.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unknown", Status(42).String())
}
