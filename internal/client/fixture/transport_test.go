package fixture

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/dmitrijs2005/phishshield/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureClient(t *testing.T) (*client.APIClient, *Backend) {
	t.Helper()
	b := newTestBackend(t)
	return client.NewAPIClient(NewTransport(b, 0), client.NewMemoryTokenStore(), logging.Discard(), nil), b
}

func TestTransport_LoginThenProfile(t *testing.T) {
	ctx := context.Background()
	c, _ := newFixtureClient(t)

	login := c.Login(ctx, DemoEmail, DemoPassword)
	require.True(t, login.OK, login.Error)

	me := c.GetUserProfile(ctx)
	require.True(t, me.OK, me.Error)
	assert.Equal(t, login.Data.User.ID, me.Data.ID)
	assert.Equal(t, DemoPhone, me.Data.PhoneNumber)
}

func TestTransport_InvalidLogin(t *testing.T) {
	c, _ := newFixtureClient(t)

	res := c.Login(context.Background(), DemoEmail, "bad")
	require.False(t, res.OK)
	assert.Equal(t, "Invalid credentials", res.Error)
	assert.False(t, c.IsAuthenticated(context.Background()))
}

func TestTransport_ProfileRequiresToken(t *testing.T) {
	c, _ := newFixtureClient(t)

	res := c.GetUserProfile(context.Background())
	require.False(t, res.OK)
	assert.True(t, client.IsUnauthorized(res))

	dash := c.GetDashboardData(context.Background())
	assert.True(t, client.IsUnauthorized(dash))
}

func TestTransport_UpdateKeepsUntouchedFields(t *testing.T) {
	ctx := context.Background()
	c, _ := newFixtureClient(t)
	require.True(t, c.Login(ctx, DemoEmail, DemoPassword).OK)

	res := c.UpdateUserProfile(ctx, models.UserPatch{PhoneNumber: models.Ptr("+44 20 7946 0958")})
	require.True(t, res.OK, res.Error)
	assert.Equal(t, "+44 20 7946 0958", res.Data.PhoneNumber)
	assert.Equal(t, DemoName, res.Data.Name)
	assert.Equal(t, DemoEmail, res.Data.Email)
	assert.Equal(t, DemoCredits, res.Data.Credits)
}

func TestTransport_QuizRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newFixtureClient(t)
	require.True(t, c.Login(ctx, DemoEmail, DemoPassword).OK)

	qs := c.GetQuizQuestions(ctx, 0)
	require.True(t, qs.OK, qs.Error)
	require.Len(t, qs.Data, 5)
	assert.Equal(t, quizBank[0].Question, qs.Data[0].Question)

	answers := models.QuizAnswers{}
	for i, q := range qs.Data {
		answers[i] = q.CorrectAnswer()
	}
	res := c.SubmitQuizResults(ctx, answers)
	require.True(t, res.OK, res.Error)
	assert.Equal(t, 5, res.Data.CorrectAnswers)
	assert.Equal(t, 50, res.Data.CreditsEarned)
	assert.Equal(t, 100, res.Data.Percentage())

	me := c.GetUserProfile(ctx)
	require.True(t, me.OK)
	assert.Equal(t, DemoCredits+50, me.Data.Credits)
}

func TestTransport_DashboardAndChat(t *testing.T) {
	ctx := context.Background()
	c, _ := newFixtureClient(t)
	require.True(t, c.Login(ctx, DemoEmail, DemoPassword).OK)

	d := c.GetDashboardData(ctx)
	require.True(t, d.OK, d.Error)
	assert.Equal(t, 92, d.Data.ProtectedPercent())
	assert.Equal(t, models.RiskDangerous, d.Data.History[0].Status)

	reply := c.SendChatMessage(ctx, "Is arnazon.com safe?")
	require.True(t, reply.OK, reply.Error)
	assert.Contains(t, chatReplies, reply.Data.Message)
}

func TestTransport_UnknownEndpoint(t *testing.T) {
	tr := NewTransport(newTestBackend(t), 0)

	resp, err := tr.Do(context.Background(), &client.Request{Method: http.MethodDelete, Path: "/user/me"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, string(resp.Body))
}

func TestTransport_BadBody(t *testing.T) {
	tr := NewTransport(newTestBackend(t), 0)

	resp, err := tr.Do(context.Background(), &client.Request{Method: http.MethodPost, Path: "/auth/login", Body: []byte("{")})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransport_LatencyHonorsContext(t *testing.T) {
	tr := NewTransport(newTestBackend(t), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.Do(ctx, &client.Request{Method: http.MethodGet, Path: "/quiz"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken(""))
}
