package quiz

import (
	"testing"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestions() models.QuizSet {
	return models.QuizSet{
		{ID: "q1", Question: "Which link is safe?", Options: []string{"A", "B", "C"}, Answer: "B", Explanation: "B uses the real domain."},
		{ID: "q2", Question: "Share your OTP?", Options: []string{"A", "B"}, Answer: "B", Explanation: "Never share codes."},
	}
}

func TestFlow_FullRun(t *testing.T) {
	f := NewFlow(twoQuestions())
	assert.Equal(t, 50, f.Progress())

	ok, err := f.Select(1)
	require.NoError(t, err)
	require.True(t, ok)

	correct, err := f.SubmitAnswer()
	require.NoError(t, err)
	assert.True(t, correct)
	assert.True(t, f.ShowingExplanation())

	done, err := f.Next()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, f.Index())
	assert.Equal(t, -1, f.Selected())
	assert.Equal(t, 100, f.Progress())

	_, err = f.Select(0)
	require.NoError(t, err)
	correct, err = f.SubmitAnswer()
	require.NoError(t, err)
	assert.False(t, correct)

	done, err = f.Next()
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, f.Index())

	assert.Equal(t, models.QuizAnswers{0: "B", 1: "A"}, f.Answers())
	assert.Equal(t, 1, f.CorrectSoFar())

	res := models.QuizResult{Score: 50, CorrectAnswers: 1, TotalQuestions: 2, CreditsEarned: 10}
	f.Complete(res)
	got, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, res, got)

	_, err = f.Select(0)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestFlow_SelectLockedWhileExplanationShows(t *testing.T) {
	f := NewFlow(twoQuestions())
	_, _ = f.Select(0)
	_, err := f.SubmitAnswer()
	require.NoError(t, err)

	ok, err := f.Select(2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, f.Selected())
}

func TestFlow_Guards(t *testing.T) {
	f := NewFlow(twoQuestions())

	_, err := f.SubmitAnswer()
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = f.Next()
	assert.ErrorIs(t, err, ErrNotAnswered)

	_, err = f.Select(7)
	assert.ErrorIs(t, err, ErrOutOfOptions)

	empty := NewFlow(nil)
	_, err = empty.Select(0)
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.Equal(t, 20, empty.Progress())
}

func TestFlow_Restart(t *testing.T) {
	f := NewFlow(twoQuestions())
	_, _ = f.Select(1)
	_, _ = f.SubmitAnswer()
	_, _ = f.Next()
	f.Complete(models.QuizResult{Score: 100})

	f.Restart()
	assert.Equal(t, 0, f.Index())
	assert.Empty(t, f.Answers())
	assert.False(t, f.Completed())
	assert.False(t, f.ShowingExplanation())
}

func TestFlow_AnswersIsACopy(t *testing.T) {
	f := NewFlow(twoQuestions())
	_, _ = f.Select(1)
	_, _ = f.SubmitAnswer()

	a := f.Answers()
	a[0] = "tampered"
	assert.Equal(t, "B", f.Answers()[0])
}
