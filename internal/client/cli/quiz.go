package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/phishshield/internal/client/quiz"
)

const msgNoQuestions = "No quiz questions available"

// Quiz runs an interactive quiz of count questions and submits the answers.
// Signed-in users are credited; their profile is reloaded afterwards.
func (a *App) Quiz(ctx context.Context, count int) error {
	res := a.api.GetQuizQuestions(ctx, count)
	if !res.OK {
		return a.fail(res.Error)
	}

	flow := quiz.NewFlow(res.Data)
	if flow.Len() == 0 {
		return a.fail(msgNoQuestions)
	}

	for {
		q, _ := flow.Current()
		a.out.question(flow.Index(), flow.Len(), q, flow.Progress())

		quit, err := a.chooseOption(flow, len(q.Options))
		if err != nil {
			return err
		}
		if quit {
			a.out.println("Quiz abandoned.")
			return nil
		}

		correct, err := flow.SubmitAnswer()
		if err != nil {
			return err
		}
		a.out.verdict(correct, q)

		done, err := flow.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	sub := a.api.SubmitQuizResults(ctx, flow.Answers())
	if !sub.OK {
		return a.fail(sub.Error)
	}
	flow.Complete(sub.Data)
	a.out.quizResult(sub.Data)

	if a.isLoggedIn() && sub.Data.CreditsEarned > 0 {
		a.store.Refresh(ctx)
	}
	return nil
}

// chooseOption prompts until a valid option is selected or the user quits.
func (a *App) chooseOption(flow *quiz.Flow, n int) (quit bool, err error) {
	for {
		line, err := getSimpleText(a.reader, fmt.Sprintf("Choose 1-%d (q to quit)", n), a.out.w)
		if err != nil {
			return false, err
		}
		if strings.EqualFold(line, "q") {
			return true, nil
		}

		i, convErr := strconv.Atoi(line)
		if convErr != nil {
			a.out.Error("Please enter an option number")
			continue
		}
		if _, err := flow.Select(i - 1); err != nil {
			if errors.Is(err, quiz.ErrOutOfOptions) {
				a.out.Error(fmt.Sprintf("Choose a number between 1 and %d", n))
				continue
			}
			return false, err
		}
		return false, nil
	}
}
