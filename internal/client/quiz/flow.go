// Package quiz drives a single pass through a quiz set: pick an option,
// reveal the explanation, move on, and submit the collected answers at the
// end.
package quiz

import (
	"errors"

	"github.com/dmitrijs2005/phishshield/internal/client/models"
)

var (
	ErrNoQuestions  = errors.New("quiz has no questions")
	ErrNoSelection  = errors.New("no option selected")
	ErrNotAnswered  = errors.New("current question is not answered yet")
	ErrOutOfOptions = errors.New("option index out of range")
	ErrCompleted    = errors.New("quiz already completed")
)

// defaultLength is used for progress while no questions are loaded.
const defaultLength = 5

// Flow is the state of one quiz run. It is not safe for concurrent use.
type Flow struct {
	questions       models.QuizSet
	index           int
	selected        int
	showExplanation bool
	answers         models.QuizAnswers
	result          *models.QuizResult
}

func NewFlow(questions models.QuizSet) *Flow {
	f := &Flow{questions: questions}
	f.Restart()
	return f
}

// Restart forgets every answer and returns to the first question.
func (f *Flow) Restart() {
	f.index = 0
	f.selected = -1
	f.showExplanation = false
	f.answers = models.QuizAnswers{}
	f.result = nil
}

func (f *Flow) Len() int {
	return len(f.questions)
}

func (f *Flow) Index() int {
	return f.index
}

// Current returns the question being shown.
func (f *Flow) Current() (models.QuizQuestion, bool) {
	if f.index >= len(f.questions) {
		return models.QuizQuestion{}, false
	}
	return f.questions[f.index], true
}

// Selected returns the selected option index, -1 when nothing is selected.
func (f *Flow) Selected() int {
	return f.selected
}

func (f *Flow) ShowingExplanation() bool {
	return f.showExplanation
}

// Progress is the position of the current question as a percentage.
func (f *Flow) Progress() int {
	n := len(f.questions)
	if n == 0 {
		n = defaultLength
	}
	return (f.index + 1) * 100 / n
}

// Select picks an option of the current question. Once the explanation is
// shown the choice is locked and Select reports false.
func (f *Flow) Select(option int) (bool, error) {
	if f.result != nil {
		return false, ErrCompleted
	}
	q, ok := f.Current()
	if !ok {
		return false, ErrNoQuestions
	}
	if f.showExplanation {
		return false, nil
	}
	if option < 0 || option >= len(q.Options) {
		return false, ErrOutOfOptions
	}
	f.selected = option
	return true, nil
}

// SubmitAnswer records the selected option text for the current question
// and reveals its explanation. It reports whether the answer was correct.
func (f *Flow) SubmitAnswer() (bool, error) {
	if f.result != nil {
		return false, ErrCompleted
	}
	q, ok := f.Current()
	if !ok {
		return false, ErrNoQuestions
	}
	if f.selected < 0 {
		return false, ErrNoSelection
	}

	answer := q.Options[f.selected]
	f.answers[f.index] = answer
	f.showExplanation = true
	return q.IsCorrect(answer), nil
}

// Next moves to the following question. On the last question it leaves the
// position unchanged and reports done; the caller then submits Answers and
// passes the result to Complete.
func (f *Flow) Next() (done bool, err error) {
	if f.result != nil {
		return true, ErrCompleted
	}
	if len(f.questions) == 0 {
		return false, ErrNoQuestions
	}
	if !f.showExplanation {
		return false, ErrNotAnswered
	}
	if f.index < len(f.questions)-1 {
		f.index++
		f.selected = -1
		f.showExplanation = false
		return false, nil
	}
	return true, nil
}

// Answers returns a copy of the recorded answers keyed by question index.
func (f *Flow) Answers() models.QuizAnswers {
	out := make(models.QuizAnswers, len(f.answers))
	for k, v := range f.answers {
		out[k] = v
	}
	return out
}

// CorrectSoFar counts recorded answers matching their question.
func (f *Flow) CorrectSoFar() int {
	n := 0
	for i, a := range f.answers {
		if i < len(f.questions) && f.questions[i].IsCorrect(a) {
			n++
		}
	}
	return n
}

// Complete stores the server's score summary and ends the run.
func (f *Flow) Complete(result models.QuizResult) {
	f.result = &result
}

func (f *Flow) Completed() bool {
	return f.result != nil
}

// Result returns the score summary once the run is complete.
func (f *Flow) Result() (models.QuizResult, bool) {
	if f.result == nil {
		return models.QuizResult{}, false
	}
	return *f.result, true
}
