package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// QuizQuestion is one awareness question. Newer servers send the correct
// option text in Answer; older ones send its index in CorrectOptionID.
type QuizQuestion struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer,omitempty"`
	CorrectOptionID *int     `json:"correctOptionId,omitempty"`
	Explanation     string   `json:"explanation"`
	Image           string   `json:"image,omitempty"`
}

// CorrectAnswer returns the text of the correct option, or "" when the
// question does not say.
func (q QuizQuestion) CorrectAnswer() string {
	if q.Answer != "" {
		return q.Answer
	}
	if q.CorrectOptionID != nil {
		i := *q.CorrectOptionID
		if i >= 0 && i < len(q.Options) {
			return q.Options[i]
		}
	}
	return ""
}

// IsCorrect reports whether answer is the correct option text.
func (q QuizQuestion) IsCorrect(answer string) bool {
	correct := q.CorrectAnswer()
	return correct != "" && correct == answer
}

// QuizSet is the keyed question collection returned by GET /quiz. On the
// wire it is an object keyed by question index ({"0": {...}, "1": {...}});
// a plain JSON array is accepted as well.
type QuizSet []QuizQuestion

func (s QuizSet) MarshalJSON() ([]byte, error) {
	keyed := make(map[string]QuizQuestion, len(s))
	for i, q := range s {
		keyed[strconv.Itoa(i)] = q
	}
	return json.Marshal(keyed)
}

func (s *QuizSet) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []QuizQuestion
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	var keyed map[string]QuizQuestion
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return err
	}

	keys := make([]int, 0, len(keyed))
	for k := range keyed {
		i, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("quiz set key %q is not an index", k)
		}
		keys = append(keys, i)
	}
	sort.Ints(keys)

	list := make([]QuizQuestion, 0, len(keys))
	for _, k := range keys {
		list = append(list, keyed[strconv.Itoa(k)])
	}
	*s = list
	return nil
}

// QuizAnswers maps a question index to the chosen option text. It encodes
// as {"0": "...", "1": "..."}.
type QuizAnswers map[int]string

// QuizSubmission is the body of POST /quiz/submit.
type QuizSubmission struct {
	Answers QuizAnswers `json:"answers"`
}

// QuizResult is the score summary returned by POST /quiz/submit.
type QuizResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	CreditsEarned  int     `json:"creditsEarned"`
}

// Percentage is Score rounded to a whole percent.
func (r QuizResult) Percentage() int {
	return int(math.Round(r.Score))
}
