// Package quiz は機械学習の基礎を確認する選択式クイズを提供します。
package quiz

import (
	"github.com/samber/lo"

	"github.com/YuminosukeSato/mllab/pkg/errors"
)

// Question は選択式の問題
type Question struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// CorrectAnswer は正解の選択肢の文を返す
func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectAnswerIndex]
}

var builtinQuestions = []Question{
	{
		Question:           "Which of the following is an example of Supervised Learning?",
		Options:            []string{"Clustering", "Dimensionality Reduction", "Classification", "Association Rule Mining"},
		CorrectAnswerIndex: 2,
		Explanation:        "Supervised learning involves learning a function that maps an input to an output based on example input-output pairs. Classification is a classic example where the model learns to assign labels to input data.",
	},
	{
		Question:           "What is the primary goal of Linear Regression?",
		Options:            []string{"To group similar data points together", "To find the best-fitting straight line through data points", "To classify data into distinct categories", "To visualize the structure of a decision-making process"},
		CorrectAnswerIndex: 1,
		Explanation:        "Linear Regression is a regression algorithm that models the relationship between a dependent variable and one or more independent variables by fitting a linear equation (a straight line) to the observed data.",
	},
	{
		Question:           "Increasing the depth of a Decision Tree can lead to:",
		Options:            []string{"Underfitting", "Higher bias", "Lower variance", "Overfitting"},
		CorrectAnswerIndex: 3,
		Explanation:        "A deeper decision tree can learn the training data too well, capturing noise and specific patterns that don't generalize to new data. This phenomenon is called overfitting.",
	},
	{
		Question:           "A confusion matrix is used to evaluate the performance of which type of model?",
		Options:            []string{"Regression", "Clustering", "Classification", "Reinforcement Learning"},
		CorrectAnswerIndex: 2,
		Explanation:        "A confusion matrix is a table used to describe the performance of a classification model on a set of test data for which the true values are known. It shows true positives, true negatives, false positives, and false negatives.",
	},
}

// Questions は組み込みの問題のコピーを返す
func Questions() []Question {
	out := make([]Question, len(builtinQuestions))
	for i, q := range builtinQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

const unanswered = -1

// Session は1回分の回答状況を保持する。各問題は一度だけ回答できる。
type Session struct {
	questions []Question
	answers   []int
	current   int
}

// NewSession は questions で回答を始める。指定がなければ組み込みの問題を使う。
func NewSession(questions ...Question) *Session {
	if len(questions) == 0 {
		questions = Questions()
	}
	s := &Session{questions: questions}
	s.Reset()
	return s
}

// Reset は全ての回答を消して最初の問題に戻る
func (s *Session) Reset() {
	s.answers = lo.Times(len(s.questions), func(int) int { return unanswered })
	s.current = 0
}

// Len は問題数を返す
func (s *Session) Len() int { return len(s.questions) }

// Current は表示中の問題とその添字を返す
func (s *Session) Current() (int, Question) {
	return s.current, s.questions[s.current]
}

// Answer は問題 i に option を回答し、正解かどうかを返す
func (s *Session) Answer(i, option int) (bool, error) {
	if i < 0 || i >= len(s.questions) {
		return false, errors.NewValidationError("question", "index out of range", i)
	}
	q := s.questions[i]
	if option < 0 || option >= len(q.Options) {
		return false, errors.NewValidationError("option", "index out of range", option)
	}
	if s.answers[i] != unanswered {
		return false, errors.NewValueError("Session.Answer", "question already answered")
	}
	s.answers[i] = option
	return option == q.CorrectAnswerIndex, nil
}

// Answered は問題 i で選ばれた選択肢を返す
func (s *Session) Answered(i int) (int, bool) {
	if i < 0 || i >= len(s.answers) || s.answers[i] == unanswered {
		return 0, false
	}
	return s.answers[i], true
}

// Next は次の問題に進む。最後の問題では false を返す。
func (s *Session) Next() bool {
	if s.current+1 >= len(s.questions) {
		return false
	}
	s.current++
	return true
}

// Done は全ての問題に回答済みかどうかを返す
func (s *Session) Done() bool {
	return !lo.Contains(s.answers, unanswered)
}

// Score は正解数と問題数を返す
func (s *Session) Score() (correct, total int) {
	correct = lo.CountBy(lo.Range(len(s.questions)), func(i int) bool {
		return s.answers[i] == s.questions[i].CorrectAnswerIndex
	})
	return correct, len(s.questions)
}
