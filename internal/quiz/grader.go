// Package quiz holds the screening assessment and grades submissions.
package quiz

import (
	"math"
	"strings"
)

// PassThreshold is the minimum percentage, inclusive, for selection.
const PassThreshold = 70.0

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	answer  string
}

var questions = []Question{
	{ID: "q1", Text: "What is the output of `2 ** 3` in Python?", Options: []string{"6", "8", "9", "Error"}, answer: "8"},
	{ID: "q2", Text: "Which keyword is used to define a function?", Options: []string{"func", "define", "def", "function"}, answer: "def"},
	{ID: "q3", Text: "Which of these is a mutable data type?", Options: []string{"Tuple", "String", "List", "Integer"}, answer: "List"},
	{ID: "q4", Text: "What is the correct file extension for Python files?", Options: []string{".py", ".python", ".pt", ".txt"}, answer: ".py"},
	{ID: "q5", Text: "What does `len('Hello')` return?", Options: []string{"4", "5", "0", "1"}, answer: "5"},
}

// Questions returns the assessment without answers.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

type Result struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// Grade scores answers keyed by question ID. Missing or unknown answers are
// wrong; surrounding whitespace is ignored, case is not.
func Grade(answers map[string]string) Result {
	correct := 0
	for _, q := range questions {
		if strings.TrimSpace(answers[q.ID]) == q.answer {
			correct++
		}
	}
	score := float64(correct) / float64(len(questions)) * 100
	return Result{
		Correct: correct,
		Total:   len(questions),
		Score:   score,
		Passed:  score >= PassThreshold,
	}
}

// ResultFromScore rebuilds the outcome of an earlier grading from its stored
// percentage.
func ResultFromScore(score float64) Result {
	total := len(questions)
	return Result{
		Correct: int(math.Round(score / 100 * float64(total))),
		Total:   total,
		Score:   score,
		Passed:  score >= PassThreshold,
	}
}
