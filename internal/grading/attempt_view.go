package grading

import (
	"math/rand"

	"github.com/quizforge/quizforge-backend/internal/model"
)

// PrepareForAttempt builds the sanitized view of a quiz for a taker.
// Everything that reveals answers is stripped: the answer key, the
// answer explanation, and per-choice explanations. Question and choice
// order are freshly shuffled on every call; the stored quiz is never
// mutated, and the shuffle is never persisted.
func PrepareForAttempt(quiz *model.Quiz) *model.AttemptQuizView {
	questions := make([]model.AttemptQuestionView, len(quiz.Questions))
	for i, q := range quiz.Questions {
		choices := make([]model.AttemptChoiceView, len(q.Choices))
		for j, c := range q.Choices {
			choices[j] = model.AttemptChoiceView{
				ChoiceID:   c.ChoiceID,
				ChoiceText: c.ChoiceText,
			}
		}
		rand.Shuffle(len(choices), func(a, b int) {
			choices[a], choices[b] = choices[b], choices[a]
		})
		questions[i] = model.AttemptQuestionView{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Choices:      choices,
		}
	}
	rand.Shuffle(len(questions), func(a, b int) {
		questions[a], questions[b] = questions[b], questions[a]
	})

	return &model.AttemptQuizView{
		QuizID:     quiz.QuizID,
		Title:      quiz.Title,
		Difficulty: quiz.Difficulty,
		Category:   quiz.Category,
		Source:     quiz.Source,
		Questions:  questions,
	}
}
