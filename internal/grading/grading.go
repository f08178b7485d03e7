// Package grading evaluates submitted answers against a quiz's answer
// key and prepares sanitized quiz views for attempts.
package grading

import (
	"github.com/quizforge/quizforge-backend/internal/model"
)

// Result is the full outcome of grading one submission.
type Result struct {
	Responses     []model.AttemptResponse
	Review        []model.ReviewItem
	Stats         model.AttemptStats
	MarksObtained int
	TotalMarks    int
}

// Grade evaluates submitted responses against the quiz's questions.
//
// Responses naming an unknown question, or carrying an empty selection,
// are treated as unanswered: they are dropped from the per-response
// detail and count toward neither tally directly. Marks are always out
// of the full quiz, so wrong_count is total questions minus correct
// ones and unanswered questions are wrong by omission. Only questions
// answered incorrectly are listed in wrong_question_ids; those are the
// ones mistake mining can learn from.
//
// Grading is pure. The same quiz and responses always produce the same
// result, and neither input is mutated.
func Grade(questions []model.Question, submitted []model.SubmittedResponse) Result {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	responses := make([]model.AttemptResponse, 0, len(submitted))
	correct := 0
	var wrongIDs []string
	for _, s := range submitted {
		question, known := byID[s.QuestionID]
		if !known || s.SelectedChoiceID == "" {
			continue
		}

		isCorrect := s.SelectedChoiceID == question.CorrectChoiceID
		if isCorrect {
			correct++
		} else {
			wrongIDs = append(wrongIDs, s.QuestionID)
		}

		responses = append(responses, model.AttemptResponse{
			QuestionID:       s.QuestionID,
			SelectedChoiceID: s.SelectedChoiceID,
			IsCorrect:        isCorrect,
		})
	}

	total := len(questions)
	return Result{
		Responses:     responses,
		Review:        Review(questions, responses),
		Stats:         model.AttemptStats{CorrectCount: correct, WrongCount: total - correct, WrongQuestionIDs: wrongIDs},
		MarksObtained: correct,
		TotalMarks:    total,
	}
}

// Review resolves graded responses into review items carrying the
// question and choice texts. Responses whose question no longer exists
// on the quiz are left out.
func Review(questions []model.Question, responses []model.AttemptResponse) []model.ReviewItem {
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	items := make([]model.ReviewItem, 0, len(responses))
	for _, r := range responses {
		question, known := byID[r.QuestionID]
		if !known {
			continue
		}
		items = append(items, model.ReviewItem{
			QuestionID:     r.QuestionID,
			QuestionText:   question.QuestionText,
			SelectedChoice: choiceText(question.Choices, r.SelectedChoiceID),
			CorrectChoice:  choiceText(question.Choices, question.CorrectChoiceID),
			Explanation:    question.AnswerExplanation,
			IsCorrect:      r.IsCorrect,
		})
	}
	return items
}

func choiceText(choices []model.Choice, choiceID string) string {
	for _, c := range choices {
		if c.ChoiceID == choiceID {
			return c.ChoiceText
		}
	}
	return ""
}
