package grading

import (
	"reflect"
	"testing"

	"github.com/quizforge/quizforge-backend/internal/model"
)

func testQuestions() []model.Question {
	return []model.Question{
		{
			QuestionID:   "quiz-1",
			QuestionText: "What is the boiling point of water at sea level?",
			Choices: []model.Choice{
				{ChoiceID: "quiz-1-1", ChoiceText: "90 degrees Celsius"},
				{ChoiceID: "quiz-1-2", ChoiceText: "100 degrees Celsius"},
			},
			CorrectChoiceID:   "quiz-1-2",
			AnswerExplanation: "Water boils at 100C under one atmosphere of pressure.",
		},
		{
			QuestionID: "quiz-2",
			Choices: []model.Choice{
				{ChoiceID: "quiz-2-1", ChoiceText: "A"},
				{ChoiceID: "quiz-2-2", ChoiceText: "B"},
			},
			CorrectChoiceID: "quiz-2-1",
		},
		{
			QuestionID: "quiz-3",
			Choices: []model.Choice{
				{ChoiceID: "quiz-3-1", ChoiceText: "A"},
				{ChoiceID: "quiz-3-2", ChoiceText: "B"},
			},
			CorrectChoiceID: "quiz-3-1",
		},
	}
}

func TestGradeUnansweredCountsAsWrong(t *testing.T) {
	// Three questions, two answered, one of them correctly.
	result := Grade(testQuestions(), []model.SubmittedResponse{
		{QuestionID: "quiz-1", SelectedChoiceID: "quiz-1-2"},
		{QuestionID: "quiz-2", SelectedChoiceID: "quiz-2-2"},
	})

	if result.Stats.CorrectCount != 1 {
		t.Errorf("correct = %d, want 1", result.Stats.CorrectCount)
	}
	if result.Stats.WrongCount != 2 {
		t.Errorf("wrong = %d, want 2 (one answered wrong, one unanswered)", result.Stats.WrongCount)
	}
	if result.MarksObtained != 1 || result.TotalMarks != 3 {
		t.Errorf("marks = %d/%d, want 1/3", result.MarksObtained, result.TotalMarks)
	}

	// Only questions answered incorrectly are listed; the unanswered
	// question is wrong by omission but has nothing to review.
	if !reflect.DeepEqual(result.Stats.WrongQuestionIDs, []string{"quiz-2"}) {
		t.Errorf("wrong question IDs = %v, want [quiz-2]", result.Stats.WrongQuestionIDs)
	}
}

func TestGradeSkipsUnknownQuestions(t *testing.T) {
	result := Grade(testQuestions(), []model.SubmittedResponse{
		{QuestionID: "other-quiz-9", SelectedChoiceID: "other-quiz-9-1"},
		{QuestionID: "quiz-1", SelectedChoiceID: "quiz-1-2"},
	})

	if len(result.Responses) != 1 {
		t.Fatalf("stored %d responses, want 1 (unknown question dropped)", len(result.Responses))
	}
	if result.Responses[0].QuestionID != "quiz-1" || !result.Responses[0].IsCorrect {
		t.Errorf("kept response = %+v", result.Responses[0])
	}
}

func TestGradeEmptySelectionIsUnanswered(t *testing.T) {
	result := Grade(testQuestions(), []model.SubmittedResponse{
		{QuestionID: "quiz-1", SelectedChoiceID: ""},
	})

	if result.Stats.CorrectCount != 0 {
		t.Errorf("correct = %d, want 0", result.Stats.CorrectCount)
	}
	if len(result.Responses) != 0 {
		t.Errorf("empty selection kept in per-response detail: %+v", result.Responses)
	}
	if result.Stats.WrongCount != 3 {
		t.Errorf("wrong = %d, want 3 (whole quiz unanswered)", result.Stats.WrongCount)
	}
	if len(result.Stats.WrongQuestionIDs) != 0 {
		t.Errorf("unanswered questions listed as wrong: %v", result.Stats.WrongQuestionIDs)
	}
}

func TestGradeReviewResolvesTexts(t *testing.T) {
	result := Grade(testQuestions(), []model.SubmittedResponse{
		{QuestionID: "quiz-1", SelectedChoiceID: "quiz-1-1"},
	})

	if len(result.Review) != 1 {
		t.Fatalf("review has %d items, want 1", len(result.Review))
	}
	want := model.ReviewItem{
		QuestionID:     "quiz-1",
		QuestionText:   "What is the boiling point of water at sea level?",
		SelectedChoice: "90 degrees Celsius",
		CorrectChoice:  "100 degrees Celsius",
		Explanation:    "Water boils at 100C under one atmosphere of pressure.",
		IsCorrect:      false,
	}
	if result.Review[0] != want {
		t.Errorf("review item = %+v, want %+v", result.Review[0], want)
	}
}

func TestGradeNoResponses(t *testing.T) {
	result := Grade(testQuestions(), nil)

	if result.Stats.CorrectCount != 0 || result.Stats.WrongCount != 3 {
		t.Errorf("stats = %+v, want 0 correct / 3 wrong", result.Stats)
	}
	if result.TotalMarks != 3 {
		t.Errorf("total marks = %d, want 3", result.TotalMarks)
	}
}

func TestGradeIsPure(t *testing.T) {
	questions := testQuestions()
	responses := []model.SubmittedResponse{
		{QuestionID: "quiz-1", SelectedChoiceID: "quiz-1-2"},
		{QuestionID: "quiz-3", SelectedChoiceID: "quiz-3-2"},
	}

	first := Grade(questions, responses)
	second := Grade(questions, responses)

	if !reflect.DeepEqual(first.Stats, second.Stats) {
		t.Errorf("grading is not deterministic: %+v vs %+v", first.Stats, second.Stats)
	}
	if questions[0].CorrectChoiceID != "quiz-1-2" {
		t.Error("Grade mutated its question input")
	}
	if responses[0].SelectedChoiceID != "quiz-1-2" {
		t.Error("Grade mutated its response input")
	}
}
