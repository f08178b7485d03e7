package grading

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/quizforge/quizforge-backend/internal/model"
)

func testQuiz() *model.Quiz {
	questions := make([]model.Question, 6)
	for i := range questions {
		qid := fmt.Sprintf("quiz-%d", i+1)
		choices := make([]model.Choice, 4)
		for j := range choices {
			choices[j] = model.Choice{
				ChoiceID:          fmt.Sprintf("%s-%d", qid, j+1),
				ChoiceText:        fmt.Sprintf("Option %d", j+1),
				ChoiceExplanation: "why this option matters",
			}
		}
		questions[i] = model.Question{
			QuestionID:        qid,
			QuestionText:      fmt.Sprintf("Question %d?", i+1),
			Choices:           choices,
			CorrectChoiceID:   choices[0].ChoiceID,
			AnswerExplanation: "the reasoning",
		}
	}
	return &model.Quiz{
		QuizID:    "quiz",
		Title:     "Test Quiz",
		Questions: questions,
		Metadata:  json.RawMessage(`{"task":"quiz_easy_general"}`),
	}
}

func TestPrepareForAttemptStripsAnswerData(t *testing.T) {
	view := PrepareForAttempt(testQuiz())

	payload, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	serialized := string(payload)

	for _, leak := range []string{"correct_choice_id", "answer_explanation", "choice_explanation", "metadata", "the reasoning", "why this option matters"} {
		if strings.Contains(serialized, leak) {
			t.Errorf("attempt view leaks %q", leak)
		}
	}
}

func TestPrepareForAttemptPreservesContent(t *testing.T) {
	quiz := testQuiz()
	view := PrepareForAttempt(quiz)

	if len(view.Questions) != len(quiz.Questions) {
		t.Fatalf("got %d questions, want %d", len(view.Questions), len(quiz.Questions))
	}

	seen := make(map[string][]string)
	for _, q := range view.Questions {
		var ids []string
		for _, c := range q.Choices {
			ids = append(ids, c.ChoiceID)
		}
		seen[q.QuestionID] = ids
	}
	for _, q := range quiz.Questions {
		ids, ok := seen[q.QuestionID]
		if !ok {
			t.Errorf("question %s missing from view", q.QuestionID)
			continue
		}
		if len(ids) != len(q.Choices) {
			t.Errorf("question %s has %d choices in view, want %d", q.QuestionID, len(ids), len(q.Choices))
		}
	}
}

func TestPrepareForAttemptDoesNotMutateQuiz(t *testing.T) {
	quiz := testQuiz()
	PrepareForAttempt(quiz)

	for i, q := range quiz.Questions {
		wantQID := fmt.Sprintf("quiz-%d", i+1)
		if q.QuestionID != wantQID {
			t.Fatalf("stored question order changed: %q at %d", q.QuestionID, i)
		}
		for j, c := range q.Choices {
			wantCID := fmt.Sprintf("%s-%d", wantQID, j+1)
			if c.ChoiceID != wantCID {
				t.Fatalf("stored choice order changed: %q at %d/%d", c.ChoiceID, i, j)
			}
		}
		if q.CorrectChoiceID == "" || q.AnswerExplanation == "" {
			t.Fatal("stored answer data was cleared")
		}
	}
}

func TestPrepareForAttemptShufflesAcrossCalls(t *testing.T) {
	quiz := testQuiz()

	// With 6 questions and 4 choices each, 50 retrievals virtually
	// never all land in stored order unless shuffling is broken.
	varied := false
	for i := 0; i < 50 && !varied; i++ {
		view := PrepareForAttempt(quiz)
		for qi, q := range view.Questions {
			if q.QuestionID != quiz.Questions[qi].QuestionID {
				varied = true
				break
			}
			for ci, c := range q.Choices {
				if c.ChoiceID != fmt.Sprintf("%s-%d", q.QuestionID, ci+1) {
					varied = true
					break
				}
			}
		}
	}
	if !varied {
		t.Error("50 retrievals all returned stored order; shuffle appears inert")
	}
}
