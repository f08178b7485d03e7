package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/model"
)

func wrongResponseFixture() model.WrongResponse {
	return model.WrongResponse{
		QuizID:           "quiz-a",
		QuestionID:       "quiz-a-1",
		SelectedChoiceID: "quiz-a-1-2",
		AttemptedAt:      time.Now(),
		Questions: []model.Question{
			{
				QuestionID:   "quiz-a-1",
				QuestionText: "What is the powerhouse of the cell?",
				Choices: []model.Choice{
					{ChoiceID: "quiz-a-1-1", ChoiceText: "Mitochondrion"},
					{ChoiceID: "quiz-a-1-2", ChoiceText: "Nucleus"},
				},
				CorrectChoiceID:   "quiz-a-1-1",
				AnswerExplanation: "Mitochondria produce most cellular ATP.",
			},
		},
	}
}

func TestRenderMistake(t *testing.T) {
	entry, ok := renderMistake(wrongResponseFixture())
	if !ok {
		t.Fatal("renderMistake returned not ok for a resolvable response")
	}

	want := "Question: What is the powerhouse of the cell?\n" +
		"User's incorrect answer: Nucleus\n" +
		"Correct answer: Mitochondrion\n" +
		"Explanation: Mitochondria produce most cellular ATP."
	if entry != want {
		t.Errorf("entry = %q, want %q", entry, want)
	}
}

func TestRenderMistakeMissingExplanation(t *testing.T) {
	w := wrongResponseFixture()
	w.Questions[0].AnswerExplanation = ""

	entry, ok := renderMistake(w)
	if !ok {
		t.Fatal("renderMistake returned not ok")
	}
	if !strings.Contains(entry, "Explanation: No explanation available.") {
		t.Errorf("entry = %q, want explanation placeholder", entry)
	}
}

func TestRenderMistakeUnresolvable(t *testing.T) {
	// Question definition no longer present in the quiz document.
	w := wrongResponseFixture()
	w.QuestionID = "quiz-a-99"
	if _, ok := renderMistake(w); ok {
		t.Error("renderMistake resolved a missing question")
	}

	// Selected choice removed from the question.
	w = wrongResponseFixture()
	w.SelectedChoiceID = "quiz-a-1-7"
	if _, ok := renderMistake(w); ok {
		t.Error("renderMistake resolved a missing selected choice")
	}

	// Answer key points outside the choice list.
	w = wrongResponseFixture()
	w.Questions[0].CorrectChoiceID = "quiz-a-1-9"
	if _, ok := renderMistake(w); ok {
		t.Error("renderMistake resolved a broken answer key")
	}
}

// fakeWrongResponseSource serves canned wrong responses and records the
// requested mining window.
type fakeWrongResponseSource struct {
	responses []model.WrongResponse
	err       error
	gotLimit  int
}

func (f *fakeWrongResponseSource) RecentWrongResponses(ctx context.Context, userID string, limit int) ([]model.WrongResponse, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) > limit {
		return f.responses[:limit], nil
	}
	return f.responses, nil
}

func newTestMistakeService(src *fakeWrongResponseSource) *MistakeService {
	return NewMistakeService(src, zerolog.Nop())
}

// distinctWrongResponse builds a resolvable wrong response for question
// n, with the question text carrying n so ordering is observable.
func distinctWrongResponse(n int) model.WrongResponse {
	w := wrongResponseFixture()
	qid := fmt.Sprintf("quiz-a-%d", n)
	w.QuestionID = qid
	w.SelectedChoiceID = qid + "-2"
	w.Questions[0].QuestionID = qid
	w.Questions[0].QuestionText = fmt.Sprintf("Question number %d?", n)
	w.Questions[0].Choices = []model.Choice{
		{ChoiceID: qid + "-1", ChoiceText: "Right"},
		{ChoiceID: qid + "-2", ChoiceText: "Wrong"},
	}
	w.Questions[0].CorrectChoiceID = qid + "-1"
	return w
}

func TestBuildTranscriptNoMistakes(t *testing.T) {
	src := &fakeWrongResponseSource{}
	_, err := newTestMistakeService(src).BuildTranscript(context.Background(), "user-1", 10)
	if !errors.Is(err, ErrNoMistakes) {
		t.Fatalf("err = %v, want ErrNoMistakes", err)
	}
	if src.gotLimit != 50 {
		t.Errorf("mining window = %d, want 50 (5x the cap)", src.gotLimit)
	}
}

func TestBuildTranscriptCapsEntries(t *testing.T) {
	src := &fakeWrongResponseSource{responses: []model.WrongResponse{
		distinctWrongResponse(1),
		distinctWrongResponse(2),
		distinctWrongResponse(3),
	}}

	transcript, err := newTestMistakeService(src).BuildTranscript(context.Background(), "user-1", 2)
	if err != nil {
		t.Fatalf("BuildTranscript: %v", err)
	}

	entries := strings.Split(transcript, mistakeEntrySeparator)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !strings.Contains(entries[0], "Question number 1?") || !strings.Contains(entries[1], "Question number 2?") {
		t.Errorf("entries out of recency order: %q", entries)
	}
}

func TestBuildTranscriptDeduplicatesByQuestion(t *testing.T) {
	// The same question missed twice appears once, keeping the most
	// recent (first) occurrence's slot in the ordering.
	src := &fakeWrongResponseSource{responses: []model.WrongResponse{
		distinctWrongResponse(1),
		distinctWrongResponse(1),
		distinctWrongResponse(2),
	}}

	transcript, err := newTestMistakeService(src).BuildTranscript(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("BuildTranscript: %v", err)
	}

	entries := strings.Split(transcript, mistakeEntrySeparator)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (duplicate question collapsed)", len(entries))
	}
	if strings.Count(transcript, "Question number 1?") != 1 {
		t.Error("duplicate question rendered more than once")
	}
}

func TestBuildTranscriptSkipsUnresolvableEntries(t *testing.T) {
	broken := distinctWrongResponse(1)
	broken.QuestionID = "quiz-a-99"

	src := &fakeWrongResponseSource{responses: []model.WrongResponse{
		broken,
		distinctWrongResponse(2),
	}}

	transcript, err := newTestMistakeService(src).BuildTranscript(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("BuildTranscript: %v", err)
	}
	if strings.Contains(transcript, mistakeEntrySeparator) {
		t.Error("broken entry was not skipped")
	}
	if !strings.Contains(transcript, "Question number 2?") {
		t.Error("resolvable entry missing from transcript")
	}
}

func TestBuildTranscriptAllUnresolvable(t *testing.T) {
	broken := distinctWrongResponse(1)
	broken.QuestionID = "quiz-a-99"

	src := &fakeWrongResponseSource{responses: []model.WrongResponse{broken}}
	_, err := newTestMistakeService(src).BuildTranscript(context.Background(), "user-1", 10)
	if !errors.Is(err, ErrIncompleteMistakeData) {
		t.Fatalf("err = %v, want ErrIncompleteMistakeData", err)
	}
}
