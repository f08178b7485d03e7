package generation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const sampleQuizOutput = `{
  "quiz_title": "Cell Biology Basics",
  "difficulty": "easy",
  "category": "Biology",
  "questions": [
    {
      "question_id": "q1",
      "question_text": "What organelle produces ATP?",
      "choices": [
        {"choice_id": "a", "choice_text": "Nucleus", "choice_explanation": "Stores DNA."},
        {"choice_id": "b", "choice_text": "Mitochondrion", "choice_explanation": "The site of respiration."},
        {"choice_id": "c", "choice_text": "Ribosome", "choice_explanation": "Builds proteins."}
      ],
      "correct_choice_id": "b",
      "answer_explanation": "Mitochondria produce ATP through cellular respiration."
    },
    {
      "question_id": "q2",
      "question_text": "Where does protein synthesis occur?",
      "choices": [
        {"choice_id": "x", "choice_text": "Ribosome", "choice_explanation": "Translates mRNA."},
        {"choice_id": "y", "choice_text": "Lysosome", "choice_explanation": "Digests waste."}
      ],
      "correct_choice_id": "x",
      "answer_explanation": "Ribosomes translate mRNA into protein."
    }
  ]
}`

func TestNormalizeQuizAssignsCanonicalIDs(t *testing.T) {
	r := newTestRegistry()

	draft, err := r.NormalizeQuiz(sampleQuizOutput, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz: %v", err)
	}

	if draft.QuizID == "" {
		t.Fatal("quiz ID not assigned")
	}
	if len(draft.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(draft.Questions))
	}

	for qi, q := range draft.Questions {
		wantQID := fmt.Sprintf("%s-%d", draft.QuizID, qi+1)
		if q.QuestionID != wantQID {
			t.Errorf("question %d ID = %q, want %q", qi, q.QuestionID, wantQID)
		}
		for ci, c := range q.Choices {
			wantCID := fmt.Sprintf("%s-%d", wantQID, ci+1)
			if c.ChoiceID != wantCID {
				t.Errorf("question %d choice %d ID = %q, want %q", qi, ci, c.ChoiceID, wantCID)
			}
		}
	}
}

func TestNormalizeQuizRemapsCorrectChoice(t *testing.T) {
	r := newTestRegistry()

	draft, err := r.NormalizeQuiz(sampleQuizOutput, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz: %v", err)
	}

	// "b" was the second choice of the first question; the remapped
	// answer key must point at the second canonical choice ID. The
	// matching has to happen against the provisional IDs before they
	// are overwritten, or the reference is lost.
	q1 := draft.Questions[0]
	if q1.CorrectChoiceID != q1.Choices[1].ChoiceID {
		t.Errorf("question 1 correct = %q, want %q", q1.CorrectChoiceID, q1.Choices[1].ChoiceID)
	}
	if q1.Choices[1].ChoiceText != "Mitochondrion" {
		t.Errorf("answer key no longer points at the right choice text: %q", q1.Choices[1].ChoiceText)
	}

	q2 := draft.Questions[1]
	if q2.CorrectChoiceID != q2.Choices[0].ChoiceID {
		t.Errorf("question 2 correct = %q, want %q", q2.CorrectChoiceID, q2.Choices[0].ChoiceID)
	}
}

func TestNormalizeQuizFencedOutput(t *testing.T) {
	r := newTestRegistry()

	fenced := "```json\n" + sampleQuizOutput + "\n```"
	plain, err := r.NormalizeQuiz(sampleQuizOutput, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz(plain): %v", err)
	}
	wrapped, err := r.NormalizeQuiz(fenced, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz(fenced): %v", err)
	}

	if plain.Title != wrapped.Title || len(plain.Questions) != len(wrapped.Questions) {
		t.Error("fenced output did not normalize like plain output")
	}
	for i := range plain.Questions {
		if plain.Questions[i].QuestionText != wrapped.Questions[i].QuestionText {
			t.Errorf("question %d differs between plain and fenced runs", i)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"interior backticks kept", "```json\n{\"a\":\"```\"}\n```", `{"a":"` + "```" + `"}`},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Errorf("%s: stripCodeFence(%q) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestNormalizeQuizMalformedJSON(t *testing.T) {
	r := newTestRegistry()

	_, err := r.NormalizeQuiz("Sure! Here is your quiz: ...", r.Schema(SchemaQuiz))
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedOutputError", err)
	}
	if !strings.Contains(malformed.Raw, "Sure!") {
		t.Error("raw output not preserved in error")
	}
}

func TestNormalizeQuizSchemaViolation(t *testing.T) {
	r := newTestRegistry()

	// Valid JSON, but questions lack required fields.
	_, err := r.NormalizeQuiz(`{"quiz_title":"t","difficulty":"easy","category":"c","questions":[{"question_text":"q?"}]}`, r.Schema(SchemaQuiz))
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedOutputError", err)
	}
}

func TestNormalizeQuizUnresolvableAnswerKey(t *testing.T) {
	r := newTestRegistry()

	bad := strings.Replace(sampleQuizOutput, `"correct_choice_id": "b"`, `"correct_choice_id": "z"`, 1)
	_, err := r.NormalizeQuiz(bad, r.Schema(SchemaQuiz))
	var idErr *IDAssignmentError
	if !errors.As(err, &idErr) {
		t.Fatalf("got %v, want IDAssignmentError", err)
	}
	if idErr.QuestionIndex != 0 {
		t.Errorf("error names question %d, want 0", idErr.QuestionIndex)
	}
}

func TestNormalizeQuizUnknownDifficulty(t *testing.T) {
	r := newTestRegistry()

	out := strings.Replace(sampleQuizOutput, `"difficulty": "easy"`, `"difficulty": "Very Easy"`, 1)
	draft, err := r.NormalizeQuiz(out, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz: %v", err)
	}
	if draft.Difficulty != "medium" {
		t.Errorf("difficulty = %q, want medium fallback", draft.Difficulty)
	}
}

func TestNormalizeQuizDistinctIDsPerRun(t *testing.T) {
	r := newTestRegistry()

	first, err := r.NormalizeQuiz(sampleQuizOutput, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz: %v", err)
	}
	second, err := r.NormalizeQuiz(sampleQuizOutput, r.Schema(SchemaQuiz))
	if err != nil {
		t.Fatalf("NormalizeQuiz: %v", err)
	}
	if first.QuizID == second.QuizID {
		t.Error("two normalizations produced the same quiz ID")
	}
}

func TestNormalizeSummary(t *testing.T) {
	r := newTestRegistry()

	out := `{
	  "title": "The Krebs Cycle",
	  "summary_text": "## Overview\nThe cycle oxidizes acetyl-CoA...",
	  "related_questions": [
	    {"question": "Where does the cycle occur?", "answer": "In the mitochondrial matrix."}
	  ]
	}`
	draft, err := r.NormalizeSummary(out, r.Schema(SchemaSummary))
	if err != nil {
		t.Fatalf("NormalizeSummary: %v", err)
	}
	if draft.Title != "The Krebs Cycle" {
		t.Errorf("title = %q", draft.Title)
	}
	if len(draft.RelatedQuestions) != 1 {
		t.Errorf("got %d related questions, want 1", len(draft.RelatedQuestions))
	}
}

func TestNormalizeSummaryEmptyText(t *testing.T) {
	r := newTestRegistry()

	_, err := r.NormalizeSummary(`{"title":"t","summary_text":"  "}`, r.Schema(SchemaSummary))
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedOutputError", err)
	}
}
