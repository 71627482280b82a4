package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"classquiz/internal/quiz"
)

type fakeQuizStore struct {
	quizzes   []quiz.Quiz
	questions map[int64][]quiz.Question
}

func (f *fakeQuizStore) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	return f.quizzes, nil
}

func (f *fakeQuizStore) GetQuiz(ctx context.Context, id int64) (quiz.Quiz, error) {
	for _, item := range f.quizzes {
		if item.ID == id {
			return item, nil
		}
	}
	return quiz.Quiz{}, quiz.ErrQuizNotFound
}

func (f *fakeQuizStore) GetQuestions(ctx context.Context, quizID int64) ([]quiz.Question, error) {
	return f.questions[quizID], nil
}

func newFakeStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes: []quiz.Quiz{
			{ID: 1, Name: "Networking Basics", ClassName: "CIS 53", TotalQuestions: 2},
		},
		questions: map[int64][]quiz.Question{
			1: {
				{ID: 10, Text: "What does IP stand for?", OptionA: "Internet Protocol", OptionB: "Internal Port", OptionC: "Index Pointer", OptionD: "Input Parser", CorrectAnswer: "Internet Protocol"},
				{ID: 11, Text: "Default HTTP port?", OptionA: "21", OptionB: "80", OptionC: "443", OptionD: "8080", CorrectAnswer: "80"},
			},
		},
	}
}

func TestRunScoresCorrectAnswers(t *testing.T) {
	in := strings.NewReader("1\nA\nB\n")
	var out bytes.Buffer

	if err := Run(context.Background(), newFakeStore(), in, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "CIS 53 - Networking Basics") {
		t.Errorf("quiz listing missing from output:\n%s", output)
	}
	if !strings.Contains(output, "Final score: 20/20") {
		t.Errorf("expected full score, got:\n%s", output)
	}
}

func TestRunCountsWrongAnswers(t *testing.T) {
	in := strings.NewReader("1\nB\nB\n")
	var out bytes.Buffer

	if err := Run(context.Background(), newFakeStore(), in, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Wrong. Correct answer was Internet Protocol") {
		t.Errorf("expected wrong-answer feedback, got:\n%s", output)
	}
	if !strings.Contains(output, "Final score: 10/20") {
		t.Errorf("expected half score, got:\n%s", output)
	}
}

func TestRunSkipsAfterRepeatedInvalidInput(t *testing.T) {
	in := strings.NewReader("1\nZ\n9\nhello\nB\n")
	var out bytes.Buffer

	if err := Run(context.Background(), newFakeStore(), in, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Skipping. Correct answer was Internet Protocol") {
		t.Errorf("expected skip after three invalid answers, got:\n%s", output)
	}
	if !strings.Contains(output, "Final score: 10/20") {
		t.Errorf("expected score for remaining question, got:\n%s", output)
	}
}

func TestRunWithNoQuizzes(t *testing.T) {
	var out bytes.Buffer
	store := &fakeQuizStore{}

	if err := Run(context.Background(), store, strings.NewReader(""), &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "No quizzes available") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
