package store

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"classquiz/internal/migrate"
	"classquiz/internal/quiz"
	"classquiz/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// Empty content root: schema only, no quizzes loaded.
	units, err := migrations.Units(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("building migration units: %v", err)
	}
	if _, err := migrate.NewRunner(store.DB(), units, logger).Run(context.Background()); err != nil {
		t.Fatalf("migrating test store: %v", err)
	}
	return store
}

func seedQuiz(t *testing.T, store *Store, quizID, name, class string, questions int) int64 {
	t.Helper()

	result, err := store.DB().Exec(
		`INSERT INTO quizzes (quiz_id, name, class_name, total_questions) VALUES (?, ?, ?, ?)`,
		quizID, name, class, questions)
	if err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}
	rowID, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}
	for i := 0; i < questions; i++ {
		_, err := store.DB().Exec(
			`INSERT INTO quiz_questions (quiz_id, question, option_a, option_b, option_c, option_d, correct_answer)
			 VALUES (?, 'Q?', 'a', 'b', 'c', 'd', 'a')`, rowID)
		if err != nil {
			t.Fatalf("seeding question: %v", err)
		}
	}
	return rowID
}

func TestEnsureUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.EnsureUser(ctx, "student@example.edu")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if created.ID == 0 || created.Email != "student@example.edu" {
		t.Fatalf("unexpected user: %+v", created)
	}

	again, err := store.EnsureUser(ctx, "student@example.edu")
	if err != nil {
		t.Fatalf("second EnsureUser failed: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("EnsureUser created a duplicate: %d vs %d", again.ID, created.ID)
	}

	_, err = store.GetUserByEmail(ctx, "missing@example.edu")
	if !errors.Is(err, quiz.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetStudentID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "student@example.edu")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	if err := store.SetStudentID(ctx, user.ID, "S12345"); err != nil {
		t.Fatalf("SetStudentID failed: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, "student@example.edu")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.StudentID != "S12345" {
		t.Fatalf("student id = %q, want S12345", got.StudentID)
	}

	if err := store.SetStudentID(ctx, 9999, "S1"); !errors.Is(err, quiz.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}

func TestListQuizzesAndQuestions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1 := seedQuiz(t, store, "quiz_one", "Quiz One", "CIS 53", 2)
	seedQuiz(t, store, "quiz_two", "Quiz Two", "CIS 21", 1)

	quizzes, err := store.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	if quizzes[0].ClassName != "CIS 21" {
		t.Fatalf("quizzes not ordered by class then name: %+v", quizzes)
	}

	got, err := store.GetQuiz(ctx, id1)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if got.QuizID != "quiz_one" || got.TotalQuestions != 2 {
		t.Fatalf("unexpected quiz: %+v", got)
	}

	questions, err := store.GetQuestions(ctx, id1)
	if err != nil {
		t.Fatalf("GetQuestions failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Options()[3] != "d" {
		t.Fatalf("options not positional: %+v", questions[0])
	}

	if _, err := store.GetQuiz(ctx, 9999); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestResults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.EnsureUser(ctx, "student@example.edu")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	quizID := seedQuiz(t, store, "quiz_one", "Quiz One", "CIS 53", 2)

	if err := store.InsertResult(ctx, user.ID, quizID, 10); err != nil {
		t.Fatalf("InsertResult failed: %v", err)
	}
	if err := store.InsertResult(ctx, user.ID, quizID, 20); err != nil {
		t.Fatalf("InsertResult failed: %v", err)
	}

	results, err := store.ListResultsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListResultsForUser failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != 20 {
		t.Fatalf("results not newest first: %+v", results)
	}
	if results[0].QuizName != "Quiz One" || results[0].ClassName != "CIS 53" || results[0].TotalQuestions != 2 {
		t.Fatalf("join fields missing: %+v", results[0])
	}
	if results[0].SubmittedAt.IsZero() {
		t.Fatal("submitted_at not populated")
	}
}

func TestDumpTables(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.EnsureUser(ctx, "student@example.edu"); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	dump, err := store.DumpTables(ctx)
	if err != nil {
		t.Fatalf("DumpTables failed: %v", err)
	}

	users, ok := dump["users"]
	if !ok {
		t.Fatalf("users table missing from dump: %v", dump)
	}
	if len(users.Rows) != 1 || users.Rows[0]["email"] != "student@example.edu" {
		t.Fatalf("unexpected users dump: %+v", users)
	}
	if _, ok := dump["schema_version"]; !ok {
		t.Fatal("schema_version missing from dump")
	}
	if _, ok := dump["sqlite_sequence"]; ok {
		t.Fatal("non-whitelisted table leaked into dump")
	}
}

func TestRunQueryGuard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.EnsureUser(ctx, "student@example.edu"); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	result, err := store.RunQuery(ctx, "SELECT email FROM users")
	if err != nil {
		t.Fatalf("RunQuery failed: %v", err)
	}
	if len(result.Rows) != 1 || result.Rows[0]["email"] != "student@example.edu" {
		t.Fatalf("unexpected query result: %+v", result)
	}

	rejected := []string{
		"DELETE FROM users",
		"select email from users; drop table users",
		"update users set email = 'x'",
		"pragma table_info(users)",
		"SELECT " + strings.Repeat("1,", 600) + "1",
	}
	for _, query := range rejected {
		if _, err := store.RunQuery(ctx, query); !errors.Is(err, ErrQueryRejected) {
			t.Errorf("query %q: expected ErrQueryRejected, got %v", query, err)
		}
	}
}
