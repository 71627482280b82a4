package quiz

import (
	"context"
	"errors"
	"time"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrUserNotFound = errors.New("user not found")
)

// Quiz is one multiple-choice quiz as stored. ID is the surrogate row id owned
// by the store; QuizID is the stable slug derived from the quiz name (empty on
// legacy rows ingested before slugs existed).
type Quiz struct {
	ID             int64
	QuizID         string
	Name           string
	ClassName      string
	TotalQuestions int
}

// Question is a four-option multiple-choice question. CorrectAnswer always
// equals one of the four option texts.
type Question struct {
	ID            int64
	QuizRowID     int64
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
}

// Options returns the four options in positional order.
func (q Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

type User struct {
	ID        int64
	Email     string
	StudentID string
}

type Result struct {
	ID          int64
	UserID      int64
	QuizRowID   int64
	Score       int
	SubmittedAt time.Time
}

// ResultRow is a dashboard entry: a result joined with its quiz.
type ResultRow struct {
	QuizName       string
	ClassName      string
	Score          int
	TotalQuestions int
	SubmittedAt    time.Time
}

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	EnsureUser(ctx context.Context, email string) (User, error)
	SetStudentID(ctx context.Context, userID int64, studentID string) error
}

type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	GetQuiz(ctx context.Context, rowID int64) (Quiz, error)
	GetQuestions(ctx context.Context, quizRowID int64) ([]Question, error)
}

type ResultStore interface {
	InsertResult(ctx context.Context, userID, quizRowID int64, score int) error
	ListResultsForUser(ctx context.Context, userID int64) ([]ResultRow, error)
}
