package store

import (
	"context"
	"database/sql"
	"errors"

	"classquiz/internal/quiz"
)

func (s *Store) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, name, class_name, total_questions
		 FROM quizzes
		 ORDER BY class_name, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]quiz.Quiz, 0)
	for rows.Next() {
		item, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, item)
	}
	return quizzes, rows.Err()
}

func (s *Store) GetQuiz(ctx context.Context, rowID int64) (quiz.Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_id, name, class_name, total_questions FROM quizzes WHERE id = ?`,
		rowID)

	item, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Quiz{}, quiz.ErrQuizNotFound
		}
		return quiz.Quiz{}, err
	}
	return item, nil
}

func (s *Store) GetQuestions(ctx context.Context, quizRowID int64) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer
		 FROM quiz_questions
		 WHERE quiz_id = ?
		 ORDER BY id`,
		quizRowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var q quiz.Question
		if err := rows.Scan(&q.ID, &q.QuizRowID, &q.Text,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (quiz.Quiz, error) {
	var item quiz.Quiz
	var quizID, className sql.NullString
	if err := row.Scan(&item.ID, &quizID, &item.Name, &className, &item.TotalQuestions); err != nil {
		return quiz.Quiz{}, err
	}
	item.QuizID = quizID.String
	item.ClassName = className.String
	return item, nil
}
