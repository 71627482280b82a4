package store

import (
	"context"
	"database/sql"
	"time"

	"classquiz/internal/quiz"
)

func (s *Store) InsertResult(ctx context.Context, userID, quizRowID int64, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (user_id, quiz_id, score) VALUES (?, ?, ?)`,
		userID, quizRowID, score)
	return err
}

// ListResultsForUser returns the user's results joined with quiz details,
// newest first, for the dashboard.
func (s *Store) ListResultsForUser(ctx context.Context, userID int64) ([]quiz.ResultRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quizzes.name, quizzes.class_name, quizzes.total_questions,
		        quiz_results.score, quiz_results.timestamp
		 FROM quiz_results
		 JOIN quizzes ON quiz_results.quiz_id = quizzes.id
		 WHERE quiz_results.user_id = ?
		 ORDER BY quiz_results.timestamp DESC, quiz_results.id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]quiz.ResultRow, 0)
	for rows.Next() {
		var row quiz.ResultRow
		var className sql.NullString
		var submittedAt time.Time
		if err := rows.Scan(&row.QuizName, &className, &row.TotalQuestions, &row.Score, &submittedAt); err != nil {
			return nil, err
		}
		row.ClassName = className.String
		row.SubmittedAt = submittedAt.UTC()
		results = append(results, row)
	}
	return results, rows.Err()
}
