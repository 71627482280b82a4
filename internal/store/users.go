package store

import (
	"context"
	"database/sql"
	"errors"

	"classquiz/internal/quiz"
)

func (s *Store) GetUserByEmail(ctx context.Context, email string) (quiz.User, error) {
	var user quiz.User
	var studentID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, student_id FROM users WHERE email = ?`,
		email,
	).Scan(&user.ID, &user.Email, &studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.User{}, quiz.ErrUserNotFound
		}
		return quiz.User{}, err
	}
	user.StudentID = studentID.String
	return user, nil
}

// EnsureUser returns the user for email, creating the row on first login
// request; there is no separate registration step.
func (s *Store) EnsureUser(ctx context.Context, email string) (quiz.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, quiz.ErrUserNotFound) {
		return quiz.User{}, err
	}

	result, err := s.db.ExecContext(ctx, `INSERT INTO users (email) VALUES (?)`, email)
	if err != nil {
		return quiz.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return quiz.User{}, err
	}
	return quiz.User{ID: id, Email: email}, nil
}

func (s *Store) SetStudentID(ctx context.Context, userID int64, studentID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET student_id = ? WHERE id = ?`, studentID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return quiz.ErrUserNotFound
	}
	return nil
}
