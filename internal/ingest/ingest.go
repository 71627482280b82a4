package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"classquiz/internal/content"
)

// DBTX is the slice of database/sql shared by *sql.DB and *sql.Tx. The
// migration runner hands the ingestor its unit transaction; tests and the
// standalone ingest command pass the bare connection.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Summary reports one ingestion pass. Processed = Updated + Added.
type Summary struct {
	Processed        int
	Updated          int
	Added            int
	SkippedDocuments int
	SkippedQuestions int
}

type Ingestor struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *Ingestor {
	return &Ingestor{logger: logger}
}

// Run walks the content root and reconciles every quiz document against the
// store. Malformed documents and questions are skipped with a warning; only a
// failure to read the root itself aborts the pass.
func (in *Ingestor) Run(ctx context.Context, db DBTX, root string) (Summary, error) {
	files, err := content.Walk(root)
	if err != nil {
		return Summary{}, fmt.Errorf("reading content root %s: %w", root, err)
	}

	var summary Summary
	in.logger.WithField("root", root).Info("starting quiz ingestion")

	for _, file := range files {
		if err := in.ingestDocument(ctx, db, file, &summary); err != nil {
			summary.SkippedDocuments++
			in.logger.WithField("path", file.Path).WithError(err).Warn("skipping quiz document")
		}
	}

	in.logger.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"updated":   summary.Updated,
		"added":     summary.Added,
	}).Info("quiz ingestion complete")
	return summary, nil
}

func (in *Ingestor) ingestDocument(ctx context.Context, db DBTX, file content.File, summary *Summary) error {
	doc, err := content.ParseDocument(file.Path)
	if err != nil {
		return err
	}

	quizID, rewritten, err := content.EnsureID(file.Path, doc)
	if err != nil {
		return err
	}
	if rewritten {
		in.logger.WithFields(logrus.Fields{
			"id":   quizID,
			"path": file.Path,
		}).Info("added derived id to quiz document")
	}

	rowID, existed, err := resolveQuiz(ctx, db, quizID, doc.Name)
	if err != nil {
		return err
	}

	if existed {
		if _, err := db.ExecContext(ctx,
			`UPDATE quizzes SET name = ?, quiz_id = ?, class_name = ? WHERE id = ?`,
			doc.Name, quizID, file.ClassName, rowID,
		); err != nil {
			return err
		}
		// Full replace: the document's question list is authoritative.
		if _, err := db.ExecContext(ctx, `DELETE FROM quiz_questions WHERE quiz_id = ?`, rowID); err != nil {
			return err
		}
		summary.Updated++
	} else {
		result, err := db.ExecContext(ctx,
			`INSERT INTO quizzes (name, quiz_id, class_name) VALUES (?, ?, ?)`,
			doc.Name, quizID, file.ClassName,
		)
		if err != nil {
			return err
		}
		rowID, err = result.LastInsertId()
		if err != nil {
			return err
		}
		summary.Added++
	}

	inserted := 0
	for _, question := range doc.Questions {
		if err := question.Validate(); err != nil {
			summary.SkippedQuestions++
			in.logger.WithFields(logrus.Fields{
				"path": file.Path,
				"quiz": doc.Name,
			}).WithError(err).Warn("skipping malformed question")
			continue
		}

		if _, err := db.ExecContext(ctx,
			`INSERT INTO quiz_questions (quiz_id, question, option_a, option_b, option_c, option_d, correct_answer)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rowID, question.Text,
			question.Options[0], question.Options[1], question.Options[2], question.Options[3],
			question.Answer,
		); err != nil {
			return err
		}
		inserted++
	}

	// The stored count is this pass's successful inserts, keeping
	// total_questions equal to the rows that actually exist after the replace.
	if _, err := db.ExecContext(ctx, `UPDATE quizzes SET total_questions = ? WHERE id = ?`, inserted, rowID); err != nil {
		return err
	}

	summary.Processed++
	in.logger.WithFields(logrus.Fields{
		"quiz":      doc.Name,
		"id":        quizID,
		"class":     file.ClassName,
		"questions": inserted,
		"path":      file.Path,
	}).Info("loaded quiz")
	return nil
}

// resolveQuiz finds the target row for a document: by stable id first, then by
// exact name for rows that predate quiz ids. A name matching several rows is
// resolved to the lowest surrogate id, so re-runs always pick the same row.
func resolveQuiz(ctx context.Context, db DBTX, quizID, name string) (rowID int64, existed bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT id FROM quizzes WHERE quiz_id = ?`, quizID).Scan(&rowID)
	if err == nil {
		return rowID, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	err = db.QueryRowContext(ctx, `SELECT id FROM quizzes WHERE name = ? ORDER BY id LIMIT 1`, name).Scan(&rowID)
	if err == nil {
		return rowID, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}
	return 0, false, nil
}
