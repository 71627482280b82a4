package migrations

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classquiz/internal/migrate"
)

func TestFullMigrationRun(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	root := t.TempDir()
	classDir := filepath.Join(root, "class_a")
	require.NoError(t, os.Mkdir(classDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(classDir, "quiz1.yml"), []byte(`name: Quiz One
questions:
  - question: "2+2?"
    options: ["3", "4", "5", "6"]
    answer: "4"
  - question: "Sky color?"
    options: ["Green", "Red", "Blue", "Yellow"]
    answer: "Blue"
`), 0o644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	units, err := Units(root, logger)
	require.NoError(t, err)

	applied, err := migrate.NewRunner(db, units, logger).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, applied)

	var maxVersion int
	require.NoError(t, db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&maxVersion))
	assert.Equal(t, 4, maxVersion)

	var name, class string
	var total int
	require.NoError(t, db.QueryRow(
		`SELECT name, class_name, total_questions FROM quizzes WHERE quiz_id = 'quiz_one'`,
	).Scan(&name, &class, &total))
	assert.Equal(t, "Quiz One", name)
	assert.Equal(t, "CLASS A", class)
	assert.Equal(t, 2, total)

	// Second run: everything applied, nothing duplicated.
	applied, err = migrate.NewRunner(db, units, logger).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	var quizCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM quizzes`).Scan(&quizCount))
	assert.Equal(t, 1, quizCount)
}
