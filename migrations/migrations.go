// Package migrations defines the ordered migration units for the classquiz
// store: raw SQL scripts embedded from this directory, plus procedural units
// registered here with a fixed version number.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/sirupsen/logrus"

	"classquiz/internal/ingest"
	"classquiz/internal/migrate"
)

//go:embed *.sql
var files embed.FS

// Units returns every migration unit in registration order; the runner sorts
// them numerically. contentRoot points at the quiz document tree consumed by
// the loader unit.
func Units(contentRoot string, logger *logrus.Logger) ([]migrate.Unit, error) {
	units, err := migrate.LoadSQLUnits(files)
	if err != nil {
		return nil, err
	}

	units = append(units, migrate.Unit{
		Version: 4,
		Name:    "4_load_quizzes",
		Run: func(ctx context.Context, tx *sql.Tx) error {
			_, err := ingest.New(logger).Run(ctx, tx, contentRoot)
			return err
		},
	})

	return units, nil
}
