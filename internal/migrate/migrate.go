package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateVersion = errors.New("duplicate migration version")
	ErrBadUnitName      = errors.New("migration file name must be <digits>_<description>.sql")
)

// Unit is one versioned migration: either a raw SQL script or a Go function
// invoked inside the unit's transaction. Exactly one of SQL and Run is set.
// Run must not commit or roll back; the runner owns the transaction.
type Unit struct {
	Version int
	Name    string
	SQL     string
	Run     func(ctx context.Context, tx *sql.Tx) error
}

var sqlUnitName = regexp.MustCompile(`^(\d+)_.+\.sql$`)

// LoadSQLUnits discovers SQL migration scripts at the root of fsys. File names
// carry the version as a leading digit run; anything else with a .sql suffix
// is an error rather than silently skipped.
func LoadSQLUnits(fsys fs.FS) ([]Unit, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var units []Unit
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		match := sqlUnitName.FindStringSubmatch(name)
		if match == nil {
			if len(name) > 4 && name[len(name)-4:] == ".sql" {
				return nil, fmt.Errorf("%w: %s", ErrBadUnitName, name)
			}
			continue
		}

		version, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadUnitName, name)
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		units = append(units, Unit{Version: version, Name: name, SQL: string(script)})
	}
	return units, nil
}

type Runner struct {
	db     *sql.DB
	units  []Unit
	logger *logrus.Logger
}

func NewRunner(db *sql.DB, units []Unit, logger *logrus.Logger) *Runner {
	return &Runner{db: db, units: units, logger: logger}
}

// Run applies every unit whose version exceeds the ledger's current maximum,
// in numeric version order. Each unit's writes and its ledger row commit
// together; a failing unit rolls back and aborts the run, leaving earlier
// units durably applied. Re-running with no new units is a no-op.
func (r *Runner) Run(ctx context.Context) (applied int, err error) {
	if err := ensureLedger(ctx, r.db); err != nil {
		return 0, fmt.Errorf("initializing schema_version: %w", err)
	}

	current, err := currentVersion(ctx, r.db)
	if err != nil {
		return 0, fmt.Errorf("reading current version: %w", err)
	}

	units := make([]Unit, len(r.units))
	copy(units, r.units)
	// Numeric order, not filename order: lexicographic sorting misorders
	// mixed-width prefixes (10_x before 2_x).
	sort.SliceStable(units, func(i, j int) bool { return units[i].Version < units[j].Version })
	for i := 1; i < len(units); i++ {
		if units[i].Version == units[i-1].Version {
			return 0, fmt.Errorf("%w: %d (%s and %s)", ErrDuplicateVersion, units[i].Version, units[i-1].Name, units[i].Name)
		}
	}

	for _, unit := range units {
		if unit.Version <= current {
			continue
		}
		if err := r.apply(ctx, unit); err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", unit.Version, unit.Name, err)
		}
		r.logger.WithFields(logrus.Fields{
			"version": unit.Version,
			"name":    unit.Name,
		}).Info("applied migration")
		applied++
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, unit Unit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if unit.SQL != "" {
		if _, err := tx.ExecContext(ctx, unit.SQL); err != nil {
			return err
		}
	} else if unit.Run != nil {
		if err := unit.Run(ctx, tx); err != nil {
			return err
		}
	} else {
		return errors.New("unit has neither SQL nor Run")
	}

	if err := recordVersion(ctx, tx, unit.Version); err != nil {
		return err
	}
	return tx.Commit()
}
