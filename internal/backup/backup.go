// Package backup snapshots the SQLite database into an S3-compatible object
// store and restores from it.
package backup

import (
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "db_backup_"

var ErrNoBackups = errors.New("no backup files found")

type Service struct {
	objects     ObjectStore
	dbPath      string
	restorePath string
	logger      *logrus.Logger
}

func New(objects ObjectStore, dbPath, restorePath string, logger *logrus.Logger) *Service {
	return &Service{objects: objects, dbPath: dbPath, restorePath: restorePath, logger: logger}
}

// Backup snapshots the live database with VACUUM INTO, gzips the snapshot and
// uploads it under a timestamped key. Returns the object key.
func (s *Service) Backup(ctx context.Context) (string, error) {
	tmpDir, err := os.MkdirTemp("", "classquiz-backup-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "snapshot.db")
	if err := s.snapshot(ctx, snapshot); err != nil {
		return "", fmt.Errorf("snapshotting database: %w", err)
	}

	compressed := filepath.Join(tmpDir, "snapshot.gz")
	if err := gzipFile(snapshot, compressed); err != nil {
		return "", fmt.Errorf("compressing snapshot: %w", err)
	}

	key := keyPrefix + time.Now().Format("2006-01-02_15-04-05") + ".gz"
	file, err := os.Open(compressed)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if err := s.objects.Put(ctx, key, file, info.Size()); err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	s.logger.WithFields(logrus.Fields{"key": key, "bytes": info.Size()}).Info("backup uploaded")
	return key, nil
}

// Restore downloads the newest backup (optionally the newest from a given
// YYYY-MM-DD day) and gunzips it to the restore path. The live database file
// is never written directly.
func (s *Service) Restore(ctx context.Context, date string) (string, error) {
	objects, err := s.objects.List(ctx, keyPrefix)
	if err != nil {
		return "", fmt.Errorf("listing backups: %w", err)
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	if date != "" {
		wanted, err := time.Parse("2006-01-02", date)
		if err != nil {
			return "", fmt.Errorf("invalid restore date %q: %w", date, err)
		}
		filtered := objects[:0]
		for _, object := range objects {
			if object.LastModified.Format("2006-01-02") == wanted.Format("2006-01-02") {
				filtered = append(filtered, object)
			}
		}
		objects = filtered
	}

	if len(objects) == 0 {
		return "", ErrNoBackups
	}

	chosen := objects[0]
	s.logger.WithField("key", chosen.Key).Info("downloading backup")

	body, err := s.objects.Get(ctx, chosen.Key)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", chosen.Key, err)
	}
	defer body.Close()

	if err := gunzipTo(body, s.restorePath); err != nil {
		return "", fmt.Errorf("decompressing %s: %w", chosen.Key, err)
	}

	s.logger.WithFields(logrus.Fields{"key": chosen.Key, "path": s.restorePath}).Info("backup restored")
	return chosen.Key, nil
}

// snapshot runs VACUUM INTO on a short-lived connection, producing a
// consistent copy without blocking the live database.
func (s *Service) snapshot(ctx context.Context, target string) error {
	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	escaped := strings.ReplaceAll(target, "'", "''")
	_, err = db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", escaped))
	return err
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := gzip.NewWriter(out)
	if _, err := io.Copy(writer, in); err != nil {
		return err
	}
	return writer.Close()
}

func gunzipTo(src io.Reader, dst string) error {
	reader, err := gzip.NewReader(src)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return err
	}
	return out.Close()
}
