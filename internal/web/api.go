// Package web is the JSON API over the quiz store: magic-link login, quiz
// selection and submission, the results dashboard, and the admin console.
package web

import (
	"context"

	"github.com/sirupsen/logrus"

	"classquiz/internal/auth"
	"classquiz/internal/mail"
	"classquiz/internal/quiz"
	"classquiz/internal/store"
)

// AdminStore is the admin console's view of the store.
type AdminStore interface {
	DumpTables(ctx context.Context) (map[string]store.TableRows, error)
	RunQuery(ctx context.Context, query string) (store.TableRows, error)
}

// BackupRunner triggers the backup jobs from the admin endpoints. Nil when
// backups are not configured.
type BackupRunner interface {
	Backup(ctx context.Context) (string, error)
	Restore(ctx context.Context, date string) (string, error)
}

type API struct {
	users   quiz.UserStore
	quizzes quiz.QuizStore
	results quiz.ResultStore
	admin   AdminStore
	backups BackupRunner

	tokens     *auth.Tokens
	sender     mail.Sender
	adminEmail string
	baseURL    string
	logger     *logrus.Logger
}

type Config struct {
	Users   quiz.UserStore
	Quizzes quiz.QuizStore
	Results quiz.ResultStore
	Admin   AdminStore
	Backups BackupRunner

	Tokens     *auth.Tokens
	Sender     mail.Sender
	AdminEmail string
	BaseURL    string
	Logger     *logrus.Logger
}

func NewAPI(cfg Config) *API {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &API{
		users:      cfg.Users,
		quizzes:    cfg.Quizzes,
		results:    cfg.Results,
		admin:      cfg.Admin,
		backups:    cfg.Backups,
		tokens:     cfg.Tokens,
		sender:     cfg.Sender,
		adminEmail: cfg.AdminEmail,
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}
