package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"classquiz/internal/auth"
	"classquiz/internal/backup"
	"classquiz/internal/mail"
	"classquiz/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		// The schema and quiz content are brought up to date on every start,
		// so a fresh deployment only needs this one command.
		if _, err := runMigrations(ctx, st); err != nil {
			return err
		}

		var sender mail.Sender = mail.LogSender{Logger: logger}
		if cfg.Mail.Configured() {
			sender = mail.NewSMTPSender(cfg.Mail)
		}

		var backups web.BackupRunner
		if cfg.Backup.Enabled {
			service, err := newBackupService()
			if err != nil {
				return err
			}
			backups = service
			if cfg.Backup.Nightly {
				go nightlyBackups(ctx, service)
			}
		}

		api := web.NewAPI(web.Config{
			Users:      st,
			Quizzes:    st,
			Results:    st,
			Admin:      st,
			Backups:    backups,
			Tokens:     auth.New(cfg.Auth.SecretKey),
			Sender:     sender,
			AdminEmail: cfg.Auth.AdminEmail,
			BaseURL:    cfg.Server.BaseURL,
			Logger:     logger,
		})

		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           web.NewRouter(api),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errs := make(chan error, 1)
		go func() {
			logger.WithField("addr", cfg.Server.Addr).Info("server listening")
			errs <- server.ListenAndServe()
		}()

		select {
		case err := <-errs:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
		return nil
	},
}

// nightlyBackups uploads a backup every night at midnight until ctx is done.
func nightlyBackups(ctx context.Context, service *backup.Service) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		if _, err := service.Backup(ctx); err != nil {
			logger.WithError(err).Error("nightly backup failed")
		}
	}
}
