package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"classquiz/internal/backup"
)

var restoreDate string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a compressed database snapshot to the object store",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newBackupService()
		if err != nil {
			return err
		}

		key, err := service.Backup(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Backup uploaded as %s\n", key)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Download a backup and unpack it next to the live database",
	Long: `Download the newest backup and unpack it to the configured restore path.
With --date, the newest backup from that day is used instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service, err := newBackupService()
		if err != nil {
			return err
		}

		key, err := service.Restore(cmd.Context(), restoreDate)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %s to %s\n", key, cfg.Database.RestorePath)
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVar(&restoreDate, "date", "", "restore the newest backup from this day (YYYY-MM-DD)")
}

func newBackupService() (*backup.Service, error) {
	if !cfg.Backup.Enabled {
		return nil, errors.New("backups are not enabled in the configuration")
	}
	objects, err := backup.NewMinioStore(cfg.Backup)
	if err != nil {
		return nil, err
	}
	return backup.New(objects, cfg.Database.Path, cfg.Database.RestorePath, logger), nil
}
