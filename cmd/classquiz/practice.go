package main

import (
	"os"

	"github.com/spf13/cobra"

	"classquiz/internal/cli"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Take a quiz interactively in the terminal",
	Long:  `Take a stored quiz from the command line. Practice runs are not scored against your account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		return cli.Run(cmd.Context(), st, os.Stdin, os.Stdout)
	},
}
