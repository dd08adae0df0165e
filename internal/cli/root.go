package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olenko/satchel/internal/app"
	"github.com/olenko/satchel/internal/tui"
)

var (
	appInstance *app.App
	logger      *zap.Logger

	userFlag    string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "satchel",
	Short: "A personal contacts and notes assistant",
	Long: `Satchel keeps contacts and tagged notes in an encrypted per-user book:
phone numbers, birthdays, freeform notes, and search across all of it.

By default, running satchel without arguments starts the interactive
session. Use subcommands for one-shot operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Registration and help run before any user session exists
		switch cmd.Name() {
		case "register", "help", "completion", "__complete", "__completeNoDesc":
			return nil
		}

		logger = zap.NewNop()
		if verboseFlag {
			var err error
			logger, err = zap.NewDevelopmentConfig().Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}

		a, err := app.New(cmd.Context(), userFlag, logger)
		if err != nil {
			return err
		}
		appInstance = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appInstance != nil {
			_ = appInstance.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive session
		return tui.Run(appInstance)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User whose book to open (defaults to the last one used)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	// Add all subcommands
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(resetCmd)
}
