package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linkshelf/internal/app"
	"linkshelf/internal/config"
	"linkshelf/internal/logger"
	"linkshelf/internal/styles"
)

var (
	dataDir string
	verbose bool
	shelf   *app.App
)

var rootCmd = &cobra.Command{
	Use:   "linkshelf-cli",
	Short: "CLI for managing a categorized link tree and its archive",
	Long: `linkshelf-cli manages a tree of categories and links.

Categories and links can be archived instead of deleted. Archived nodes
remember where they came from and can be restored there later. Rating
changes archive the previous value so it can be brought back.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		shelf, err = app.New(cfg, logger.New(cfg.LogLevel, cfg.PrettyLog))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shelf == nil {
			return nil
		}
		err := shelf.Close()
		shelf = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorMsg.Render("Error:"), err)
		if shelf != nil {
			shelf.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory holding the tree database and archive file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// GetApp returns the initialized application
func GetApp() *app.App {
	return shelf
}

// mutate runs fn against the application and prints the message it returns
func mutate(fn func(a *app.App) (string, error)) error {
	a := GetApp()
	var message string
	err := a.Mutate(func() error {
		var err error
		message, err = fn(a)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Println(styles.Success.Render(message))
	return nil
}
