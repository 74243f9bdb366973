package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/kvsettings/internal/cli"
	"github.com/wizzomafizzo/kvsettings/internal/prompt"
)

// createRootCommand creates the main root command that shows help by default.
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kvsettings",
		Short:         "Persistent JSON key/value settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to settings file (overrides config)")

	rootCmd.AddCommand(
		createGetCommand(),
		createSetCommand(),
		createHasCommand(),
		createClearCommand(),
		createListCommand(),
		createBackupCommand(),
		createRestoreCommand(),
		createHistoryCommand(),
		createConfigCommand(),
	)

	return rootCmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withApp opens the app for one command run and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(app *cli.App) error) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	settingsPath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}

	colorize := false
	if out, ok := cmd.OutOrStdout().(*os.File); ok {
		colorize = isTerminal(out)
	}
	color.NoColor = !colorize

	opts := cli.Options{
		ConfigPath:   configPath,
		SettingsPath: settingsPath,
		Out:          cmd.OutOrStdout(),
		Color:        colorize,
	}
	if isTerminal(os.Stdin) {
		prompter := prompt.NewLinerPrompter()
		defer func() { _ = prompter.Close() }()
		opts.Prompter = prompter
	}

	app, err := cli.NewApp(cmd.Context(), opts)
	if err != nil {
		return err //nolint:wrapcheck // app errors carry their own context
	}
	defer func() { _ = app.Close() }()

	app.Logger().SetGlobal()
	if err := fn(app); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
		}
		return err
	}
	return nil
}
