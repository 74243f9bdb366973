package main

import (
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/kvsettings/internal/cli"
)

func createGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			return withApp(cmd, func(app *cli.App) error {
				return app.Get(args[0], path)
			})
		},
	}
	cmd.Flags().StringP("path", "p", "", "Dotted path inside the value, e.g. font.size")
	return cmd
}

func createSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Long: `Store a setting. The value is parsed as JSON; anything that is not
valid JSON is stored as a string. Use --string to always store a string.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			asString, _ := cmd.Flags().GetBool("string")
			return withApp(cmd, func(app *cli.App) error {
				return app.Set(cmd.Context(), args[0], path, args[1], asString)
			})
		},
	}
	cmd.Flags().StringP("path", "p", "", "Dotted path inside the value to set")
	cmd.Flags().BoolP("string", "s", false, "Store the value as a string")
	return cmd
}

func createHasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "has <key>",
		Short: "Exit 0 if a setting exists, 1 otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				found, err := app.Has(args[0])
				if err != nil {
					return err //nolint:wrapcheck // settings errors name the kind
				}
				if !found {
					return &ExitError{Code: 1}
				}
				return nil
			})
		},
	}
}

func createClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <key>",
		Short: "Remove a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *cli.App) error {
				return app.Clear(cmd.Context(), args[0])
			})
		},
	}
}

func createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				return app.List()
			})
		},
	}
}

func createBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the settings file to <file>.bak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				return app.Backup()
			})
		},
	}
}

func createRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the settings file with its backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return withApp(cmd, func(app *cli.App) error {
				return app.Restore(cmd.Context(), yes)
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func createHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes made through kvsettings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd, func(app *cli.App) error {
				return app.History(cmd.Context(), limit)
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	return cmd
}

func createConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				return app.ShowConfig()
			})
		},
	}
}
