package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/wizzomafizzo/kvsettings/internal/journal"
	"github.com/wizzomafizzo/kvsettings/internal/prompt"
	"github.com/wizzomafizzo/kvsettings/internal/settings"
)

// Get prints the value stored under key, or the value at path inside it.
func (a *App) Get(key, path string) error {
	var raw json.RawMessage
	var err error
	if path != "" {
		raw, err = a.store.GetPath(key, path)
	} else {
		raw, err = settings.Get[json.RawMessage](a.store, key)
	}
	if err != nil {
		return err //nolint:wrapcheck // settings errors name the key and kind
	}

	_, err = fmt.Fprint(a.out, formatValue(raw, a.color))
	return err //nolint:wrapcheck // output write
}

// Set stores a value under key. Arguments that are not valid JSON, or any
// argument when asString is set, are stored as JSON strings.
func (a *App) Set(ctx context.Context, key, path, arg string, asString bool) error {
	value := parseValue(arg, asString)

	var err error
	if path != "" {
		err = a.store.SetPath(key, path, value)
	} else {
		err = a.store.Set(key, value)
	}
	if err != nil {
		return err //nolint:wrapcheck // settings errors name the key and kind
	}

	recorded := key
	if path != "" {
		recorded = key + "." + path
	}
	a.record(ctx, journal.OpSet, recorded, value)
	return nil
}

// Has reports whether key is present.
func (a *App) Has(key string) (bool, error) {
	return a.store.HasValue(key) //nolint:wrapcheck // settings errors name the kind
}

// Clear removes key.
func (a *App) Clear(ctx context.Context, key string) error {
	if err := a.store.Clear(key); err != nil {
		return err //nolint:wrapcheck // settings errors name the kind
	}
	a.record(ctx, journal.OpClear, key, nil)
	return nil
}

// List prints every entry as "key = value", one per line.
func (a *App) List() error {
	entries, err := a.store.ListValues()
	if err != nil {
		return err //nolint:wrapcheck // settings errors name the kind
	}

	keyColor := color.New(color.FgGreen)
	if !a.color {
		keyColor.DisableColor()
	}

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(keyColor.Sprint(entry.Key))
		b.WriteString(" = ")
		b.WriteString(formatInline(entry.Value))
		b.WriteString("\n")
	}

	_, err = fmt.Fprint(a.out, b.String())
	return err //nolint:wrapcheck // output write
}

// Backup copies the settings document next to itself.
func (a *App) Backup() error {
	backupPath, err := a.store.Backup()
	if err != nil {
		return err //nolint:wrapcheck // settings errors name the kind
	}
	a.logger.Info().Str("backup", backupPath).Msg("created settings backup")

	_, err = fmt.Fprintf(a.out, "Backup written to %s\n", backupPath)
	return err //nolint:wrapcheck // output write
}

// Restore replaces the settings document with its backup after asking for
// confirmation, unless force is set.
func (a *App) Restore(ctx context.Context, force bool) error {
	backupPath := settings.BackupPath(a.store.Path())
	if !a.store.HasBackup() {
		return fmt.Errorf("no backup found at %s", backupPath)
	}

	if !force {
		if a.prompter == nil {
			return errors.New("restore needs confirmation; pass --yes to skip it")
		}
		ok, err := prompt.Confirm(a.prompter, "Replace "+a.store.Path()+" with its backup?")
		if err != nil {
			return err //nolint:wrapcheck // prompt errors are descriptive
		}
		if !ok {
			return ErrAborted
		}
	}

	if err := a.store.Restore(backupPath); err != nil {
		return err //nolint:wrapcheck // settings errors name the kind
	}
	a.record(ctx, journal.OpRestore, backupPath, nil)

	_, err := fmt.Fprintf(a.out, "Restored %s from %s\n", a.store.Path(), backupPath)
	return err //nolint:wrapcheck // output write
}

// History prints the most recent journaled mutations.
func (a *App) History(ctx context.Context, limit int) error {
	if a.journal == nil {
		return errors.New("journal is disabled in the configuration")
	}

	records, err := a.journal.Recent(ctx, limit)
	if err != nil {
		return err //nolint:wrapcheck // journal errors carry their own context
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s  %-7s %s", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Op, rec.Key)
		if rec.Value != "" {
			fmt.Fprintf(&b, " = %s", rec.Value)
		}
		b.WriteString("\n")
	}

	_, err = fmt.Fprint(a.out, b.String())
	return err //nolint:wrapcheck // output write
}

// ShowConfig prints the effective configuration as YAML.
func (a *App) ShowConfig() error {
	data, err := a.config.YAML()
	if err != nil {
		return err //nolint:wrapcheck // config errors carry their own context
	}
	_, err = a.out.Write(data)
	return err //nolint:wrapcheck // output write
}
