package cli

import (
	"encoding/json"

	"github.com/tidwall/pretty"
)

// parseValue turns a command-line argument into the JSON value to store.
func parseValue(arg string, asString bool) json.RawMessage {
	if !asString && json.Valid([]byte(arg)) {
		return json.RawMessage(pretty.Ugly([]byte(arg)))
	}
	quoted, _ := json.Marshal(arg) //nolint:errchkjson // strings always marshal
	return quoted
}

// formatValue renders a stored value for display, indented and optionally
// colorized.
func formatValue(raw json.RawMessage, colorize bool) string {
	out := pretty.PrettyOptions(raw, &pretty.Options{Indent: "  ", Width: 80})
	if colorize {
		out = pretty.Color(out, nil)
	}
	return string(out)
}

// formatInline renders a stored value on a single line.
func formatInline(raw json.RawMessage) string {
	return string(pretty.Ugly(raw))
}
