package cmd

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/otherjamesbrown/mintel-cli/config"
)

// dateDisplayLayout renders dates for terminal output.
const dateDisplayLayout = "2006-01-02 15:04 MST"

// output renders v according to format, falling back to textFn for the
// terminal format.
func output(w io.Writer, format config.OutputFormat, v interface{}, textFn func() error) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return textFn()
	}
}

// resolveFormat applies the --output flag over the configured default.
func resolveFormat(cfg *config.CLIConfig, flag string) config.OutputFormat {
	if flag != "" {
		return config.OutputFormat(flag)
	}
	return cfg.OutputFormat
}

// displayTime formats a timestamp in the configured zone.
func displayTime(cfg *config.CLIConfig, t time.Time) string {
	return t.In(cfg.Location()).Format(dateDisplayLayout)
}
