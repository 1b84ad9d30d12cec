package formatters

import (
	"fmt"
	"os"

	"github.com/flanksource/doorsheet/api"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// FormatOptions contains options for formatting catalog listings
type FormatOptions struct {
	Format  string
	NoColor bool

	// Format-specific boolean flags (mutually exclusive)
	JSON   bool
	YAML   bool
	CSV    bool
	Pretty bool
}

// BindPFlags adds formatting flags to the provided pflag set (for cobra)
func BindPFlags(flags *pflag.FlagSet, options *FormatOptions) {
	flags.StringVar(&options.Format, "format", api.FormatPretty, "Output format: pretty, json, yaml, csv")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored output")

	flags.BoolVar(&options.JSON, "json", false, "Output in JSON format")
	flags.BoolVar(&options.YAML, "yaml", false, "Output in YAML format")
	flags.BoolVar(&options.CSV, "csv", false, "Output in CSV format")
	flags.BoolVar(&options.Pretty, "pretty", false, "Output in pretty format (default)")
}

// ResolveFormat resolves the output format from format-specific flags
func (options *FormatOptions) ResolveFormat() error {
	formatCount := 0
	selectedFormat := ""
	for format, set := range map[string]bool{
		api.FormatJSON:   options.JSON,
		api.FormatYAML:   options.YAML,
		api.FormatCSV:    options.CSV,
		api.FormatPretty: options.Pretty,
	} {
		if set {
			formatCount++
			selectedFormat = format
		}
	}

	if formatCount > 1 {
		return fmt.Errorf("multiple format flags specified; please use only one format flag")
	}
	if formatCount == 1 {
		options.Format = selectedFormat
	}
	if options.Format == "" {
		options.Format = api.FormatPretty
	}
	return nil
}

// DetectColor disables color when stdout is not a terminal or the
// environment asks for no color (NO_COLOR, CLICOLOR=0)
func (options *FormatOptions) DetectColor() {
	if termenv.EnvNoColor() || !term.IsTerminal(int(os.Stdout.Fd())) {
		options.NoColor = true
	}
}

// TerminalWidth returns the width of stdout, or 0 when it is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
