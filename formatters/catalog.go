package formatters

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/catalog"
	"gopkg.in/yaml.v3"
)

// RiskEntry is the Entry.Kind of risk levels
const RiskEntry = "risk"

// Entry is one selectable catalog item as listed to users
type Entry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Info  string `json:"info,omitempty" yaml:"info,omitempty"`
}

// Entries flattens cat in listing order: hazards, obligations,
// prohibitions, then risk levels. kinds restricts the output when non-empty.
func Entries(cat *catalog.Catalog, kinds ...string) []Entry {
	want := func(kind string) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, k := range kinds {
			if strings.EqualFold(k, kind) {
				return true
			}
		}
		return false
	}

	var out []Entry
	if want(api.KindHazard) {
		for _, h := range cat.Hazards() {
			out = append(out, Entry{Kind: api.KindHazard, Key: h.Key, Label: h.Label, Icon: h.Icon, Info: h.Info})
		}
	}
	for _, signs := range [][]catalog.SignIcon{cat.Obligations(), cat.Prohibitions()} {
		for _, s := range signs {
			if want(string(s.Kind)) {
				out = append(out, Entry{Kind: string(s.Kind), Key: s.Key, Label: s.Label, Icon: s.Icon, Info: s.Info})
			}
		}
	}
	if want(RiskEntry) {
		for _, r := range cat.Risks() {
			out = append(out, Entry{Kind: RiskEntry, Key: r.Key, Label: r.Label, Icon: r.Template, Info: r.Info})
		}
	}
	return out
}

// Format renders entries in the resolved format of options
func Format(entries []Entry, options FormatOptions) (string, error) {
	switch options.Format {
	case api.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case api.FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case api.FormatCSV:
		return formatCSV(entries)
	case api.FormatPretty, "":
		f := NewPrettyFormatter()
		f.NoColor = options.NoColor
		f.MaxWidth = TerminalWidth()
		return f.Format(entries), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", options.Format)
	}
}

func formatCSV(entries []Entry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"kind", "key", "label", "icon", "info"}); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Kind, e.Key, e.Label, e.Icon, e.Info}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// Theme defines the colors of pretty output
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("#8A2BE2"), // BlueViolet
		Muted:   lipgloss.Color("#808080"), // Gray
	}
}

// PrettyFormatter renders entries as a bordered table
type PrettyFormatter struct {
	Theme   Theme
	NoColor bool
	// MaxWidth caps the table width, 0 means unlimited
	MaxWidth int
}

// NewPrettyFormatter creates a new formatter with default theme
func NewPrettyFormatter() *PrettyFormatter {
	return &PrettyFormatter{Theme: DefaultTheme()}
}

const (
	minColumnWidth = 3
	maxColumnWidth = 60
)

// Format renders the kind, key, label and info columns. Icon paths are
// left out of the table; use json or yaml to see them.
func (f *PrettyFormatter) Format(entries []Entry) string {
	rows := [][]string{{"KIND", "KEY", "LABEL", "INFO"}}
	for _, e := range entries {
		info := strings.Join(strings.Fields(e.Info), " ")
		if e.Kind == RiskEntry && info == "" {
			info = filepath.Base(e.Icon)
		}
		rows = append(rows, []string{e.Kind, e.Key, e.Label, info})
	}

	colWidths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
		}
	}
	for i := range colWidths {
		colWidths[i] = min(max(colWidths[i], minColumnWidth), maxColumnWidth) + 2
	}
	f.fitWidth(colWidths)

	borderStyle := lipgloss.NewStyle()
	headerStyle := lipgloss.NewStyle().Bold(true)
	if !f.NoColor {
		borderStyle = borderStyle.Foreground(f.Theme.Muted)
		headerStyle = headerStyle.Foreground(f.Theme.Primary)
	}

	var result strings.Builder
	result.WriteString(f.createTableBorder(colWidths, "┌", "┬", "┐", "─", borderStyle))
	result.WriteString("\n")
	result.WriteString(f.formatTableRow(rows[0], colWidths, borderStyle, headerStyle))
	result.WriteString("\n")
	if len(rows) > 1 {
		result.WriteString(f.createTableBorder(colWidths, "├", "┼", "┤", "─", borderStyle))
		result.WriteString("\n")
	}
	for _, row := range rows[1:] {
		result.WriteString(f.formatTableRow(row, colWidths, borderStyle, lipgloss.NewStyle()))
		result.WriteString("\n")
	}
	result.WriteString(f.createTableBorder(colWidths, "└", "┴", "┘", "─", borderStyle))
	result.WriteString("\n")
	return result.String()
}

// fitWidth shrinks columns, last first, so the table fits MaxWidth
func (f *PrettyFormatter) fitWidth(colWidths []int) {
	if f.MaxWidth <= 0 {
		return
	}
	over := len(colWidths) + 1 - f.MaxWidth
	for _, w := range colWidths {
		over += w
	}
	for i := len(colWidths) - 1; i >= 0 && over > 0; i-- {
		shrink := min(over, colWidths[i]-(minColumnWidth+2))
		if shrink > 0 {
			colWidths[i] -= shrink
			over -= shrink
		}
	}
}

func (f *PrettyFormatter) formatTableRow(row []string, colWidths []int, borderStyle, cellStyle lipgloss.Style) string {
	var result strings.Builder

	result.WriteString(f.applyStyle("│", borderStyle))
	for i, cell := range row {
		cell = truncate(cell, colWidths[i]-2)
		padding := colWidths[i] - lipgloss.Width(cell)

		result.WriteString(" ")
		result.WriteString(f.applyStyle(cell, cellStyle))
		if padding > 1 {
			result.WriteString(strings.Repeat(" ", padding-1))
		}
		result.WriteString(f.applyStyle("│", borderStyle))
	}
	return result.String()
}

func (f *PrettyFormatter) createTableBorder(colWidths []int, left, mid, right, fill string, style lipgloss.Style) string {
	var result strings.Builder

	result.WriteString(f.applyStyle(left, style))
	for i, width := range colWidths {
		result.WriteString(f.applyStyle(strings.Repeat(fill, width), style))
		if i < len(colWidths)-1 {
			result.WriteString(f.applyStyle(mid, style))
		}
	}
	result.WriteString(f.applyStyle(right, style))
	return result.String()
}

// applyStyle applies a lipgloss style if colors are enabled
func (f *PrettyFormatter) applyStyle(text string, style lipgloss.Style) string {
	if f.NoColor {
		return text
	}
	return style.Render(text)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
