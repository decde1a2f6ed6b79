package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gobwas/glob"

	"github.com/dzonerzy/snapopt/opt"
)

var argHeader = []string{"#", "OPTION", "KIND", "VALUES", "BASE"}

// argRows builds one row per arg of l whose option name matches m. A nil m
// keeps every row.
func argRows(l opt.ArgList, m glob.Glob) [][]string {
	var rows [][]string
	for _, a := range l.All() {
		name := optionLabel(a)
		if m != nil && !m.Match(name) {
			continue
		}
		values := make([]string, 0, a.NumValues())
		for _, v := range a.Values(l) {
			values = append(values, strconv.Quote(v))
		}
		base := "-"
		if bo, ok := a.BaseOrdinal(); ok {
			base = strconv.Itoa(bo)
		}
		rows = append(rows, []string{
			strconv.Itoa(a.Ordinal()),
			name,
			a.Option().Kind().String(),
			strings.Join(values, " "),
			base,
		})
	}
	return rows
}

// optionLabel names the option of a as the user spelled it; inputs have no
// spelling and show as <input>.
func optionLabel(a opt.Arg) string {
	switch a.Option().Kind() {
	case opt.KindInput:
		return "<input>"
	default:
		return a.Spelling()
	}
}

// writeTable prints rows under header with columns padded to the widest
// cell. The option column of unknown args is highlighted.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	line := func(cells []string, style func(col int) lipgloss.Style) string {
		var b strings.Builder
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := ""
			if i < len(cells)-1 {
				pad = strings.Repeat(" ", widths[i]-lipgloss.Width(c))
			}
			b.WriteString(style(i).Render(c))
			b.WriteString(pad)
		}
		return b.String()
	}

	if _, err := fmt.Fprintln(w, line(header, func(int) lipgloss.Style { return headerStyle })); err != nil {
		return err
	}
	for _, r := range rows {
		unknown := len(r) > 2 && r[2] == opt.KindUnknown.String()
		s := line(r, func(col int) lipgloss.Style {
			switch {
			case col == 1 && unknown:
				return unknownStyle
			case col == 1:
				return optionStyle
			case col == 0 || col == len(r)-1:
				return mutedStyle
			default:
				return lipgloss.NewStyle()
			}
		})
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// renderError formats err for the terminal
func renderError(err error) string {
	msg := ErrorStyle.Render("error:") + " " + err.Error()
	var pe *opt.ParseError
	if errors.As(err, &pe) {
		if pe.Index >= 0 {
			msg += SubtitleStyle.Render(fmt.Sprintf(" (at argument %d)", pe.Index))
		}
		if len(pe.Candidates) > 1 {
			msg += "\n  " + mutedStyle.Render("candidates: "+strings.Join(pe.Candidates, ", "))
		}
	}
	return msg
}
