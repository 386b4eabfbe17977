package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tomlord1122/notes/internal/domain"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// printNotesTable prints notes in a table format.
func printNotesTable(w io.Writer, notes []domain.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}
	fmt.Fprint(w, formatNotesTable(notes))
}

func formatNotesTable(notes []domain.Note) string {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			strconv.FormatInt(n.ID, 10),
			statusLabel(n.Status),
			truncateTableCell(n.Title),
			truncateTableCell(n.Content),
		})
	}
	return formatTable([]string{"ID", "STATUS", "TITLE", "CONTENT"}, rows)
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusDone:
		return doneStyle.Render(string(s))
	case domain.StatusPending:
		return pendingStyle.Render(string(s))
	}
	return mutedStyle.Render("-")
}

func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string, style *lipgloss.Style) {
		for i, cell := range row {
			padding := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			builder.WriteString(strings.Repeat(" ", padding+2))
		}
	}

	writeRow(headers, &headerStyle)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return builder.String()
}

func truncateTableCell(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
	if utf8.RuneCountInString(value) <= tableCellMaxWidth {
		return value
	}
	max := tableCellMaxWidth - utf8.RuneCountInString(tableCellEllipsis)
	return string([]rune(value)[:max]) + tableCellEllipsis
}
