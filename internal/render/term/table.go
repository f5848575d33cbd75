package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const maxCellWidth = 40

// table draws a box-drawn table. Widths are measured on the unstyled text
// so colors and wide glyphs do not misalign columns.
type table struct {
	headers []string
	rows    [][]cell
	// placeholder replaces the body with one row spanning every column.
	placeholder string
}

type cell struct {
	text  string
	style *lipgloss.Style
}

func plain(text string) cell { return cell{text: text} }

func styled(text string, style lipgloss.Style) cell { return cell{text: text, style: &style} }

func (t table) widths() []int {
	widths := lo.Map(t.headers, func(h string, _ int) int { return lipgloss.Width(h) })
	for _, row := range t.rows {
		for i, c := range row {
			widths[i] = max(widths[i], min(lipgloss.Width(c.text), maxCellWidth))
		}
	}
	if t.placeholder != "" {
		total := lo.Sum(widths) + 3*(len(widths)-1)
		if extra := lipgloss.Width(t.placeholder) - total; extra > 0 {
			widths[len(widths)-1] += extra
		}
	}
	return widths
}

func (r *Renderer) renderTable(t table) string {
	widths := t.widths()
	border := r.style().Foreground(r.theme.Muted)
	var b strings.Builder

	b.WriteString(r.tableBorder(widths, "┌", "┬", "┐", border))
	b.WriteString("\n")
	headers := lo.Map(t.headers, func(h string, _ int) cell { return styled(h, r.style().Bold(true)) })
	b.WriteString(r.tableRow(headers, widths, border))
	b.WriteString("\n")

	if t.placeholder != "" {
		b.WriteString(r.tableBorder(widths, "├", "┴", "┤", border))
		b.WriteString("\n")
		span := lo.Sum(widths) + 3*(len(widths)-1)
		b.WriteString(r.apply("│", border))
		b.WriteString(" " + pad(r.muted(t.placeholder), t.placeholder, span) + " ")
		b.WriteString(r.apply("│", border))
		b.WriteString("\n")
		b.WriteString(r.tableBorder([]int{span}, "└", "", "┘", border))
		return b.String()
	}

	b.WriteString(r.tableBorder(widths, "├", "┼", "┤", border))
	b.WriteString("\n")
	for _, row := range t.rows {
		b.WriteString(r.tableRow(row, widths, border))
		b.WriteString("\n")
	}
	b.WriteString(r.tableBorder(widths, "└", "┴", "┘", border))
	return b.String()
}

func (r *Renderer) tableRow(row []cell, widths []int, border lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(r.apply("│", border))
	for i, c := range row {
		text := truncate(c.text, widths[i])
		rendered := text
		if c.style != nil {
			rendered = r.apply(text, *c.style)
		}
		b.WriteString(" " + pad(rendered, text, widths[i]) + " ")
		b.WriteString(r.apply("│", border))
	}
	return b.String()
}

func (r *Renderer) tableBorder(widths []int, left, mid, right string, border lipgloss.Style) string {
	parts := lo.Map(widths, func(w int, _ int) string { return strings.Repeat("─", w+2) })
	return r.apply(left+strings.Join(parts, mid)+right, border)
}

// pad right-pads rendered to width, measuring the unstyled raw text.
func pad(rendered, raw string, width int) string {
	if gap := width - lipgloss.Width(raw); gap > 0 {
		return rendered + strings.Repeat(" ", gap)
	}
	return rendered
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
