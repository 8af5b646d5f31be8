package styles

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/cinelens/engine"
)

// ============================================================================
// DASHBOARD TEXT RENDERING
// ============================================================================
// Panels render top to bottom: tables as bordered tables, metrics as
// "label: value" lines, charts as labelled bars, notices in warn colour.
// ============================================================================

const barWidth = 30

// RenderDashboard renders a dashboard as styled text. Tables longer than
// maxRows are cut (maxRows <= 0 renders every row).
func RenderDashboard(d *engine.Dashboard, maxRows int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎬 " + d.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(criteriaLine(d.Criteria)))
	b.WriteString("\n\n")

	for _, p := range d.Panels {
		b.WriteString(RenderPanel(p, maxRows))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPanel renders a single panel.
func RenderPanel(p engine.Panel, maxRows int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(p.Title))
	b.WriteString("\n")

	switch p.Type {
	case "notice":
		b.WriteString(warnStyle.Render(p.Notice))
		b.WriteString("\n")
	case "metrics":
		for _, m := range p.Metrics {
			line := fmt.Sprintf("%s: %s", m.Label, m.Value)
			if m.Delta != "" {
				line += " " + mutedStyle.Render("("+m.Delta+")")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	case "table":
		if p.Table != nil {
			b.WriteString(renderTable(p.Table, maxRows))
			b.WriteString("\n")
		}
	case "chart":
		for _, c := range p.Charts {
			b.WriteString(renderChart(c))
		}
	}
	return b.String()
}

func renderTable(td *engine.TableData, maxRows int) string {
	headers := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
	}

	rows := td.Rows
	hidden := 0
	if maxRows > 0 && len(rows) > maxRows {
		hidden = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	out := t.String()
	if hidden > 0 {
		out += "\n" + mutedStyle.Render(fmt.Sprintf("… %d more rows", hidden))
	}
	if td.Summary != nil && td.Summary.Label != "" {
		out += "\n" + successStyle.Render(td.Summary.Label)
	}
	return out
}

func renderChart(c engine.ChartConfig) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("[%s] %s", c.ChartType, c.Title)))
	b.WriteString("\n")

	if c.ChartType == "scatter" {
		for _, s := range c.Series {
			b.WriteString(fmt.Sprintf("  %s: %d points\n", s.Name, len(s.Data)))
		}
		return b.String()
	}

	for _, s := range c.Series {
		peak := 0.0
		width := 0
		for _, p := range s.Data {
			peak = math.Max(peak, math.Abs(p.Value))
			width = max(width, lipgloss.Width(p.Label))
		}
		for _, p := range s.Data {
			value := engine.FormatNumber(p.Value)
			if c.ChartType == "pie" {
				value = fmt.Sprintf("%s (%.1f%%)", value, p.Share)
			}
			b.WriteString(fmt.Sprintf("  %-*s %s %s\n", width, p.Label, bar(p.Value, peak), value))
		}
	}
	return b.String()
}

func bar(v, peak float64) string {
	if peak <= 0 {
		return ""
	}
	n := int(math.Round(math.Abs(v) / peak * barWidth))
	return infoStyle.Render(strings.Repeat("█", n))
}

func criteriaLine(c engine.Criteria) string {
	genres := "none"
	if len(c.Genres) > 0 {
		genres = strings.Join(c.Genres, ", ")
	}
	return fmt.Sprintf("Duration: %s · Min rating: %.1f · Min votes: %s · Genres: %s",
		c.Duration.Label(), c.MinRating, engine.FormatNumber(c.MinVotes), genres)
}
