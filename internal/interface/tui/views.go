package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) planView() string {
	listWidth := m.width/2 - 2
	planWidth := m.width - listWidth - 6
	if m.width == 0 {
		listWidth, planWidth = 40, 40
	}

	left := paneStyle.Width(listWidth).Render(m.list.View())
	right := paneStyle.Width(planWidth).Render(m.slotsPane(planWidth))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var b strings.Builder
	b.WriteString(panes)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("1-6 place  u remove  f favorite  y copy code  / search  p progress  s save  ? help  q quit"))
	return b.String()
}

func (m Model) slotsPane(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Plan: " + m.sess.SlotName))
	b.WriteString("\n\n")

	for idx := 0; idx < m.sess.Planner.NumSlots(); idx++ {
		total := m.sess.Planner.TotalCredits(idx)
		header := fmt.Sprintf("%d  %s  %d/%d LP", idx+1, m.sess.Planner.Label(idx), total, m.sess.Planner.MaxCredits())
		if m.sess.Planner.OverLimit(idx) {
			b.WriteString(overLimitStyle.Render(header + "  !"))
		} else {
			b.WriteString(slotHeaderStyle.Render(header))
		}
		b.WriteString("\n")

		courses := m.sess.Planner.Courses(idx)
		if len(courses) == 0 {
			b.WriteString(dimStyle.Render("  (empty)"))
			b.WriteString("\n")
		}
		for _, c := range courses {
			line := fmt.Sprintf("  %s (%d LP)", c.Title, c.Credits)
			// Truncate on runes, not bytes; titles carry umlauts
			if runes := []rune(line); len(runes) > width-2 && width > 8 {
				line = string(runes[:width-5]) + "..."
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) progressView() string {
	r := m.sess.Report()

	barWidth := 40
	if m.width > 0 && m.width-40 < barWidth {
		barWidth = m.width - 40
	}
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Graduation progress"))
	b.WriteString("\n\n")

	writeBucket := func(name string, current, required int, satisfied bool) {
		ratio := 0.0
		if required > 0 {
			ratio = float64(current) / float64(required)
		}
		if ratio > 1 {
			ratio = 1
		}
		label := fmt.Sprintf("%-34s %3d/%3d LP", name, current, required)
		if satisfied {
			label = satisfiedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(bar.ViewAs(ratio))
		b.WriteString("\n")
	}

	writeBucket(r.Kernbereich.Name, r.Kernbereich.Current, r.Kernbereich.Required, r.Kernbereich.Satisfied())
	for _, bucket := range r.Buckets {
		name := bucket.Name
		if bucket.Kern {
			name = "  " + name
		}
		writeBucket(name, bucket.Current, bucket.Required, bucket.Satisfied())
	}

	b.WriteString("\n")
	totalLine := fmt.Sprintf("Total: %d/%d LP", r.Total, r.Target)
	if r.Satisfied() {
		totalLine = satisfiedStyle.Render(totalLine + "  all requirements met")
	}
	b.WriteString(titleStyle.Render(totalLine))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("p/q back"))
	return b.String()
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"up/down", "move in the course list"},
		{"/", "filter the course list"},
		{"1-6", "place the selected course into that semester"},
		{"u", "remove the selected course from its semester"},
		{"f", "toggle favorite"},
		{"y", "copy the selected course's module code"},
		{"p", "toggle the progress view"},
		{"s", "save the plan to the current slot"},
		{"q", "save and quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", row[0], helpStyle.Render(row[1])))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q back"))
	return b.String()
}
