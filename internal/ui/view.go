// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/marker"
)

var levels = []rune("▁▂▃▄▅▆▇█")

type styles struct {
	title   lipgloss.Style
	start   lipgloss.Style
	end     lipgloss.Style
	export  lipgloss.Style
	cursor  lipgloss.Style
	notice  lipgloss.Style
	help    lipgloss.Style
	between lipgloss.Style
}

func newStyles(colors map[string]string) styles {
	button := func(key string) lipgloss.Style {
		st := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		if c, ok := colors[key]; ok {
			st = st.Background(lipgloss.Color(c)).Foreground(lipgloss.Color("#ffffff"))
		}
		return st
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		start:   button("start"),
		end:     button("end"),
		export:  button("export"),
		cursor:  lipgloss.NewStyle().Reverse(true),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		help:    lipgloss.NewStyle().Faint(true),
		between: lipgloss.NewStyle().Foreground(lipgloss.Color(colorOr(colors, "export", "#1565c0"))),
	}
}

func colorOr(colors map[string]string, key, fallback string) string {
	if c, ok := colors[key]; ok {
		return c
	}
	return fallback
}

// View renders the screen
func (m Model) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "audtrim"
	}
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n\n", export.BaseName(m.locator))

	b.WriteString(m.renderWaveform())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s / %s  [%s]\n\n", clock(m.position), clock(m.duration), m.state)

	b.WriteString(m.renderMarkers())
	b.WriteString("\n")
	b.WriteString(m.renderExport())
	b.WriteString("\n")

	if m.notice != "" {
		line := m.notice
		if m.retryable {
			line += " (press x to retry)"
		}
		b.WriteString(m.styles.notice.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("space:Play/Pause  ←/→:±5s  ,/.:±1s  home:Stop  s:Start  e:End  c:Clear  x:Export  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

// renderWaveform draws one column per peak with the selection tinted and the
// playhead reversed.
func (m Model) renderWaveform() string {
	if len(m.peaks) == 0 || m.duration <= 0 {
		return strings.Repeat(" ", m.width)
	}

	start, end, ok := m.session.Markers().Range()
	cols := len(m.peaks)
	head := column(m.position, m.duration, cols)

	var b strings.Builder
	for i, p := range m.peaks {
		level := int(p * float32(len(levels)-1))
		level = max(0, min(level, len(levels)-1))
		cell := string(levels[level])

		at := (float64(i) + 0.5) / float64(cols) * m.duration
		switch {
		case i == head:
			cell = m.styles.cursor.Render(cell)
		case ok && at >= start && at < end:
			cell = m.styles.between.Render(cell)
		}
		b.WriteString(cell)
	}

	return b.String()
}

func (m Model) renderMarkers() string {
	label := func(t marker.Type) string {
		mk, ok := m.session.Markers().Get(t)
		if !ok {
			return "--:--"
		}
		return clock(mk.Position)
	}

	return fmt.Sprintf("%s %s   %s %s",
		m.styles.start.Render("Start"), label(marker.Start),
		m.styles.end.Render("End"), label(marker.End))
}

func (m Model) renderExport() string {
	s := m.styles.export.Render("Export " + strings.Join(m.formats, "+"))

	switch {
	case m.exporting:
		s += fmt.Sprintf(" [%s] %3.0f%%", renderBar(m.progress, 100, 20), m.progress)
	case len(m.lastFiles) > 0:
		s += " " + strings.Join(m.lastFiles, ", ")
	}

	return s
}

func column(pos, duration float64, cols int) int {
	if duration <= 0 || cols == 0 {
		return -1
	}
	c := int(pos / duration * float64(cols))
	return min(max(c, 0), cols-1)
}

func renderBar(value, total float64, width int) string {
	filled := int(value / total * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
