// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/audtrim"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/internal/config"
	"github.com/ik5/audtrim/marker"
	"github.com/ik5/audtrim/player"
)

const (
	tickInterval = 100 * time.Millisecond
	seekStep     = 5.0
	fineStep     = 1.0
	defaultWidth = 64
)

// Messages
type (
	// NoticeMsg shows a notice line.
	NoticeMsg export.Notice
	// PlayerStateMsg reports playback state.
	PlayerStateMsg player.State

	tickMsg     time.Time
	loadedMsg   struct{ err error }
	progressMsg float64
	exportedMsg struct {
		res *export.Result
		err error
	}
	errMsg struct{ err error }
)

// Model is the trimmer screen.
type Model struct {
	session *audtrim.Session
	bridge  *Bridge
	locator string
	formats []string
	styles  styles
	title   string

	// Playback
	state    player.State
	position float64
	duration float64
	peaks    []float32

	// Export
	exporting bool
	progress  float64
	lastFiles []string

	notice    string
	retryable bool

	width  int
	height int
}

// NewModel returns a model that loads locator into session on start.
func NewModel(session *audtrim.Session, bridge *Bridge, locator string, formats []string, settings config.Settings) Model {
	return Model{
		session: session,
		bridge:  bridge,
		locator: locator,
		formats: formats,
		styles:  newStyles(settings.ButtonColors),
		title:   settings.HeaderTitle,
		state:   player.Loading,
		width:   defaultWidth,
	}
}

// Init starts loading and the playhead ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 16)
		m.height = msg.Height
		m.refreshPeaks()
	case tickMsg:
		m.position = m.session.Player().Position()
		m.state = m.session.Player().State()
		return m, tick()
	case loadedMsg:
		if msg.err != nil {
			m.setNotice(export.NoticeFor(msg.err))
			return m, nil
		}
		m.duration = m.session.Player().Duration()
		m.refreshPeaks()
	case PlayerStateMsg:
		m.state = player.State(msg)
	case NoticeMsg:
		m.setNotice(export.Notice(msg))
	case progressMsg:
		m.progress = float64(msg)
	case exportedMsg:
		m.exporting = false
		m.lastFiles = m.lastFiles[:0]
		if msg.res != nil {
			for _, a := range msg.res.Artifacts {
				m.lastFiles = append(m.lastFiles, a.Filename)
			}
		}
		if msg.err == nil {
			m.notice, m.retryable = "", false
		}
	case errMsg:
		m.notice, m.retryable = msg.err.Error(), false
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.state == player.Playing || m.state == player.Buffering {
			return m, run(m.session.Player().Pause)
		}
		return m, m.play()
	case "left":
		return m, m.seek(-seekStep)
	case "right":
		return m, m.seek(seekStep)
	case ",":
		return m, m.seek(-fineStep)
	case ".":
		return m, m.seek(fineStep)
	case "home":
		return m, run(m.session.Player().Stop)
	case "s":
		return m, m.mark(marker.Start)
	case "e":
		return m, m.mark(marker.End)
	case "c":
		m.session.Markers().Clear()
	case "x":
		if m.exporting {
			m.setNotice(export.NoticeFor(export.ErrExportInProgress))
			return m, nil
		}
		m.exporting = true
		m.progress = 0
		return m, m.export()
	}

	return m, nil
}

func (m *Model) setNotice(n export.Notice) {
	m.notice, m.retryable = n.Message, n.Retryable
}

func (m *Model) refreshPeaks() {
	peaks, err := m.session.Peaks(m.width)
	if err == nil {
		m.peaks = peaks
	}
}

func (m Model) load() tea.Cmd {
	s, locator := m.session, m.locator
	return func() tea.Msg {
		return loadedMsg{err: s.Load(context.Background(), locator)}
	}
}

func (m Model) play() tea.Cmd {
	p := m.session.Player()
	return func() tea.Msg {
		if err := p.Play(context.Background()); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) seek(delta float64) tea.Cmd {
	p := m.session.Player()
	to := m.position + delta
	return func() tea.Msg {
		if err := p.Seek(context.Background(), to); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) mark(t marker.Type) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if _, err := s.Mark(t); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) export() tea.Cmd {
	s, b, formats := m.session, m.bridge, m.formats
	return func() tea.Msg {
		res, err := s.Export(context.Background(), formats, func(p float64) {
			b.Send(progressMsg(p))
		})
		return exportedMsg{res: res, err: err}
	}
}

func run(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// clock formats seconds as MM:SS.
func clock(seconds float64) string {
	total := int(max(seconds, 0))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
