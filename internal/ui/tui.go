// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/player"
)

// Bridge forwards session callbacks into a running program. Messages sent
// before Attach are dropped.
type Bridge struct {
	mu   sync.Mutex
	prog *tea.Program
}

func (b *Bridge) Attach(p *tea.Program) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.prog = p
	b.mu.Unlock()
}

// Send delivers msg to the program.
func (b *Bridge) Send(msg tea.Msg) {
	if b == nil {
		return
	}
	b.mu.Lock()
	p := b.prog
	b.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// Notice is a session notice hook.
func (b *Bridge) Notice(n export.Notice) { b.Send(NoticeMsg(n)) }

// PlayerState is a session player hook.
func (b *Bridge) PlayerState(s player.State) { b.Send(PlayerStateMsg(s)) }

// Run creates the program for m and attaches it to the model's bridge.
func Run(m Model) *tea.Program {
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.bridge.Attach(p)
	return p
}
