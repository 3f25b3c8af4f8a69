// Package indicator renders the liveness glyph and plays its animations.
package indicator

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/liveness"
	"github.com/nhle/tgift/internal/theme"
)

// FrameMsg reports that frame Index of the animation tagged Generation
// has been shown for its full duration. Epoch identifies the frame chain
// that scheduled it; only the latest chain may advance playback.
type FrameMsg struct {
	Generation uint64
	Epoch      uint64
	Index      int
}

// Model wraps a liveness.Machine and turns its effects into timed frames.
type Model struct {
	machine    liveness.Machine
	animations bool
	frame      int
	epoch      uint64
}

// New creates an indicator in the initial dead state.
func New(animations bool) Model {
	return Model{machine: liveness.New(), animations: animations}
}

// Machine returns the current machine value.
func (m Model) Machine() liveness.Machine {
	return m.machine
}

// SetConnected feeds a connectivity observation into the machine.
func (m Model) SetConnected(connected bool) (Model, tea.Cmd) {
	var effects []liveness.Effect
	m.machine, effects = liveness.Step(m.machine, liveness.Connectivity(connected))
	return m.apply(effects)
}

// SetAnimations toggles animation playback. Turning animations off
// completes any running sequence at once; turning them on restarts the
// heartbeat if it is resting.
func (m Model) SetAnimations(on bool) (Model, tea.Cmd) {
	if m.animations == on {
		return m, nil
	}
	m.animations = on

	running := m.machine.Running
	if running == liveness.AnimNone {
		return m, nil
	}

	m.frame = 0
	if on {
		m.epoch++
		return m, tick(m.machine.Generation, m.epoch, running, 0)
	}
	if running == liveness.AnimHeartbeat {
		return m, nil
	}

	var effects []liveness.Effect
	m.machine, effects = liveness.Step(m.machine, liveness.Finished(running, m.machine.Generation))
	return m.apply(effects)
}

// Update advances the current animation on FrameMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	fm, ok := msg.(FrameMsg)
	if !ok {
		return m, nil
	}

	running := m.machine.Running
	if fm.Generation != m.machine.Generation || running == liveness.AnimNone || !m.animations {
		return m, nil
	}
	if fm.Epoch != m.epoch || fm.Index != m.frame {
		return m, nil
	}

	seq := liveness.SequenceFor(running)
	if next := fm.Index + 1; next < len(seq) {
		m.frame = next
		return m, tick(fm.Generation, m.epoch, running, next)
	}

	var effects []liveness.Effect
	m.machine, effects = liveness.Step(m.machine, liveness.Finished(running, fm.Generation))
	return m.apply(effects)
}

// apply plays Start effects. With animations off, dying and reviving
// complete immediately and the heartbeat rests on a static glyph.
// Cancel effects need no action: frames of a cancelled generation are
// ignored by Update.
func (m Model) apply(effects []liveness.Effect) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	for len(effects) > 0 {
		var next []liveness.Effect
		for _, e := range effects {
			if e.Kind != liveness.EffectStart {
				continue
			}
			m.frame = 0

			if m.animations {
				m.epoch++
				cmds = append(cmds, tick(e.Generation, m.epoch, e.Animation, 0))
				continue
			}
			if e.Animation == liveness.AnimHeartbeat {
				continue
			}

			var more []liveness.Effect
			m.machine, more = liveness.Step(m.machine, liveness.Finished(e.Animation, e.Generation))
			next = append(next, more...)
		}
		effects = next
	}

	return m, tea.Batch(cmds...)
}

func tick(gen, epoch uint64, a liveness.Animation, index int) tea.Cmd {
	seq := liveness.SequenceFor(a)
	if index >= len(seq) {
		return nil
	}
	return tea.Tick(seq[index].Duration, func(time.Time) tea.Msg {
		return FrameMsg{Generation: gen, Epoch: epoch, Index: index}
	})
}

// Glyph returns the character for the current frame.
func (m Model) Glyph() string {
	running := m.machine.Running
	if running != liveness.AnimNone && m.animations {
		seq := liveness.SequenceFor(running)
		if m.frame < len(seq) {
			return seq[m.frame].Glyph
		}
	}
	return liveness.RestGlyph(m.machine.State)
}

// View renders the glyph colored by state.
func (m Model) View(th theme.Theme) string {
	color := th.Palette.Error
	switch m.machine.State {
	case liveness.Normal:
		color = th.Palette.Pink
	case liveness.Reviving:
		color = th.Palette.AccentSoft
	case liveness.Dying:
		color = th.Palette.Muted
	}
	return lipgloss.NewStyle().Foreground(color).Render(m.Glyph())
}
