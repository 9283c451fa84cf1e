package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sightread/config"
	"sightread/debug"
	"sightread/midi"
	"sightread/practice"
	"sightread/theme"
	"sightread/theory"
	"sightread/widgets"
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	scoreTop int
	view     widgets.ScoreView
}

type Model struct {
	Session   *practice.Session
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme
	Config    *config.Config

	keys     keyMap
	help     help.Model
	fullHelp bool
	quitting bool
	status   string
	err      error
	bounds   *layoutBounds
}

type DeviceEventMsg midi.DeviceEvent

// NoteMsg carries one key event from a connected controller
type NoteMsg struct {
	Controller midi.Controller
	Event      midi.Event
}

type controllerClosedMsg struct{ id string }

func NewModel(session *practice.Session, deviceMgr *midi.DeviceManager, th *theme.Theme, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Accent())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted())
	return Model{
		Session:   session,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Config:    cfg,
		keys:      defaultKeyMap(),
		help:      h,
		fullHelp:  cfg.UI.ShowHelp,
		bounds:    &layoutBounds{},
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

// ListenForNotes waits for the next key event from c
func ListenForNotes(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.NoteEvents()
		if !ok {
			return controllerClosedMsg{id: c.ID()}
		}
		return NoteMsg{Controller: c, Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	if m.DeviceMgr == nil {
		return nil
	}
	return ListenForDevices(m.DeviceMgr)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, ok := m.bounds.view.HitTest(msg.X, msg.Y-m.bounds.scoreTop); ok {
			m.setErr(m.Session.JumpTo(id))
		}

	case NoteMsg:
		outcome, err := m.Session.HandleEvent(msg.Event)
		m.setErr(err)
		switch outcome {
		case practice.Advanced:
			m.status = ""
		case practice.Regenerated:
			m.status = "phrase complete"
		}
		return m, ListenForNotes(msg.Controller)

	case controllerClosedMsg:
		debug.Log(debug.TUI, "controller %s closed", msg.id)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		next := ListenForDevices(m.DeviceMgr)
		switch event.Type {
		case midi.DeviceConnected:
			m.status = "connected " + event.ID
			return m, tea.Batch(next, ListenForNotes(event.Controller))
		case midi.DeviceDisconnected:
			m.status = "disconnected " + event.ID
		}
		return m, next
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.Session.Advance()

	case key.Matches(msg, m.keys.Prev):
		m.Session.Retreat()

	case key.Matches(msg, m.keys.Regenerate):
		m.setErr(m.Session.Regenerate())

	case key.Matches(msg, m.keys.Key):
		s := m.Session.Settings()
		s.Key = cycle(theory.Keys, s.Key)
		m.setErr(m.Session.Configure(s))

	case key.Matches(msg, m.keys.Time):
		s := m.Session.Settings()
		m.setErr(m.Session.Configure(s.WithTime(cycle(theory.TimeSignatures, s.Time))))

	case key.Matches(msg, m.keys.Harmony):
		s := m.Session.Settings()
		s.UseHarmony = !s.UseHarmony
		m.setErr(m.Session.Configure(s))

	case key.Matches(msg, m.keys.Expected):
		m.Config.UI.ShowExpected = !m.Config.UI.ShowExpected

	case key.Matches(msg, m.keys.Save):
		m.Config.Practice = config.FromSettings(m.Session.Settings())
		m.Config.UI.ShowHelp = m.fullHelp
		if err := m.Config.Save(); err != nil {
			m.setErr(err)
		} else {
			m.status = "preferences saved"
		}

	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
	}
	return m, nil
}

func (m *Model) setErr(err error) {
	if err != nil {
		debug.Log(debug.TUI, "error: %v", err)
	}
	m.err = err
}

// cycle returns the element after cur, wrapping around
func cycle[T comparable](all []T, cur T) T {
	i := slices.Index(all, cur)
	return all[(i+1)%len(all)]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render("sightread  " + m.inputStatus())
	settings := dimStyle.Render(widgets.RenderSettings(m.Session.Settings()))

	sv := widgets.RenderScore(m.Theme, m.Session.Score(), m.Session.Cursor().ChordIDs())

	m.bounds.scoreTop = 1 + lipgloss.Height(header) + lipgloss.Height(settings) + 1
	m.bounds.view = sv

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(settings)
	out.WriteString("\n\n")
	out.WriteString(sv.View)
	out.WriteString("\n")

	if m.Config.UI.ShowExpected {
		out.WriteString(widgets.RenderNotes(m.Theme, m.Session.Expected(), m.Session.Held()))
	} else {
		out.WriteString(widgets.RenderNotes(m.Theme, nil, m.Session.Held()))
	}
	out.WriteString("\n")

	switch {
	case m.err != nil:
		out.WriteString(errStyle.Render(errorText(m.err)))
	case m.status != "":
		out.WriteString(dimStyle.Render(m.status))
	}
	out.WriteString("\n\n")

	if m.fullHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(m.keys.sections())))
	} else {
		out.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return out.String()
}

func (m Model) inputStatus() string {
	if !midi.Supported() {
		return "MIDI input unsupported"
	}
	if m.DeviceMgr == nil {
		return "no MIDI input"
	}
	names := m.DeviceMgr.Connected()
	if len(names) == 0 {
		return "waiting for a MIDI keyboard"
	}
	return fmt.Sprintf("in: %s", strings.Join(names, ", "))
}

// errorText prefers the user-facing description attached with fmsg
func errorText(err error) string {
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}
