package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"sightread/widgets"
)

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Regenerate key.Binding
	Key        key.Binding
	Time       key.Binding
	Harmony    key.Binding
	Expected   key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next chord")),
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous chord")),
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new phrase")),
		Key:        key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "next key")),
		Time:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next meter")),
		Harmony:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "toggle harmony")),
		Expected:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "show expected notes")),
		Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save preferences")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Regenerate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Regenerate},
		{k.Key, k.Time, k.Harmony},
		{k.Expected, k.Save, k.Help, k.Quit},
	}
}

// sections groups the full help under headings for the help panel
func (k keyMap) sections() []widgets.KeySection {
	titles := []string{"Practice", "Phrase", "Other"}
	var out []widgets.KeySection
	for i, group := range k.FullHelp() {
		sec := widgets.KeySection{Title: titles[i]}
		for _, b := range group {
			h := b.Help()
			sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: h.Key, Desc: h.Desc})
		}
		out = append(out, sec)
	}
	return out
}
