package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/clinicd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.Controller.View()),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Monthly, Action: "monthly view"},
		{Key: m.Keys.Weekly, Action: "weekly view"},
		{Key: m.Keys.Daily, Action: "daily view"},
		{Key: "h/l", Action: "previous/next period"},
		{Key: m.Keys.Today, Action: "jump to today"},
		{Key: "g", Action: "jump to date"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Language, Action: "toggle language"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	if m.Drawer.Open {
		return []KeyBinding{
			{Key: "j/k", Action: "move appointment cursor"},
			{Key: "s", Action: "cycle appointment status"},
			{Key: "esc", Action: "close drawer"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move day cursor"},
		{Key: "enter", Action: "open day drawer"},
		{Key: "s", Action: "cycle appointment status"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
