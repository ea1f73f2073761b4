package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps keys, in tea.KeyMsg.String() form, to commands.
// Hints keep registration order.
type KeybindRegistry struct {
	bindings map[string]tea.Cmd
	order    []string
	help     map[string]string
	hidden   map[string]bool
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]tea.Cmd),
		help:     make(map[string]string),
		hidden:   make(map[string]bool),
	}
}

// Bind registers cmd for key without a help entry.
func (r *KeybindRegistry) Bind(k string, cmd tea.Cmd) {
	r.add(k, cmd)
	r.hidden[k] = true
}

// BindWithDesc registers cmd for key and lists it in the help bar.
func (r *KeybindRegistry) BindWithDesc(k string, cmd tea.Cmd, desc string) {
	r.add(k, cmd)
	r.help[k] = desc
	delete(r.hidden, k)
}

func (r *KeybindRegistry) add(k string, cmd tea.Cmd) {
	if _, ok := r.bindings[k]; !ok {
		r.order = append(r.order, k)
	}
	r.bindings[k] = cmd
}

// Lookup returns the command bound to key, or nil.
func (r *KeybindRegistry) Lookup(k string) tea.Cmd {
	return r.bindings[k]
}

// Handle returns the command for msg and whether the key is bound.
func (r *KeybindRegistry) Handle(msg tea.KeyMsg) (bool, tea.Cmd) {
	cmd, ok := r.bindings[msg.String()]
	if !ok || cmd == nil {
		return false, nil
	}
	return true, cmd
}

// Bindings returns help bindings for the described keys, in registration
// order.
func (r *KeybindRegistry) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.order))
	for _, k := range r.order {
		if r.hidden[k] || r.bindings[k] == nil {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, r.help[k])))
	}
	return out
}

// KeyMap exposes a registry to bubbles/help.
type KeyMap struct {
	registry *KeybindRegistry
}

var _ help.KeyMap = KeyMap{}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	return km.registry.Bindings()
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}

// newHelp returns the help bar model with the theme applied.
func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = Styles.Button.Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h
}
