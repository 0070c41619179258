// Package keys holds the key bindings of every mode. They drive both input
// matching and the help line.
package keys

import "github.com/charmbracelet/bubbles/key"

// ForceQuit ends the program from any mode
var ForceQuit = key.NewBinding(
	key.WithKeys("ctrl+c"),
	key.WithHelp("ctrl+c", "quit"),
)

// BrowseKeys are active while moving through results
type BrowseKeys struct {
	Edit     key.Binding
	Open     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap
func (k BrowseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Open, k.Down, k.Up, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k BrowseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Open, k.Help, k.Quit},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
	}
}

// SearchKeys are active while editing the query
type SearchKeys struct {
	Cancel   key.Binding
	Open     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Delete   key.Binding
	Clear    key.Binding
}

// ShortHelp implements help.KeyMap
func (k SearchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Open, k.Down, k.Up, k.Clear, ForceQuit}
}

// FullHelp implements help.KeyMap
func (k SearchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cancel, k.Open, k.Delete, k.Clear, ForceQuit},
		{k.Up, k.Down, k.PageUp, k.PageDown},
	}
}

// PreviewKeys are active while a file is previewed
type PreviewKeys struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Pager    key.Binding
	Back     key.Binding
}

// ShortHelp implements help.KeyMap
func (k PreviewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Down, k.Up, k.Left, k.Right, k.Pager}
}

// FullHelp implements help.KeyMap
func (k PreviewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Pager, ForceQuit},
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
	}
}

// KeyMap groups the bindings of all modes
type KeyMap struct {
	Browse  BrowseKeys
	Search  SearchKeys
	Preview PreviewKeys
}

// Default returns the default bindings
func Default() KeyMap {
	return KeyMap{
		Browse: BrowseKeys{
			Edit:     key.NewBinding(key.WithKeys("i", "/"), key.WithHelp("i", "edit query")),
			Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
			Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
			Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
			PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
			PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
			Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
			Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
			Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		},
		Search: SearchKeys{
			Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "browse")),
			Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
			Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
			Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
			PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
			PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
			Delete:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
			Clear:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		},
		Preview: PreviewKeys{
			Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
			Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
			Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
			Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
			PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
			PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f", " "), key.WithHelp("pgdn", "page down")),
			Pager:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in pager")),
			Back:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		},
	}
}
