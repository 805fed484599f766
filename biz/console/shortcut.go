package console

import "strings"

// Shortcut is a global key binding of the console.
type Shortcut int

const (
	ShortcutNone Shortcut = iota
	ShortcutSave
	ShortcutRefresh
)

func (s Shortcut) String() string {
	switch s {
	case ShortcutSave:
		return "save"
	case ShortcutRefresh:
		return "refresh"
	}
	return "none"
}

// ResolveShortcut maps a key chord such as "ctrl+s" to its binding. Handled
// chords suppress the native action of the key.
func ResolveShortcut(chord string) Shortcut {
	chord = strings.ToLower(strings.ReplaceAll(chord, " ", ""))
	chord = strings.Replace(chord, "control+", "ctrl+", 1)
	switch chord {
	case "ctrl+s":
		return ShortcutSave
	case "ctrl+r":
		return ShortcutRefresh
	}
	return ShortcutNone
}
