package menu

import "strings"

// Key is a keyboard key name as reported by browsers.
type Key string

const (
	KeyEnter      Key = "Enter"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyTab        Key = "Tab"
	// KeyCommand is the Ctrl+K or Cmd+K palette shortcut.
	KeyCommand Key = "Mod+K"
)

// ParseKey normalizes a key name received over the wire. "Space" and
// "Spacebar" map to KeySpace; "Ctrl+K", "Meta+K" and "Cmd+K" map to
// KeyCommand.
func ParseKey(value string) Key {
	if value == " " {
		return KeySpace
	}
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "space", "spacebar":
		return KeySpace
	case "ctrl+k", "meta+k", "cmd+k", "mod+k":
		return KeyCommand
	case "esc":
		return KeyEscape
	}
	return Key(trimmed)
}
