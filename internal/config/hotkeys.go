package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds the keyboard shortcuts as written in config.json
type HotkeysConfig struct {
	Rescan          string `json:"rescan"`
	Open            string `json:"open"`
	Reveal          string `json:"reveal"`
	Next            string `json:"next"`
	Previous        string `json:"previous"`
	ClearSelection  string `json:"clearSelection"`
	ToggleDateLabel string `json:"toggleDateLabel"`
	ToggleHighlight string `json:"toggleHighlight"`
}

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+R" into a Hotkey
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var mods key.Modifiers
	var rawKeyPart string
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand
		case "super", "meta", "win":
			mods |= key.ModSuper
		default:
			rawKeyPart = part
		}
	}
	return Hotkey{Key: parseKeyName(rawKeyPart), Modifiers: mods}
}

var namedKeys = map[string]key.Name{
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,

	"up": key.NameUpArrow, "down": key.NameDownArrow,
	"left": key.NameLeftArrow, "right": key.NameRightArrow,
	"home": key.NameHome, "end": key.NameEnd,
	"pageup": key.NamePageUp, "pagedown": key.NamePageDown,

	"enter": key.NameReturn, "return": key.NameReturn,
	"tab": key.NameTab, "space": key.NameSpace,
	"backspace": key.NameDeleteBackward, "delete": key.NameDeleteForward,
	"escape": key.NameEscape, "esc": key.NameEscape,
}

// parseKeyName converts a key string to Gio's key.Name
func parseKeyName(s string) key.Name {
	// Single letters are reported upper-case by Gio
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}
	if name, ok := namedKeys[strings.ToLower(s)]; ok {
		return name
	}
	return key.Name(s)
}

// Matches checks if a key event matches this hotkey exactly
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}

	var parts []string
	if h.Modifiers.Contain(key.ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers.Contain(key.ModCommand) {
		parts = append(parts, "Cmd")
	}
	if h.Modifiers.Contain(key.ModShift) {
		parts = append(parts, "Shift")
	}
	if h.Modifiers.Contain(key.ModAlt) {
		parts = append(parts, "Alt")
	}
	if h.Modifiers.Contain(key.ModSuper) {
		parts = append(parts, "Super")
	}
	return strings.Join(append(parts, string(h.Key)), "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// HotkeyMatcher holds the parsed shortcuts
type HotkeyMatcher struct {
	Rescan          Hotkey
	Open            Hotkey
	Reveal          Hotkey
	Next            Hotkey
	Previous        Hotkey
	ClearSelection  Hotkey
	ToggleDateLabel Hotkey
	ToggleHighlight Hotkey
}

// NewHotkeyMatcher creates a matcher from config, falling back to the
// platform default for any shortcut left empty
func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	def := DefaultHotkeys()
	pick := func(v, fallback string) Hotkey {
		if v == "" {
			return ParseHotkey(fallback)
		}
		return ParseHotkey(v)
	}
	return &HotkeyMatcher{
		Rescan:          pick(cfg.Rescan, def.Rescan),
		Open:            pick(cfg.Open, def.Open),
		Reveal:          pick(cfg.Reveal, def.Reveal),
		Next:            pick(cfg.Next, def.Next),
		Previous:        pick(cfg.Previous, def.Previous),
		ClearSelection:  pick(cfg.ClearSelection, def.ClearSelection),
		ToggleDateLabel: pick(cfg.ToggleDateLabel, def.ToggleDateLabel),
		ToggleHighlight: pick(cfg.ToggleHighlight, def.ToggleHighlight),
	}
}

// All returns every configured hotkey, used to build key filters
func (m *HotkeyMatcher) All() []Hotkey {
	return []Hotkey{
		m.Rescan, m.Open, m.Reveal, m.Next, m.Previous,
		m.ClearSelection, m.ToggleDateLabel, m.ToggleHighlight,
	}
}
