//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Rescan:          "Cmd+R",
		Open:            "Cmd+O",
		Reveal:          "Cmd+Shift+R",
		Next:            "Right",
		Previous:        "Left",
		ClearSelection:  "Escape",
		ToggleDateLabel: "Cmd+D",
		ToggleHighlight: "Cmd+E",
	}
}
