//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Rescan:          "F5",
		Open:            "Enter",
		Reveal:          "Ctrl+Shift+R",
		Next:            "Right",
		Previous:        "Left",
		ClearSelection:  "Escape",
		ToggleDateLabel: "Ctrl+D",
		ToggleHighlight: "Ctrl+E",
	}
}
