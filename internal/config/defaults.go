package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"elevation_handler": "",
		"selectors":         []string{"fzf", "sk"},
		"preview_window":    "right:66%:wrap",
		"log_level":         "warn",
		"log_file":          "",
		"show_progress":     true,
	}
}
