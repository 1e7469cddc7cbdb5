package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"state_file":    ".relgate/state.yaml",
		"state_dir":     "~/.relgate/state",
		"docs_glob":     "**/*.rst",
		"docs_member":   "index.html",
		"confirm_mode":  ConfirmPrompt,
		"show_progress": true,
		"max_history":   500,
	}
}
