package refresh

// Config holds the index refresh settings.
type Config struct {
	// Command is run through "sh -c" to rebuild the reference index,
	// e.g. "vendor/bin/typo3 referenceindex:update".
	Command string `mapstructure:"command" default:""`
	// Dir is the working directory of the command.
	Dir string `mapstructure:"dir" default:""`
	// TimeoutSeconds bounds the command run. Zero disables the limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"1800"`
}
