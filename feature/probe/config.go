package probe

// Backend names.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config describes where content files live.
type Config struct {
	// Backend selects the prober (local or s3).
	Backend string `mapstructure:"backend" default:"local"`
	// Root is the content root directory (local) or key prefix (s3).
	Root string `mapstructure:"root" default:"public"`
	// Exclude lists doublestar patterns of target paths to ignore.
	Exclude []string `mapstructure:"exclude" default:""`
}
