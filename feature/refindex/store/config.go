package store

// Config holds the reference index store settings.
type Config struct {
	// Profile selects the table layout (typo3 or generic).
	Profile string `mapstructure:"profile" default:"typo3"`
	// Table overrides the profile's table name.
	Table string `mapstructure:"table" default:""`
	// PatchRecords also removes the file from the owning record's field when
	// a managed reference is cleared.
	PatchRecords bool `mapstructure:"patch_records" default:"true"`
}
