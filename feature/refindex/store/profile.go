package store

// Profile maps logical reference index fields to a concrete table layout.
type Profile struct {
	// Name identifies the profile.
	Name string

	// TableName is the reference index table.
	TableName string

	// Columns maps logical field names to actual column names.
	Columns map[string]string

	// FileKind is the value of the kind column marking file references.
	FileKind string

	// RecordIDColumn is the primary key column of owning records.
	RecordIDColumn string
}

// Logical column names.
const (
	ColHash        = "hash"
	ColTable       = "table"
	ColRecordID    = "record_id"
	ColField       = "field"
	ColFlexPointer = "flex_pointer"
	ColSoftRefKey  = "softref_key"
	ColKind        = "kind"
	ColTargetPath  = "target_path"
	ColDeleted     = "deleted"
)

// Profile names.
const (
	ProfileTYPO3   = "typo3"
	ProfileGeneric = "generic"
)

// TYPO3Profile returns the layout of the TYPO3 sys_refindex table.
func TYPO3Profile() Profile {
	return Profile{
		Name:      ProfileTYPO3,
		TableName: "sys_refindex",
		Columns: map[string]string{
			ColHash:        "hash",
			ColTable:       "tablename",
			ColRecordID:    "recuid",
			ColField:       "field",
			ColFlexPointer: "flexpointer",
			ColSoftRefKey:  "softref_key",
			ColKind:        "ref_table",
			ColTargetPath:  "ref_string",
			ColDeleted:     "deleted",
		},
		FileKind:       "_FILE",
		RecordIDColumn: "uid",
	}
}

// GenericProfile returns a neutral layout for non-TYPO3 content stores.
func GenericProfile() Profile {
	return Profile{
		Name:      ProfileGeneric,
		TableName: "reference_index",
		Columns: map[string]string{
			ColHash:        "hash",
			ColTable:       "source_table",
			ColRecordID:    "source_record_id",
			ColField:       "source_field",
			ColFlexPointer: "flex_pointer",
			ColSoftRefKey:  "softref_key",
			ColKind:        "target_kind",
			ColTargetPath:  "target_path",
			ColDeleted:     "is_deleted",
		},
		FileKind:       "file",
		RecordIDColumn: "id",
	}
}

// GetProfileByName returns the profile for name, defaulting to TYPO3.
func GetProfileByName(name string) Profile {
	switch name {
	case ProfileGeneric:
		return GenericProfile()
	default:
		return TYPO3Profile()
	}
}

// ColumnList returns the mapped columns in a stable order.
func (p Profile) ColumnList() []string {
	order := []string{ColHash, ColTable, ColRecordID, ColField, ColFlexPointer, ColSoftRefKey, ColKind, ColTargetPath, ColDeleted}
	cols := make([]string, 0, len(order))
	for _, logical := range order {
		if col, ok := p.Columns[logical]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}
