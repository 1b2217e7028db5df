package refindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceEntry_Descriptors(t *testing.T) {
	tests := []struct {
		name    string
		entry   ReferenceEntry
		origin  string
		softDes string
	}{
		{
			name: "Soft reference",
			entry: ReferenceEntry{
				Hash: "c", SourceTable: "tt_content", SourceRecordID: 12, SourceField: "bodytext",
				TargetPath: "doc/y.html", SoftReferenceKey: "typolink_tag",
			},
			origin:  "tt_content:12:bodytext::typolink_tag",
			softDes: "doc/y.html - c - tt_content:12:bodytext::typolink_tag",
		},
		{
			name: "Deleted owner with flex pointer",
			entry: ReferenceEntry{
				Hash: "d", SourceTable: "tt_content", SourceRecordID: 7, SourceField: "pi_flexform",
				FlexPointer: "sDEF/lDEF/file/vDEF/", TargetPath: "img/a.png", SoftReferenceKey: "images",
				IsDeletedRecord: true,
			},
			origin:  "tt_content:7:pi_flexform:sDEF/lDEF/file/vDEF/:images (DELETED)",
			softDes: "img/a.png - d - tt_content:7:pi_flexform:sDEF/lDEF/file/vDEF/:images (DELETED)",
		},
		{
			name: "Managed reference",
			entry: ReferenceEntry{
				Hash: "a", SourceTable: "pages", SourceRecordID: 1, SourceField: "media", TargetPath: "img/x.jpg",
			},
			origin:  "pages:1:media::",
			softDes: "img/x.jpg - a - pages:1:media::",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.origin, tt.entry.Origin())
			assert.Equal(t, tt.softDes, tt.entry.SoftDescriptor())
		})
	}
}

func TestResult_Summary(t *testing.T) {
	r := &Result{
		MissingSoftReferences: []string{"x", "y"},
		MissingManagedReferences: []ManagedGroup{
			{Path: "a", Entries: []ReferenceEntry{{Hash: "1"}, {Hash: "2"}}},
			{Path: "b", Entries: []ReferenceEntry{{Hash: "3"}}},
		},
		RepairOutcomes: []RepairOutcome{
			{Hash: "1", Status: OutcomeRemoved},
			{Hash: "2", Status: OutcomeFailed},
			{Hash: "3", Status: OutcomeRemoved},
		},
	}

	s := r.Summary()
	assert.Equal(t, 2, s.MissingSoft)
	assert.Equal(t, 2, s.MissingFiles)
	assert.Equal(t, 3, s.MissingManaged)
	assert.Equal(t, 2, s.Removed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 0, s.WouldRemove)
	assert.Len(t, r.Failures(), 1)
	assert.Equal(t, "2 missing file(s), 3 managed reference(s), 2 soft reference(s), 2 removed, 1 failed", s.String())
	assert.Nil(t, r.ManagedDescriptors("nope"))
	assert.Len(t, r.ManagedDescriptors("a"), 2)
}
