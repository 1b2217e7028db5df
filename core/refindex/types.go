package refindex

import (
	"fmt"
	"strings"
)

// deletedSuffix marks descriptors whose owning record is flagged deleted.
const deletedSuffix = " (DELETED)"

// ReferenceEntry is one row of the reference index pointing at a file.
type ReferenceEntry struct {
	// Hash uniquely identifies the reference within the index.
	Hash string `json:"hash" yaml:"hash"`

	// SourceTable is the table of the owning record.
	SourceTable string `json:"source_table" yaml:"source_table"`

	// SourceRecordID is the uid of the owning record.
	SourceRecordID int `json:"source_record_id" yaml:"source_record_id"`

	// SourceField is the field of the owning record holding the reference.
	SourceField string `json:"source_field" yaml:"source_field"`

	// FlexPointer locates the reference inside a structured (flex) field.
	FlexPointer string `json:"flex_pointer" yaml:"flex_pointer"`

	// TargetPath is the referenced file, relative to the content root.
	TargetPath string `json:"target_path" yaml:"target_path"`

	// SoftReferenceKey is set only for references found by scanning content.
	SoftReferenceKey string `json:"softref_key,omitempty" yaml:"softref_key,omitempty"`

	// IsDeletedRecord reports whether the owning record is marked deleted.
	IsDeletedRecord bool `json:"deleted" yaml:"deleted"`
}

// IsSoft reports whether the entry is a soft (content-scanned) reference.
func (e ReferenceEntry) IsSoft() bool {
	return e.SoftReferenceKey != ""
}

// Origin returns the "table:uid:field:flexpointer:softref_key" descriptor.
func (e ReferenceEntry) Origin() string {
	d := fmt.Sprintf("%s:%d:%s:%s:%s", e.SourceTable, e.SourceRecordID, e.SourceField, e.FlexPointer, e.SoftReferenceKey)
	if e.IsDeletedRecord {
		d += deletedSuffix
	}
	return d
}

// SoftDescriptor returns the report line used for a missing soft reference.
func (e ReferenceEntry) SoftDescriptor() string {
	return e.TargetPath + " - " + e.Hash + " - " + e.Origin()
}

// ManagedGroup holds the managed references pointing at one missing file.
// Entries are unique by hash and keep index-store order.
type ManagedGroup struct {
	Path    string           `json:"path" yaml:"path"`
	Entries []ReferenceEntry `json:"entries" yaml:"entries"`
}

// OutcomeStatus describes what happened to a repair candidate.
type OutcomeStatus string

const (
	// OutcomeWouldRemove is reported in dry-run mode.
	OutcomeWouldRemove OutcomeStatus = "would_remove"
	// OutcomeRemoved means the reference value was cleared.
	OutcomeRemoved OutcomeStatus = "removed"
	// OutcomeFailed means the store rejected the mutation.
	OutcomeFailed OutcomeStatus = "failed"
)

// RepairOutcome is the result of handling a single repair candidate.
type RepairOutcome struct {
	Path       string        `json:"path" yaml:"path"`
	Hash       string        `json:"hash" yaml:"hash"`
	Descriptor string        `json:"descriptor" yaml:"descriptor"`
	Status     OutcomeStatus `json:"status" yaml:"status"`
	Err        error         `json:"-" yaml:"-"`
	Message    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the repair attempt failed.
func (o RepairOutcome) Failed() bool {
	return o.Status == OutcomeFailed
}

// Result aggregates one reconciliation run. It is built fresh per run.
type Result struct {
	// DryRun mirrors the option the run was started with.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Refreshed is true when the index refresh ran successfully before Scan.
	Refreshed bool `json:"refreshed" yaml:"refreshed"`

	// RefreshError holds the refresh failure, if any. It never aborts a run.
	RefreshError string `json:"refresh_error,omitempty" yaml:"refresh_error,omitempty"`

	// Excluded counts entries skipped through exclude patterns.
	Excluded int `json:"excluded" yaml:"excluded"`

	// MissingSoftReferences lists soft references to missing files (report only).
	MissingSoftReferences []string `json:"missing_soft_references" yaml:"missing_soft_references"`

	// MissingManagedReferences maps missing paths to their referencing entries.
	MissingManagedReferences []ManagedGroup `json:"missing_managed_references" yaml:"missing_managed_references"`

	// RepairOutcomes has one outcome per repair candidate.
	RepairOutcomes []RepairOutcome `json:"repair_outcomes" yaml:"repair_outcomes"`
}

// Summary provides aggregate counts for a Result.
type Summary struct {
	MissingSoft    int `json:"missing_soft"`
	MissingFiles   int `json:"missing_files"`
	MissingManaged int `json:"missing_managed"`
	WouldRemove    int `json:"would_remove"`
	Removed        int `json:"removed"`
	Failed         int `json:"failed"`
}

// Summary counts findings and outcomes.
func (r *Result) Summary() Summary {
	s := Summary{
		MissingSoft:  len(r.MissingSoftReferences),
		MissingFiles: len(r.MissingManagedReferences),
	}
	for _, g := range r.MissingManagedReferences {
		s.MissingManaged += len(g.Entries)
	}
	for _, o := range r.RepairOutcomes {
		switch o.Status {
		case OutcomeWouldRemove:
			s.WouldRemove++
		case OutcomeRemoved:
			s.Removed++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// Failures returns the failed repair outcomes.
func (r *Result) Failures() []RepairOutcome {
	var failed []RepairOutcome
	for _, o := range r.RepairOutcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// ManagedDescriptors returns the descriptors of a missing path, or nil.
func (r *Result) ManagedDescriptors(path string) []string {
	for _, g := range r.MissingManagedReferences {
		if g.Path != path {
			continue
		}
		out := make([]string, 0, len(g.Entries))
		for _, e := range g.Entries {
			out = append(out, e.Origin())
		}
		return out
	}
	return nil
}

// String renders a short human readable summary line.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d missing file(s), %d managed reference(s), %d soft reference(s)", s.MissingFiles, s.MissingManaged, s.MissingSoft)
	if s.WouldRemove > 0 {
		fmt.Fprintf(&b, ", %d would be removed", s.WouldRemove)
	}
	if s.Removed > 0 || s.Failed > 0 {
		fmt.Fprintf(&b, ", %d removed, %d failed", s.Removed, s.Failed)
	}
	return b.String()
}
