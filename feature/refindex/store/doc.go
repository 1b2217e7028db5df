// Package store implements the reference index store on top of GORM.
//
// The table layout is described by a Profile, the same way different CMS
// versions name their columns differently:
//
//   - typo3: sys_refindex (tablename, recuid, field, flexpointer, softref_key,
//     ref_table = '_FILE', ref_string, deleted)
//   - generic: reference_index with self-describing column names
//
// ClearReferenceValue deletes the index row inside a transaction and, when
// PatchRecords is enabled, first strips the file from the owning record's
// comma-separated field. References inside flex structures only lose their
// index row.
package store
