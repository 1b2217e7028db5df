package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"refcheck/core/database"
	"refcheck/core/refindex"
	"refcheck/core/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrReferenceNotFound is returned when a hash is no longer in the index,
// usually because the index changed since the scan.
var ErrReferenceNotFound = errors.New("reference not found")

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Store is a gorm-backed refindex.IndexStore.
type Store struct {
	db           *gorm.DB
	profile      Profile
	patchRecords bool
	logger       *zap.Logger
}

// New creates a Store from configuration.
func New(db *gorm.DB, cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	profile := GetProfileByName(cfg.Profile)
	if cfg.Table != "" {
		profile.TableName = cfg.Table
	}
	return &Store{
		db:           db,
		profile:      profile,
		patchRecords: cfg.PatchRecords,
		logger:       logger,
	}
}

// Profile returns the table layout in use.
func (s *Store) Profile() Profile {
	return s.profile
}

func (s *Store) col(logical string) string {
	return s.profile.Columns[logical]
}

// QueryFileReferences loads every file reference with (softRefPresent) or
// without a soft reference key, ordered by target path and hash.
func (s *Store) QueryFileReferences(ctx context.Context, softRefPresent bool) ([]refindex.ReferenceEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not set")
	}

	softCol := s.col(ColSoftRefKey)
	q := s.db.WithContext(ctx).
		Table(s.profile.TableName).
		Select(s.profile.ColumnList()).
		Where(s.col(ColKind)+" = ?", s.profile.FileKind)

	if softRefPresent {
		q = q.Where(softCol + " <> ''")
	} else {
		q = q.Where("(" + softCol + " = '' OR " + softCol + " IS NULL)")
	}

	var rows []map[string]any
	if err := q.Order(s.col(ColTargetPath)).Order(s.col(ColHash)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.profile.TableName, err)
	}

	entries := make([]refindex.ReferenceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, s.toEntry(row))
	}
	return entries, nil
}

func (s *Store) toEntry(row map[string]any) refindex.ReferenceEntry {
	return refindex.ReferenceEntry{
		Hash:             utils.ToString(row[s.col(ColHash)]),
		SourceTable:      utils.ToString(row[s.col(ColTable)]),
		SourceRecordID:   utils.ToInt(row[s.col(ColRecordID)]),
		SourceField:      utils.ToString(row[s.col(ColField)]),
		FlexPointer:      utils.ToString(row[s.col(ColFlexPointer)]),
		SoftReferenceKey: utils.ToString(row[s.col(ColSoftRefKey)]),
		TargetPath:       utils.ToString(row[s.col(ColTargetPath)]),
		IsDeletedRecord:  utils.ToBool(row[s.col(ColDeleted)]),
	}
}

// ClearReferenceValue removes the reference identified by hash. When record
// patching is enabled and the reference is a plain field value, the file is
// also removed from the owning record's comma-separated field. Both changes
// share one transaction.
func (s *Store) ClearReferenceValue(ctx context.Context, hash string) error {
	if s.db == nil {
		return fmt.Errorf("database connection not set")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := map[string]any{}
		err := tx.Table(s.profile.TableName).
			Where(s.col(ColHash)+" = ?", hash).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, hash)
		}
		if err != nil {
			return fmt.Errorf("failed to load reference %s: %w", hash, err)
		}

		entry := s.toEntry(row)
		if entry.IsSoft() {
			return fmt.Errorf("reference %s is a soft reference and must be fixed manually", hash)
		}

		if s.patchRecords && entry.FlexPointer == "" {
			if err := s.patchRecord(tx, entry); err != nil {
				return err
			}
		}

		result := tx.Table(s.profile.TableName).
			Where(s.col(ColHash)+" = ?", hash).
			Delete(nil)
		if result.Error != nil {
			return fmt.Errorf("failed to delete reference %s: %w", hash, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, hash)
		}
		return nil
	})
}

// patchRecord drops the target path from the owning record's field. A missing
// owning record leaves nothing to patch.
func (s *Store) patchRecord(tx *gorm.DB, entry refindex.ReferenceEntry) error {
	if !identifierRe.MatchString(entry.SourceTable) || !identifierRe.MatchString(entry.SourceField) {
		return fmt.Errorf("refusing to patch record with unsafe identifier %s.%s", entry.SourceTable, entry.SourceField)
	}

	record := map[string]any{}
	err := tx.Table(entry.SourceTable).
		Select(entry.SourceField).
		Where(s.profile.RecordIDColumn+" = ?", entry.SourceRecordID).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Debug("Owning record not found, nothing to patch",
			zap.String("table", entry.SourceTable),
			zap.Int("uid", entry.SourceRecordID),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s:%d: %w", entry.SourceTable, entry.SourceRecordID, err)
	}

	current := utils.ToString(record[entry.SourceField])
	patched, changed := removeFromList(current, entry.TargetPath)
	if !changed {
		return nil
	}

	err = tx.Table(entry.SourceTable).
		Where(s.profile.RecordIDColumn+" = ?", entry.SourceRecordID).
		Update(entry.SourceField, patched).Error
	if err != nil {
		return fmt.Errorf("failed to update %s:%d.%s: %w", entry.SourceTable, entry.SourceRecordID, entry.SourceField, err)
	}
	return nil
}

// removeFromList removes target from a comma-separated list. Items may hold
// the full relative path or only its base name (legacy upload folders).
func removeFromList(list, target string) (string, bool) {
	if list == "" {
		return list, false
	}
	base := path.Base(target)
	items := strings.Split(list, ",")
	kept := items[:0]
	changed := false
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == target || trimmed == base {
			changed = true
			continue
		}
		kept = append(kept, item)
	}
	return strings.Join(kept, ","), changed
}

// CheckSchema returns the profile columns missing from the index table.
func (s *Store) CheckSchema() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not set")
	}
	return database.MissingColumns(s.db, s.profile.TableName, s.profile.ColumnList())
}
