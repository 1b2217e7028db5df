package store

import (
	"context"
	"testing"

	"refcheck/core/database"
	"refcheck/core/refindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTYPO3DB creates an in-memory sys_refindex plus a pages table.
func setupTYPO3DB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE sys_refindex (
		hash VARCHAR(32) PRIMARY KEY,
		tablename VARCHAR(255),
		recuid INTEGER,
		field VARCHAR(64),
		flexpointer VARCHAR(255),
		softref_key VARCHAR(30),
		ref_table VARCHAR(255),
		ref_string VARCHAR(1024),
		deleted INTEGER DEFAULT 0
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE pages (uid INTEGER PRIMARY KEY, media TEXT)`).Error)

	rows := []string{
		`INSERT INTO sys_refindex VALUES ('a', 'pages', 1, 'media', '', '', '_FILE', 'img/x.jpg', 0)`,
		`INSERT INTO sys_refindex VALUES ('b', 'pages', 2, 'media', '', NULL, '_FILE', 'img/x.jpg', 1)`,
		`INSERT INTO sys_refindex VALUES ('c', 'tt_content', 3, 'bodytext', '', 'typolink_tag', '_FILE', 'doc/y.html', 0)`,
		`INSERT INTO sys_refindex VALUES ('f', 'tt_content', 4, 'pi_flexform', 'sDEF/lDEF/file/vDEF/', '', '_FILE', 'img/f.jpg', 0)`,
		`INSERT INTO sys_refindex VALUES ('p', 'pages', 1, 'pid', '', '', 'pages', '', 0)`,
		`INSERT INTO pages VALUES (1, 'img/keep.jpg,img/x.jpg')`,
		`INSERT INTO pages VALUES (2, 'x.jpg')`,
	}
	for _, q := range rows {
		require.NoError(t, db.Exec(q).Error)
	}
	return db
}

func TestQueryFileReferences(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3}, nil)
	ctx := context.Background()

	managed, err := s.QueryFileReferences(ctx, false)
	require.NoError(t, err)
	require.Len(t, managed, 3)
	assert.Equal(t, "f", managed[0].Hash)
	assert.Equal(t, "a", managed[1].Hash)
	assert.Equal(t, "b", managed[2].Hash)
	assert.Equal(t, refindex.ReferenceEntry{
		Hash: "b", SourceTable: "pages", SourceRecordID: 2, SourceField: "media",
		TargetPath: "img/x.jpg", IsDeletedRecord: true,
	}, managed[2])

	soft, err := s.QueryFileReferences(ctx, true)
	require.NoError(t, err)
	require.Len(t, soft, 1)
	assert.Equal(t, "typolink_tag", soft[0].SoftReferenceKey)
	assert.Equal(t, "doc/y.html - c - tt_content:3:bodytext::typolink_tag", soft[0].SoftDescriptor())
}

func TestClearReferenceValue_PatchesRecord(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3, PatchRecords: true}, nil)
	ctx := context.Background()

	require.NoError(t, s.ClearReferenceValue(ctx, "a"))
	require.NoError(t, s.ClearReferenceValue(ctx, "b"))

	var count int64
	db.Table("sys_refindex").Where("hash IN ?", []string{"a", "b"}).Count(&count)
	assert.Equal(t, int64(0), count)

	var media []string
	db.Table("pages").Order("uid").Pluck("media", &media)
	assert.Equal(t, []string{"img/keep.jpg", ""}, media)
}

func TestClearReferenceValue_WithoutPatching(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3}, nil)

	require.NoError(t, s.ClearReferenceValue(context.Background(), "a"))

	var media string
	db.Table("pages").Where("uid = ?", 1).Pluck("media", &media)
	assert.Equal(t, "img/keep.jpg,img/x.jpg", media)
}

func TestClearReferenceValue_FlexPointerOnlyDropsRow(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3, PatchRecords: true}, nil)

	// tt_content does not exist: patching would fail, so success proves it was skipped.
	require.NoError(t, s.ClearReferenceValue(context.Background(), "f"))

	var count int64
	db.Table("sys_refindex").Where("hash = ?", "f").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestClearReferenceValue_Errors(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3, PatchRecords: true}, nil)
	ctx := context.Background()

	err := s.ClearReferenceValue(ctx, "missing")
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	err = s.ClearReferenceValue(ctx, "c")
	assert.ErrorContains(t, err, "soft reference")

	var count int64
	db.Table("sys_refindex").Where("hash = ?", "c").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStore_WithReconciler(t *testing.T) {
	db := setupTYPO3DB(t)
	s := New(db, Config{Profile: ProfileTYPO3, PatchRecords: true}, nil)
	rc := refindex.NewReconciler(s, existsNone{})

	result, err := rc.Run(context.Background(), refindex.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary().Removed)
	assert.Len(t, result.MissingSoftReferences, 1)

	again, err := rc.Run(context.Background(), refindex.Options{})
	require.NoError(t, err)
	assert.Empty(t, again.RepairOutcomes)
}

func TestCheckSchema(t *testing.T) {
	db := setupTYPO3DB(t)

	missing, err := New(db, Config{Profile: ProfileTYPO3}, nil).CheckSchema()
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = New(db, Config{Profile: ProfileGeneric}, nil).CheckSchema()
	require.NoError(t, err)
	assert.Len(t, missing, 9)

	missing, err = New(db, Config{Profile: ProfileGeneric, Table: "sys_refindex"}, nil).CheckSchema()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"source_table", "source_record_id", "source_field", "flex_pointer", "target_kind", "target_path", "is_deleted"}, missing)
}

func TestRemoveFromList(t *testing.T) {
	tests := []struct {
		list, target, want string
		changed            bool
	}{
		{"a.jpg,img/b.jpg", "img/b.jpg", "a.jpg", true},
		{"b.jpg", "uploads/pics/b.jpg", "", true},
		{"a.jpg", "img/b.jpg", "a.jpg", false},
		{"", "img/b.jpg", "", false},
	}
	for _, tt := range tests {
		got, changed := removeFromList(tt.list, tt.target)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.changed, changed)
	}
}

type existsNone struct{}

func (existsNone) Exists(ctx context.Context, path string) bool { return false }
