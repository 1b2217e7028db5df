package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"refcheck/core/refindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport_NothingToDo(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &refindex.Result{DryRun: true})
	assert.Contains(t, buf.String(), "Nothing to do")
}

func TestPrintReport_Failures(t *testing.T) {
	result := &refindex.Result{
		MissingManagedReferences: []refindex.ManagedGroup{{
			Path: "fileadmin/a.jpg",
			Entries: []refindex.ReferenceEntry{
				{Hash: "h1", SourceTable: "pages", SourceRecordID: 3, SourceField: "media", TargetPath: "fileadmin/a.jpg", IsDeletedRecord: true},
			},
		}},
		RepairOutcomes: []refindex.RepairOutcome{
			{Path: "fileadmin/a.jpg", Hash: "h1", Status: refindex.OutcomeFailed, Err: errors.New("locked"), Message: "locked"},
		},
		Excluded: 2,
	}

	var buf bytes.Buffer
	printReport(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "    - pages:3:media:: (DELETED)")
	assert.Contains(t, out, "References that could not be removed:")
	assert.Contains(t, out, "h1 (fileadmin/a.jpg): locked")
	assert.Contains(t, out, "2 reference(s) skipped by exclude patterns")
	assert.Contains(t, out, "0 removed, 1 failed")
}

func TestEncodeReport(t *testing.T) {
	result := &refindex.Result{DryRun: true, MissingSoftReferences: []string{"x - h - t:1:f::k"}}

	data, err := encodeReport(result, "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["dry_run"])

	data, err = encodeReport(result, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dry_run: true")

	_, err = encodeReport(result, "toml")
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := ask(bufio.NewReader(strings.NewReader(tt.input)), &out, "? ", "y", "yes")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.True(t, strings.HasPrefix(out.String(), "? "))
	}
}
