package labels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStandardColumns(t *testing.T) {
	svc, err := Read(strings.NewReader("address,label\nkaspa:qa,Gate.io\nkaspa:qb,Mining Pool\n"))
	require.NoError(t, err)
	require.Equal(t, 2, svc.Len())

	label, ok := svc.Lookup("kaspa:qa")
	require.True(t, ok)
	assert.Equal(t, "Gate.io", label)
}

func TestReadAlternateColumnSpellings(t *testing.T) {
	svc, err := Read(strings.NewReader("note,sender,tag\nirrelevant,kaspa:qa,Exchange\n"))
	require.NoError(t, err)

	label, ok := svc.Lookup("kaspa:qa")
	require.True(t, ok)
	assert.Equal(t, "Exchange", label)
}

func TestReadDuplicateAddressLastWins(t *testing.T) {
	svc, err := Read(strings.NewReader("address,label\nkaspa:qa,Old Name\nkaspa:qa,New Name\n"))
	require.NoError(t, err)

	label, _ := svc.Lookup("kaspa:qa")
	assert.Equal(t, "New Name", label)
}

func TestReadRaggedRows(t *testing.T) {
	svc, err := Read(strings.NewReader("address,label\nkaspa:qa,Gate.io,extra\nkaspa:qb\n,Orphan Label\n"))
	require.NoError(t, err)
	require.Equal(t, 1, svc.Len(), "short and empty-address rows are skipped")

	label, ok := svc.Lookup("kaspa:qa")
	require.True(t, ok)
	assert.Equal(t, "Gate.io", label)
}

func TestReadMissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("foo,bar\nx,y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address/label")
}

func TestLoadMissingFile(t *testing.T) {
	svc, err := Load(filepath.Join(t.TempDir(), "no-such-labels.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Len())
	assert.Equal(t, Unlabeled, svc.Bucket("kaspa:qa"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_labels.csv")
	require.NoError(t, os.WriteFile(path, []byte("address,name\nkaspa:qa,Pool\n"), 0o644))

	svc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Len())
}

func TestBucket(t *testing.T) {
	svc := NewService([][2]string{
		{"kaspa:qexchangefull", "Gate.io"},
		{"kaspa:qpool", "Mining Pool"},
	})

	assert.Equal(t, "Gate.io", svc.Bucket("kaspa:qexchangefull"), "exact match")
	assert.Equal(t, "Mining Pool", svc.Bucket("kaspa:qpool12345abc"), "key matching at the start")
	assert.Equal(t, Unlabeled, svc.Bucket("kaspa:qunknown"))
}

func TestBucketSubstring(t *testing.T) {
	// A short key can match inside a longer address.
	svc := NewService([][2]string{{"qpool", "Mining Pool"}})
	assert.Equal(t, "Mining Pool", svc.Bucket("kaspa:qpool12345"))
}
