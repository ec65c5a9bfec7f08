package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwork/jobflow/internal/submit"
)

func TestLoadDescription(t *testing.T) {
	desc, err := LoadDescription(filepath.Join("testdata", "description.cue"))
	require.NoError(t, err)

	assert.Equal(t, "/bin/sleep", desc["executable"])
	assert.Equal(t, "300", desc["arguments"])
	assert.Equal(t, "2048", desc["request_memory"])
	assert.Equal(t, "1", desc["request_cpus"])
	assert.Equal(t, "Never", desc["notification"])
}

func TestLoadDescription_Missing(t *testing.T) {
	_, err := LoadDescription(filepath.Join("testdata", "nope.cue"))
	assert.Error(t, err)
}

func TestLoadItemdata_Mappings(t *testing.T) {
	items, err := LoadItemdata(filepath.Join("testdata", "items.yaml"))
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.NoError(t, submit.CheckItemdata(items))
	m, ok := items[0].(submit.Mapping)
	require.True(t, ok)
	assert.Equal(t, "a.dat", m["infile"])
	assert.Equal(t, "1", m["seed"])
}

func TestLoadItemdata_MixedFormsFailValidation(t *testing.T) {
	items, err := LoadItemdata(filepath.Join("testdata", "mixed_items.yaml"))
	require.NoError(t, err, "mixed forms load fine, validation rejects them")
	assert.ErrorIs(t, submit.CheckItemdata(items), submit.ErrInvalidItemData)
}
