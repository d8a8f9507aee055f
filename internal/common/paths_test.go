package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPathRejectsTraversal(t *testing.T) {
	_, err := CleanPath("../../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestCleanPathResolvesRelative(t *testing.T) {
	cleaned, err := CleanPath("uptime.log")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cleaned))
}

func TestValidatePath(t *testing.T) {
	base := t.TempDir()

	inside, err := ValidatePath(filepath.Join(base, "uptime.log"), base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "uptime.log"), inside)

	_, err = ValidatePath(filepath.Join(base, "..", "escape.log"), base)
	require.Error(t, err)
}
