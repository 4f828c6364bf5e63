package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/version"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, version.Revision)
	require.NotEmpty(t, version.Version)
	assert.Contains(t, version.String(), version.Version)
	assert.Contains(t, version.String(), version.GoVersion)
}
