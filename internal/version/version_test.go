package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = origVersion, origCommit, origTime })

	Version, GitCommit = "v1.2.3", "unknown"
	assert.Equal(t, "v1.2.3", String())

	GitCommit, BuildTime = "0123456789abcdef0123", "2026-01-02"
	assert.Equal(t, "v1.2.3 (0123456789ab, built 2026-01-02)", String())
}
