package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVersionText(t *testing.T) {
	got := versionText("v1.2.0", "abc123", 90*time.Minute+1500*time.Millisecond)
	assert.Equal(t, "Version: v1.2.0\nCommit: abc123\nUptime: 1h30m1s", got)
}
