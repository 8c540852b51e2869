package reembed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_ReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "recipes", 100, 25)

	tracker.Start()
	tracker.Update(10)
	assert.Empty(t, buf.String(), "below the interval, nothing reported")

	tracker.Update(25)
	assert.Contains(t, buf.String(), "recipes: 25/100 (25.0%)")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "tags", 10, 100)

	tracker.Start()
	tracker.Update(4)
	tracker.Finish()

	assert.Contains(t, buf.String(), "tags: 10/10 (100.0%)")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "items", 10, 1)

	tracker.Start()
	tracker.Update(50)
	assert.Contains(t, buf.String(), "items: 10/10")
}

func TestProgressTracker_IgnoresUpdatesBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "items", 10, 1)

	tracker.Update(5)
	tracker.Finish()
	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}
