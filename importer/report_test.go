package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_RecordAndDiscard(t *testing.T) {
	rep := newReport("trace", "/data")
	rep.record("items", "A", "B", linked())
	rep.record("items", "A", "C", skipped(SkipMissingSkill))
	assert.Equal(t, 1, rep.TotalSkips())
	assert.Len(t, rep.drain(), 1)
	assert.Empty(t, rep.drain())

	rep.record("shops", "S", "X", skipped(SkipMissingItem))
	rep.record("shops", "S", "Y", skipped(SkipMissingSkill))
	rep.discard("shops")
	assert.Equal(t, 1, rep.TotalSkips())
	assert.Equal(t, []SkipReason{SkipMissingSkill}, rep.Reasons())
	assert.True(t, rep.HasSkip(SkipMissingSkill, "A", "C"))
	assert.False(t, rep.HasSkip(SkipMissingItem, "S", ""))
}

func TestReport_SamplesAreBounded(t *testing.T) {
	rep := newReport("trace", "/data")
	for i := 0; i < maxSamples+5; i++ {
		rep.record("units", "U", "", skipped(SkipExcludedUnit))
	}
	assert.Equal(t, maxSamples+5, rep.Skips[SkipExcludedUnit])
	assert.Len(t, rep.Samples[SkipExcludedUnit], maxSamples)
}
