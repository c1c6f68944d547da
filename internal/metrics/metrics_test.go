package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(SlotConflicts)
	RecordSlotConflict()
	assert.Equal(t, before+1, testutil.ToFloat64(SlotConflicts))

	RecordLogin("locked")
	assert.GreaterOrEqual(t, testutil.ToFloat64(LoginAttempts.WithLabelValues("locked")), 1.0)

	SetRemindersPending(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(RemindersPending))

	hits := testutil.ToFloat64(StatsCacheLookups.WithLabelValues("hit"))
	RecordStatsCache(true)
	assert.Equal(t, hits+1, testutil.ToFloat64(StatsCacheLookups.WithLabelValues("hit")))
}
