package medication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestNextOccurrenceRollsPastTimes(t *testing.T) {
	next, err := NextOccurrence("09:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceKeepsFutureTimes(t *testing.T) {
	next, err := NextOccurrence("12:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceRollsOnEquality(t *testing.T) {
	// A candidate exactly at now counts as past on the dashboard path.
	next, err := NextOccurrence("10:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"25:99", "12:60", "24:00", "noon", ""} {
		_, err := NextOccurrence(bad, testNow)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestNextOccurrenceTrimsInput(t *testing.T) {
	next, err := NextOccurrence(" 20:00 ", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), next)
}

func TestDueWindow(t *testing.T) {
	cases := []struct {
		alert string
		due   bool
	}{
		{"10:03", true},  // inside the 5-minute lookahead
		{"10:05", true},  // window end is inclusive
		{"10:06", false}, // past the lookahead
		{"09:59", true},  // inside the 1-minute grace
		{"09:58", false}, // already rolled to tomorrow
		{"10:00", true},  // exactly now
	}

	for _, tc := range cases {
		due, err := dueAt(tc.alert, testNow)
		require.NoError(t, err)
		assert.Equal(t, tc.due, due, "alert %s", tc.alert)
	}
}

func TestDueRejectsMalformed(t *testing.T) {
	_, err := dueAt("25:99", testNow)
	assert.Error(t, err)
}

func TestParseAlertTimes(t *testing.T) {
	assert.Equal(t, []string{"08:00", "25:99", "20:00"}, parseAlertTimes("08:00,25:99,20:00"))
	assert.Equal(t, []string{"08:00", "20:00"}, parseAlertTimes(" 08:00 , , 20:00,"))
	assert.Nil(t, parseAlertTimes(""))
}
