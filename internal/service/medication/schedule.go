package medication

import (
	"fmt"
	"strings"
	"time"
)

const (
	alertTimeLayout = "15:04"

	// Due window around "now" for the polling endpoint: a dose stays
	// listed from one minute past its alert time until five minutes
	// before it.
	dueGracePeriod = 1 * time.Minute
	dueLookahead   = 5 * time.Minute
)

// parseAlertTimes splits the comma-separated alert-times column into
// trimmed entries, dropping empties. No validation here; entries are
// validated one by one at evaluation time so a single bad entry cannot
// sink its siblings.
func parseAlertTimes(alertTimes string) []string {
	var out []string
	for _, raw := range strings.Split(alertTimes, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// combine anchors a parsed time-of-day on now's calendar date.
func combine(now, timeOfDay time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, now.Location())
}

// NextOccurrence computes the next occurrence of a single HH:MM alert time
// relative to now. A candidate at or before now rolls forward exactly one
// day, so the result is always within (0, 24h] of now.
func NextOccurrence(alertTime string, now time.Time) (time.Time, error) {
	tod, err := time.Parse(alertTimeLayout, strings.TrimSpace(alertTime))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid alert time %q: %w", alertTime, err)
	}

	candidate := combine(now, tod)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate, nil
}

// dueAt reports whether a single alert time falls inside the due window
// around now. The candidate is anchored on today's date; one strictly
// before the window start has already rolled over to tomorrow and is not
// due. Note the rollover comparison here is strict, unlike NextOccurrence:
// the two paths evolved separately and callers depend on both behaviors.
func dueAt(alertTime string, now time.Time) (bool, error) {
	tod, err := time.Parse(alertTimeLayout, strings.TrimSpace(alertTime))
	if err != nil {
		return false, fmt.Errorf("invalid alert time %q: %w", alertTime, err)
	}

	candidate := combine(now, tod)
	windowStart := now.Add(-dueGracePeriod)
	if candidate.Before(windowStart) {
		return false, nil
	}
	return !candidate.After(now.Add(dueLookahead)), nil
}
