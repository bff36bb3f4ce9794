package attendance

import "time"

type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
)

// Policy holds the attendance thresholds. It is explicit configuration
// passed in by the caller, never ambient state.
type Policy struct {
	LateThresholdHour   int
	LateThresholdMinute int
	AutoCheckoutHour    int
	AutoCheckoutMinute  int
}

// Classify computes a day's status from the raw check-in time. A day with no
// check-in is absent; a check-in whose local time-of-day is later than the
// late threshold is late; everything else is present.
func Classify(checkIn *time.Time, p Policy) DayStatus {
	if checkIn == nil {
		return StatusAbsent
	}

	threshold := time.Duration(p.LateThresholdHour)*time.Hour +
		time.Duration(p.LateThresholdMinute)*time.Minute

	if timeOfDay(*checkIn) > threshold {
		return StatusLate
	}

	return StatusPresent
}

// WorkDuration returns the recorded working time for a closed day. The
// second return is false when the checkout is missing or does not follow the
// check-in; a duration is never negative and never wraps past midnight.
func WorkDuration(checkIn, checkOut *time.Time) (time.Duration, bool) {
	if checkIn == nil || checkOut == nil {
		return 0, false
	}
	if checkOut.Before(*checkIn) {
		return 0, false
	}
	return checkOut.Sub(*checkIn), true
}

// AutoCheckoutAt returns the moment on the record's date past which a still
// open record gets a synthetic checkout. The classifier only exposes the
// threshold; the scheduler-driven closer performs the write.
func (p Policy) AutoCheckoutAt(date time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		p.AutoCheckoutHour, p.AutoCheckoutMinute, 0, 0,
		loc,
	)
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
