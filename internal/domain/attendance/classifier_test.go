package attendance

import (
	"testing"
	"time"
)

var testPolicy = Policy{
	LateThresholdHour:   9,
	LateThresholdMinute: 15,
	AutoCheckoutHour:    20,
	AutoCheckoutMinute:  0,
}

func at(hour, minute int) *time.Time {
	t := time.Date(2025, 6, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		checkIn *time.Time
		want    DayStatus
	}{
		{"no check-in is absent", nil, StatusAbsent},
		{"before threshold is present", at(9, 0), StatusPresent},
		{"exactly at threshold is present", at(9, 15), StatusPresent},
		{"after threshold is late", at(9, 20), StatusLate},
		{"one minute late", at(9, 16), StatusLate},
		{"early morning is present", at(6, 30), StatusPresent},
		{"afternoon check-in is late", at(14, 0), StatusLate},
	}

	for _, c := range cases {
		got := Classify(c.checkIn, testPolicy)
		if got != c.want {
			t.Errorf("%s: Classify = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestClassify_SecondsPastThreshold(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 9, 15, 30, 0, time.UTC)
	if got := Classify(&checkIn, testPolicy); got != StatusLate {
		t.Errorf("Classify(09:15:30) = %q, want late", got)
	}
}

func TestWorkDuration(t *testing.T) {
	in := at(9, 0)
	out := at(17, 30)

	d, recorded := WorkDuration(in, out)
	if !recorded {
		t.Fatal("WorkDuration with both times should be recorded")
	}
	if d != 8*time.Hour+30*time.Minute {
		t.Errorf("WorkDuration = %v, want 8h30m", d)
	}
}

func TestWorkDuration_OpenDay(t *testing.T) {
	if _, recorded := WorkDuration(at(9, 0), nil); recorded {
		t.Error("WorkDuration with no checkout should not be recorded")
	}
	if _, recorded := WorkDuration(nil, nil); recorded {
		t.Error("WorkDuration with no times should not be recorded")
	}
}

func TestWorkDuration_NeverNegative(t *testing.T) {
	d, recorded := WorkDuration(at(17, 0), at(9, 0))
	if recorded {
		t.Error("checkout before check-in should not be recorded")
	}
	if d < 0 {
		t.Errorf("WorkDuration = %v, must never be negative", d)
	}
}

func TestAutoCheckoutAt(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got := testPolicy.AutoCheckoutAt(date, time.UTC)
	want := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AutoCheckoutAt = %v, want %v", got, want)
	}
}
