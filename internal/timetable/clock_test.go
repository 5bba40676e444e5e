package timetable

import "testing"

func TestClockMinutes(t *testing.T) {
	cases := []struct {
		clock string
		want  int
		ok    bool
	}{
		{clock: "00:00", want: 0, ok: true},
		{clock: "08:30", want: 510, ok: true},
		{clock: "23:59", want: 1439, ok: true},
		{clock: "24:00", ok: false},
		{clock: "12:60", ok: false},
		{clock: "9:00", ok: false},
		{clock: "09.00", ok: false},
		{clock: "", ok: false},
	}

	for _, tc := range cases {
		got, ok := ClockMinutes(tc.clock)
		if ok != tc.ok {
			t.Fatalf("ClockMinutes(%q) ok = %v, want %v", tc.clock, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ClockMinutes(%q) = %d, want %d", tc.clock, got, tc.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		clock string
		delta int
		want  string
		ok    bool
	}{
		{clock: "10:00", delta: 60, want: "11:00", ok: true},
		{clock: "10:15", delta: 30, want: "10:45", ok: true},
		{clock: "09:50", delta: 25, want: "10:15", ok: true},
		{clock: "23:30", delta: 60, want: "00:30", ok: true},
		{clock: "10:00", delta: 0, want: "10:00", ok: true},
		{clock: "bad", delta: 30, ok: false},
	}

	for _, tc := range cases {
		got, ok := AddMinutes(tc.clock, tc.delta)
		if ok != tc.ok {
			t.Fatalf("AddMinutes(%q, %d) ok = %v, want %v", tc.clock, tc.delta, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("AddMinutes(%q, %d) = %q, want %q", tc.clock, tc.delta, got, tc.want)
		}
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{name: "nested", aStart: "08:00", aEnd: "10:00", bStart: "08:30", bEnd: "09:30", want: true},
		{name: "partial", aStart: "08:00", aEnd: "10:00", bStart: "09:30", bEnd: "11:00", want: true},
		{name: "identical", aStart: "08:00", aEnd: "10:00", bStart: "08:00", bEnd: "10:00", want: true},
		{name: "touching end to start", aStart: "08:00", aEnd: "10:00", bStart: "10:00", bEnd: "12:00", want: false},
		{name: "touching start to end", aStart: "10:00", aEnd: "12:00", bStart: "08:00", bEnd: "10:00", want: false},
		{name: "disjoint", aStart: "08:00", aEnd: "09:00", bStart: "13:00", bEnd: "14:00", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%q-%q, %q-%q) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}
