package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lessonOn(date, start string) Lesson {
	return Lesson{LessonDate: date, StartTime: start, CourseName: "French A2", StudentName: "Leo"}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid week",
			in:   time.Date(2024, 7, 18, 13, 45, 0, 0, time.Local), // Thursday
			want: time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "monday stays put",
			in:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local),
			want: time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2024, 7, 21, 23, 0, 0, 0, time.Local),
			want: time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}

func TestWeek(t *testing.T) {
	evs := ToEvents([]Lesson{
		lessonOn("2024-07-16", "10:00"),
		lessonOn("2024-07-16", "09:00"), // same day, earlier; must sort first
		lessonOn("2024-07-21", "14:00"),
		lessonOn("2024-07-25", "09:00"), // next week; dropped
		{LessonDate: "someday"},         // invalid; dropped
	})

	days := Week(time.Date(2024, 7, 18, 0, 0, 0, 0, time.Local), evs)

	if len(days) != 7 {
		t.Fatalf("failed! len(days) = %d; want 7", len(days))
	}
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.Local), days[0].Date)

	tue := days[1]
	if assert.Len(t, tue.Events, 2) {
		assert.Equal(t, "09:00 - 10:00", tue.Events[0].TimeLabel())
		assert.Equal(t, "10:00 - 11:00", tue.Events[1].TimeLabel())
	}
	assert.Len(t, days[6].Events, 1) // Sunday
	for _, i := range []int{0, 2, 3, 4, 5} {
		assert.Empty(t, days[i].Events)
	}
}

func TestMonth(t *testing.T) {
	anchor := time.Date(2024, 7, 10, 0, 0, 0, 0, time.Local)
	evs := ToEvents([]Lesson{
		lessonOn("2024-07-01", "09:00"),
		lessonOn("2024-07-31", "18:00"),
	})

	weeks := Month(anchor, evs)

	// July 2024 runs Mon 1st - Wed 31st: five grid weeks
	if len(weeks) != 5 {
		t.Fatalf("failed! len(weeks) = %d; want 5", len(weeks))
	}
	for i, week := range weeks {
		if len(week) != 7 {
			t.Errorf("failed! week %d has %d days; want 7", i, len(week))
		}
	}

	assert.Len(t, weeks[0][0].Events, 1)
	assert.Len(t, weeks[4][2].Events, 1)

	// padding days carry the neighbouring month
	lastDay := weeks[4][6]
	assert.False(t, InMonth(lastDay, anchor))
	assert.Equal(t, time.August, lastDay.Date.Month())
}

func TestDayIsToday(t *testing.T) {
	now := time.Now()
	assert.True(t, Day{Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)}.IsToday())
	assert.False(t, Day{Date: now.AddDate(0, 0, 1)}.IsToday())
}
