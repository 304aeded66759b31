package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  time.Time
		ok    bool
	}{
		{
			name:  "plain date and clock",
			date:  "2024-07-20",
			clock: "19:00",
			want:  time.Date(2024, 7, 20, 19, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "padded wire formats",
			date:  "2024-07-20T00:00:00Z",
			clock: "19:00:00",
			want:  time.Date(2024, 7, 20, 19, 0, 0, 0, time.Local),
			ok:    true,
		},
		{name: "garbage date", date: "someday", clock: "19:00"},
		{name: "garbage clock", date: "2024-07-20", clock: "evening"},
		{name: "empty", date: "", clock: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Combine(tt.date, tt.clock)
			if ok != tt.ok {
				t.Errorf("failed! ok = %v; want %v", ok, tt.ok)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Errorf("failed! got = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestToEvent(t *testing.T) {
	l := Lesson{
		ID:          7,
		CourseName:  "Spanish B1",
		StudentName: "Ana",
		LessonDate:  "2024-07-20",
		StartTime:   "19:00",
		EndTime:     "20:30",
		Status:      "000",
	}
	ev := ToEvent(l)

	assert.False(t, ev.Invalid)
	assert.Equal(t, "Spanish B1 (Ana)", ev.Title)
	assert.Equal(t, time.Date(2024, 7, 20, 19, 0, 0, 0, time.Local), ev.Start)
	assert.Equal(t, time.Date(2024, 7, 20, 20, 30, 0, 0, time.Local), ev.End)
	assert.Equal(t, "19:00 - 20:30", ev.TimeLabel())
}

func TestToEventDefaultEnd(t *testing.T) {
	ev := ToEvent(Lesson{LessonDate: "2024-07-20", StartTime: "19:00"})

	assert.False(t, ev.Invalid)
	assert.Equal(t, time.Date(2024, 7, 20, 20, 0, 0, 0, time.Local), ev.End)
}

func TestToEventMalformed(t *testing.T) {
	tests := []struct {
		name   string
		lesson Lesson
	}{
		{"bad date", Lesson{LessonDate: "someday", StartTime: "19:00"}},
		{"bad start", Lesson{LessonDate: "2024-07-20", StartTime: "evening"}},
		{"all empty", Lesson{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ToEvent(tt.lesson) // must not panic
			assert.True(t, ev.Invalid)
			assert.Equal(t, "Invalid time", ev.TimeLabel())
		})
	}
}

func TestToEventBadEndFallsBack(t *testing.T) {
	ev := ToEvent(Lesson{LessonDate: "2024-07-20", StartTime: "19:00", EndTime: "whenever"})

	assert.False(t, ev.Invalid)
	assert.Equal(t, time.Date(2024, 7, 20, 20, 0, 0, 0, time.Local), ev.End)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Upcoming", StatusLabel("000"))
	assert.Equal(t, "Completed", StatusLabel("001"))
	assert.Equal(t, "042", StatusLabel("042")) // unknown codes pass through
}
