package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlots(t *testing.T) {
	tests := []struct {
		name     string
		window   Window
		duration int
		want     []Slot
	}{
		{
			name:     "hour lessons across an afternoon",
			window:   Window{WeekDay: Monday, Enabled: true, Start: "14:00", End: "16:00"},
			duration: 60,
			want: []Slot{
				{Start: "14:00", End: "15:00"},
				{Start: "14:30", End: "15:30"},
				{Start: "15:00", End: "16:00"},
			},
		},
		{
			name:     "duration not a multiple of the step",
			window:   Window{WeekDay: Tuesday, Enabled: true, Start: "09:00", End: "10:30"},
			duration: 45,
			want: []Slot{
				{Start: "09:00", End: "09:45"},
				{Start: "09:30", End: "10:15"},
			},
		},
		{
			name:     "window exactly one lesson long",
			window:   Window{WeekDay: Friday, Enabled: true, Start: "18:00", End: "18:25"},
			duration: 25,
			want:     []Slot{{Start: "18:00", End: "18:25"}},
		},
		{
			name:     "disabled weekday",
			window:   Window{WeekDay: Saturday, Enabled: false, Start: "09:00", End: "18:00"},
			duration: 60,
			want:     nil,
		},
		{
			name:     "window shorter than a lesson",
			window:   Window{WeekDay: Sunday, Enabled: true, Start: "09:00", End: "09:20"},
			duration: 30,
			want:     nil,
		},
		{
			name:     "padded clock strings",
			window:   Window{WeekDay: Monday, Enabled: true, Start: "19:00:00", End: "20:00:00"},
			duration: 30,
			want: []Slot{
				{Start: "19:00", End: "19:30"},
				{Start: "19:30", End: "20:00"},
			},
		},
		{
			name:     "garbage clock",
			window:   Window{WeekDay: Monday, Enabled: true, Start: "soon", End: "later"},
			duration: 30,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slots(tt.window, tt.duration)
			assert.Equal(t, tt.want, got)
		})
	}
}

// the slot count for an enabled [S,E) window and duration D <= E-S is
// floor((E-S-D)/30)+1, with no slot ending past E
func TestSlotsCount(t *testing.T) {
	windowMins := []int{30, 60, 90, 150, 240}
	durations := []int{25, 30, 45, 60}

	for _, span := range windowMins {
		for _, d := range durations {
			if d > span {
				continue
			}
			w := Window{
				WeekDay: Wednesday,
				Enabled: true,
				Start:   "08:00",
				End:     formatClock(8*60 + span),
			}
			got := Slots(w, d)
			wantN := (span-d)/30 + 1
			if len(got) != wantN {
				t.Errorf("failed! span=%d dur=%d: len = %d; want %d", span, d, len(got), wantN)
				continue
			}
			if got[0].Start != "08:00" {
				t.Errorf("failed! span=%d dur=%d: first slot starts %s; want 08:00", span, d, got[0].Start)
			}
			last, err := parseClock(got[len(got)-1].End)
			if err != nil {
				t.Fatalf("parseClock(): %v", err)
			}
			if last > 8*60+span {
				t.Errorf("failed! span=%d dur=%d: last slot ends past window end", span, d)
			}
		}
	}
}

func TestWeekSlots(t *testing.T) {
	ws := []Window{
		{WeekDay: Monday, Enabled: true, Start: "09:00", End: "10:00"},
		{WeekDay: Tuesday, Enabled: false, Start: "09:00", End: "18:00"},
		{WeekDay: 9, Enabled: true, Start: "09:00", End: "18:00"}, // out of range
	}
	got := WeekSlots(ws, 60)

	assert.Len(t, got[Monday], 1)
	assert.Empty(t, got[Tuesday])
	assert.Len(t, got, 2)
}

func TestExpandPeriod(t *testing.T) {
	sels := []Selection{
		{WeekDay: Monday, Slot: Slot{Start: "09:00", End: "10:00"}},
		{WeekDay: Sunday, Slot: Slot{Start: "14:00", End: "15:00"}},
	}

	// 2024-07-01 is a Monday
	got, err := ExpandPeriod("2024-07-01", "2024-07-14", sels)
	if err != nil {
		t.Fatalf("ExpandPeriod(): %v", err)
	}

	want := []LessonDate{
		{Date: "2024-07-01", Start: "09:00", End: "10:00"},
		{Date: "2024-07-07", Start: "14:00", End: "15:00"},
		{Date: "2024-07-08", Start: "09:00", End: "10:00"},
		{Date: "2024-07-14", Start: "14:00", End: "15:00"},
	}
	assert.Equal(t, want, got)
}

func TestExpandPeriodErrors(t *testing.T) {
	if _, err := ExpandPeriod("nope", "2024-07-14", nil); err == nil {
		t.Error("failed! expected error on bad start date")
	}
	if _, err := ExpandPeriod("2024-07-14", "2024-07-01", nil); err == nil {
		t.Error("failed! expected error when end precedes start")
	}
}

func TestValidatePeriod(t *testing.T) {
	today := time.Date(2024, 7, 1, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"starts tomorrow, spans a month", "2024-07-02", "2024-08-02", false},
		{"starts today", "2024-07-01", "2024-08-02", true},
		{"starts in the past", "2024-06-20", "2024-08-02", true},
		{"too short", "2024-07-02", "2024-07-20", true},
		{"exactly the minimum span", "2024-07-02", "2024-08-01", false},
		{"bad start", "soon", "2024-08-02", true},
		{"bad end", "2024-07-02", "later", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePeriod(today, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("failed! err = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Monday", WeekdayName(Monday))
	assert.Equal(t, "Sunday", WeekdayName(Sunday))
	assert.Equal(t, "", WeekdayName(0))
	assert.Equal(t, "", WeekdayName(8))
}
