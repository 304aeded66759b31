package timetable

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	// a lesson with no explicit end time is assumed to run one hour
	defaultLessonMinutes = 60

	invalidTimeLabel = "Invalid time"
)

// Lesson is the flat booking record the timetable consumes. Date/time fields
// arrive as strings straight off the wire and may be padded ("2024-07-20
// 00:00:00", "19:00:00") or missing.
type Lesson struct {
	ID          int64
	BookingNo   string
	CourseName  string
	TeacherName string
	StudentName string
	LessonDate  string
	StartTime   string
	EndTime     string
	Status      string
}

// Event is a lesson mapped onto the calendar grid.
type Event struct {
	ID      int64
	Title   string
	Start   time.Time
	End     time.Time
	Lesson  Lesson
	Invalid bool
}

// TimeLabel renders the event's clock range, or the invalid marker when the
// source record could not be combined into timestamps.
func (e Event) TimeLabel() string {
	if e.Invalid {
		return invalidTimeLabel
	}
	return e.Start.Format(clockLayout) + " - " + e.End.Format(clockLayout)
}

// Combine merges a "YYYY-MM-DD" date and an "HH:MM" time into a local-time
// point. Either field may carry trailing precision ("...T00:00:00Z", "HH:MM:SS")
// which is cut before parsing.
func Combine(date, clock string) (time.Time, bool) {
	if len(date) > 10 {
		date = date[:10]
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ToEvent maps one lesson record to a calendar event. A missing end time
// defaults to start + one hour; a malformed date or start time yields an
// Invalid event rather than an error.
func ToEvent(l Lesson) Event {
	ev := Event{
		ID:     l.ID,
		Title:  fmt.Sprintf("%s (%s)", l.CourseName, l.StudentName),
		Lesson: l,
	}

	start, ok := Combine(l.LessonDate, l.StartTime)
	if !ok {
		ev.Invalid = true
		ev.Title = invalidTimeLabel
		return ev
	}
	ev.Start = start

	if end, ok := Combine(l.LessonDate, l.EndTime); ok && end.After(start) {
		ev.End = end
	} else {
		ev.End = start.Add(defaultLessonMinutes * time.Minute)
	}
	return ev
}

// ToEvents maps a batch of lessons, preserving order.
func ToEvents(ls []Lesson) []Event {
	evs := make([]Event, 0, len(ls))
	for _, l := range ls {
		evs = append(evs, ToEvent(l))
	}
	return evs
}

// statusLabels is the closed set of booking status codes the portal knows how
// to display.
var statusLabels = map[string]string{
	"000": "Upcoming",
	"001": "Completed",
}

// StatusLabel maps a booking status code to its display label, falling back to
// the raw code for anything outside the known set.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}
