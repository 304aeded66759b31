package booking

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Weekday numbering follows the backend: Monday = 1 .. Sunday = 7.
const (
	Monday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// slot starts are restricted to half-hour boundaries within a window
const slotStep = 30

const dateLayout = "2006-01-02"

// Window is a teacher's availability for one weekday, as returned by the
// teacher-slots endpoint. Start and End are "HH:MM" clock times.
type Window struct {
	WeekDay int
	Enabled bool
	Start   string
	End     string
}

// Slot is one bookable interval a student may pick.
type Slot struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

func (s Slot) String() string {
	return s.Start + " - " + s.End
}

// WeekdayName returns the English name for a backend weekday number, or "" when
// the number is out of range.
func WeekdayName(weekDay int) string {
	if weekDay < Monday || weekDay > Sunday {
		return ""
	}
	return weekdayNames[weekDay-1]
}

// Slots derives the bookable intervals for a window and a lesson duration in
// minutes. Slots begin at the window start and advance in fixed 30-minute
// steps; the last slot is included only when it fits entirely before the
// window end. A disabled weekday, or a window too short for a single lesson,
// yields no slots and no error.
func Slots(w Window, duration int) []Slot {
	if !w.Enabled || duration <= 0 {
		return nil
	}
	start, err := parseClock(w.Start)
	if err != nil {
		return nil
	}
	end, err := parseClock(w.End)
	if err != nil || end <= start {
		return nil
	}

	var slots []Slot
	for t := start; t+duration <= end; t += slotStep {
		slots = append(slots, Slot{Start: formatClock(t), End: formatClock(t + duration)})
	}
	return slots
}

// WeekSlots derives the slots for each weekday in backend order (Monday first).
// Weekdays missing from ws, or disabled, map to an empty slot list.
func WeekSlots(ws []Window, duration int) map[int][]Slot {
	byDay := make(map[int][]Slot, Sunday)
	for _, w := range ws {
		if w.WeekDay < Monday || w.WeekDay > Sunday {
			continue
		}
		byDay[w.WeekDay] = Slots(w, duration)
	}
	return byDay
}

// Selection is the slot a student picked for one weekday.
type Selection struct {
	WeekDay int
	Slot    Slot
}

// LessonDate is a concrete occurrence produced by expanding weekly selections
// over a booking period.
type LessonDate struct {
	Date  string // "2006-01-02"
	Start string
	End   string
}

// ExpandPeriod enumerates the concrete lesson dates for the chosen weekday
// slots over [startDate, endDate], both inclusive.
func ExpandPeriod(startDate, endDate string, sels []Selection) ([]LessonDate, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing period start")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing period end")
	}
	if end.Before(start) {
		return nil, errors.New("period end precedes start")
	}

	var out []LessonDate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := int(d.Weekday())
		if weekday == 0 {
			weekday = Sunday
		}
		for _, sel := range sels {
			if sel.WeekDay == weekday {
				out = append(out, LessonDate{
					Date:  d.Format(dateLayout),
					Start: sel.Slot.Start,
					End:   sel.Slot.End,
				})
			}
		}
	}
	return out, nil
}

// MinPeriodDays is the shortest booking period the portal accepts.
const MinPeriodDays = 30

// ValidatePeriod enforces the booking-period rules: the period starts after
// `today` and spans at least MinPeriodDays days.
func ValidatePeriod(today time.Time, startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return errors.New("invalid start date")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return errors.New("invalid end date")
	}
	if startDate <= today.Format(dateLayout) {
		return errors.New("start date must be tomorrow or later")
	}
	if days := int(end.Sub(start).Hours() / 24); days < MinPeriodDays {
		return errors.Errorf("period must span at least %d days", MinPeriodDays)
	}
	return nil
}

func parseClock(s string) (int, error) {
	if len(s) > 5 {
		s = s[:5] // backend sends "HH:MM:SS" in places
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, errors.Wrapf(err, "parsing clock %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
