package timetable

import (
	"sort"
	"time"
)

// Day is one column (week view) or cell (month view) of the timetable grid.
type Day struct {
	Date   time.Time
	Events []Event
}

func (d Day) IsToday() bool {
	return sameDate(d.Date, time.Now())
}

// WeekStart returns the Monday beginning the week containing t.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday-first
	return t.AddDate(0, 0, -offset)
}

// Week buckets events into the Monday-first week containing anchor. Invalid
// events are dropped; events within a day are ordered by start time.
func Week(anchor time.Time, evs []Event) []Day {
	start := WeekStart(anchor)
	days := make([]Day, 7)
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i)
	}
	for _, ev := range evs {
		if ev.Invalid {
			continue
		}
		for i := range days {
			if sameDate(ev.Start, days[i].Date) {
				days[i].Events = append(days[i].Events, ev)
				break
			}
		}
	}
	for i := range days {
		sortEvents(days[i].Events)
	}
	return days
}

// Month lays out the calendar month containing anchor as full Monday-first
// weeks, padded with the neighbouring months' days.
func Month(anchor time.Time, evs []Event) [][]Day {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	byDate := make(map[string][]Event)
	for _, ev := range evs {
		if ev.Invalid {
			continue
		}
		key := ev.Start.Format(dateLayout)
		byDate[key] = append(byDate[key], ev)
	}

	var weeks [][]Day
	for cur := WeekStart(first); !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		week := make([]Day, 7)
		for i := range week {
			d := cur.AddDate(0, 0, i)
			week[i] = Day{Date: d, Events: byDate[d.Format(dateLayout)]}
			sortEvents(week[i].Events)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// InMonth reports whether the day belongs to the month being rendered, as
// opposed to grid padding.
func InMonth(d Day, anchor time.Time) bool {
	return d.Date.Month() == anchor.Month() && d.Date.Year() == anchor.Year()
}

func sortEvents(evs []Event) {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Start.Before(evs[j].Start) })
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
