package echoweb

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/catiga/languagebridge/core/timetable"
	"github.com/catiga/languagebridge/spwapi"
)

const lessonPageSize = 10

type timetablePages struct {
	*pageDeps
}

func registerTimetablePages(g *echo.Group, deps *pageDeps) {
	h := timetablePages{deps}
	g.GET("/timetable", h.page)
}

type timetableListData struct {
	Lessons []spwapi.Lesson
	Page    int64
	Pages   int64
	Total   int64
}

type timetableGridData struct {
	Anchor time.Time
	Prev   time.Time
	Next   time.Time
	Days   []timetable.Day
	Weeks  [][]timetable.Day
}

// page serves all three timetable renderings behind one route; the `view`
// query param switches between list (default), week and month.
func (h timetablePages) page(c echo.Context) error {
	switch c.QueryParam("view") {
	case "week":
		return h.week(c)
	case "month":
		return h.month(c)
	default:
		return h.list(c)
	}
}

func (h timetablePages) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("pn"))
	if page < 1 {
		page = 1
	}

	usr, _ := h.sess.Current(c)
	res, err := h.api.LessonTimeList(c.Request().Context(), usr.Token, page, lessonPageSize)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "timetable_list.html", "My timetable", timetableListData{
		Lessons: res.List,
		Page:    int64(page),
		Pages:   res.TotalPages,
		Total:   res.Total,
	})
}

func (h timetablePages) week(c echo.Context) error {
	anchor := anchorDate(c)
	start := timetable.WeekStart(anchor)
	end := start.AddDate(0, 0, 6)

	evs, err := h.rangeEvents(c, start, end)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "timetable_week.html", "My timetable", timetableGridData{
		Anchor: anchor,
		Prev:   anchor.AddDate(0, 0, -7),
		Next:   anchor.AddDate(0, 0, 7),
		Days:   timetable.Week(anchor, evs),
	})
}

func (h timetablePages) month(c echo.Context) error {
	anchor := anchorDate(c)
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	evs, err := h.rangeEvents(c, timetable.WeekStart(first), last.AddDate(0, 0, 6))
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "timetable_month.html", "My timetable", timetableGridData{
		Anchor: anchor,
		Prev:   first.AddDate(0, -1, 0),
		Next:   first.AddDate(0, 1, 0),
		Weeks:  timetable.Month(anchor, evs),
	})
}

func (h timetablePages) rangeEvents(c echo.Context, start, end time.Time) ([]timetable.Event, error) {
	usr, _ := h.sess.Current(c)
	lessons, err := h.api.LessonTimeRange(c.Request().Context(), usr.Token,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return timetable.ToEvents(toTimetableLessons(lessons)), nil
}

// anchorDate reads the `date` query param, today when absent or malformed.
func anchorDate(c echo.Context) time.Time {
	if raw := c.QueryParam("date"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}

func toTimetableLessons(ls []spwapi.Lesson) []timetable.Lesson {
	out := make([]timetable.Lesson, 0, len(ls))
	for _, l := range ls {
		out = append(out, timetable.Lesson{
			ID:          l.ID,
			BookingNo:   l.BookingNo,
			CourseName:  l.CourseName,
			TeacherName: l.TeacherName,
			StudentName: l.StudentName,
			LessonDate:  l.LessonDate,
			StartTime:   l.StartTime,
			EndTime:     l.EndTime,
			Status:      l.Status,
		})
	}
	return out
}
