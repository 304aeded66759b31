package echoweb

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/catiga/languagebridge/core/timetable"
	"github.com/catiga/languagebridge/spwapi"
)

type classroomPages struct {
	*pageDeps
}

func registerClassroomPages(g *echo.Group, deps *pageDeps) {
	h := classroomPages{deps}
	g.GET("/classroom/:id", h.room)
}

type classroomData struct {
	Meeting   *spwapi.MeetingInfo
	TimeLabel string
}

func (h classroomPages) room(c echo.Context) error {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lesson not found")
	}

	usr, _ := h.sess.Current(c)
	meeting, err := h.api.MeetingInfo(c.Request().Context(), usr.Token, bookingID)
	if err != nil {
		return err
	}

	return h.render(c, http.StatusOK, "classroom.html", meeting.CourseName, classroomData{
		Meeting:   meeting,
		TimeLabel: meetingTimeLabel(meeting),
	})
}

// meetingTimeLabel renders "3:00 PM - 4:00 PM" style times for the sidebar.
func meetingTimeLabel(m *spwapi.MeetingInfo) string {
	start, ok := timetable.Combine(m.LessonDate, m.StartTime)
	if !ok {
		return "Invalid time"
	}
	end, ok := timetable.Combine(m.LessonDate, m.EndTime)
	if !ok {
		end = start.Add(time.Hour)
	}
	return start.Format("3:04 PM") + " - " + end.Format("3:04 PM")
}
