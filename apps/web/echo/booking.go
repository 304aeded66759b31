package echoweb

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/catiga/languagebridge/core/booking"
	"github.com/catiga/languagebridge/spwapi"
)

// payment plans offered at confirmation, in weeks
var payWeeks = []int{1, 4, 12}

type bookingPages struct {
	*pageDeps
}

func registerBookingPages(g *echo.Group, deps *pageDeps) {
	h := bookingPages{deps}
	g.GET("/booking", h.page)
	g.POST("/booking/confirm", h.confirm)
}

type payPlan struct {
	Weeks int
	Total decimal.Decimal
}

type bookingPageData struct {
	Course    *spwapi.Course
	Teachers  []spwapi.Teacher
	TeacherID int64
	StartDate string
	EndDate   string
	// WeekSlots maps backend weekday (Monday=1) to the bookable slots
	WeekSlots map[int][]booking.Slot
	WeekDays  []int
	Plans     []payPlan
}

func (h bookingPages) page(c echo.Context) error {
	courseID, err := strconv.ParseInt(c.QueryParam("course_id"), 10, 64)
	if err != nil {
		h.sess.Flash(c, "error", "pick a course to book first")
		return c.Redirect(http.StatusSeeOther, "/profile")
	}

	ctx := c.Request().Context()
	course, err := h.api.CourseDetail(ctx, courseID)
	if err != nil {
		return err
	}
	teachers, err := h.api.CourseTeachers(ctx, courseID)
	if err != nil {
		return err
	}

	data := bookingPageData{
		Course:   course,
		Teachers: teachers,
		WeekDays: []int{booking.Monday, booking.Tuesday, booking.Wednesday, booking.Thursday, booking.Friday, booking.Saturday, booking.Sunday},
		Plans:    plansFor(course.PricePerWeek),
	}

	// booking period defaults: starts tomorrow, spans the minimum period
	tomorrow := time.Now().AddDate(0, 0, 1)
	data.StartDate = c.QueryParam("start_date")
	if data.StartDate == "" {
		data.StartDate = tomorrow.Format("2006-01-02")
	}
	data.EndDate = c.QueryParam("end_date")
	if data.EndDate == "" {
		data.EndDate = tomorrow.AddDate(0, 0, booking.MinPeriodDays).Format("2006-01-02")
	}

	if raw := c.QueryParam("teacher_id"); raw != "" {
		if data.TeacherID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "teacher not found")
		}
		windows, err := h.api.TeacherSlots(ctx, data.TeacherID, courseID, data.StartDate, data.EndDate)
		if err != nil {
			if redirErr := h.apiFail(c, err, "could not load the teacher's availability"); redirErr != nil {
				return redirErr
			}
		} else {
			data.WeekSlots = booking.WeekSlots(toWindows(windows), course.Duration)
		}
	}

	return h.render(c, http.StatusOK, "booking.html", "Book lessons", data)
}

func (h bookingPages) confirm(c echo.Context) error {
	form := new(bookingForm)
	if err := c.Bind(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		if fldErrs := h.fieldErrors(err); fldErrs != nil {
			for _, msg := range fldErrs {
				h.sess.Flash(c, "error", msg)
			}
			return c.Redirect(http.StatusSeeOther, bookingURL(form))
		}
		return err
	}

	sels, err := form.Selections()
	if err != nil {
		return err
	}
	slots := make([]spwapi.TimeSlot, 0, len(sels))
	for _, sel := range sels {
		slots = append(slots, spwapi.TimeSlot{
			WeekDay:   sel.WeekDay,
			StartTime: sel.Slot.Start,
			EndTime:   sel.Slot.End,
		})
	}

	usr, _ := h.sess.Current(c)
	err = h.api.ConfirmBooking(c.Request().Context(), usr.Token, spwapi.ConfirmBookingRequest{
		CourseID:  form.CourseID,
		TeacherID: form.TeacherID,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		TimeSlots: slots,
	})
	if err != nil {
		if redirErr := h.apiFail(c, err, "booking failed, please try again"); redirErr != nil {
			return redirErr
		}
		return c.Redirect(http.StatusSeeOther, bookingURL(form))
	}

	// dates are known good here, the period and slots passed validation
	if dates, expErr := booking.ExpandPeriod(form.StartDate, form.EndDate, sels); expErr == nil {
		h.sess.Flash(c, "success", fmt.Sprintf("Booked %d lessons, see you in class", len(dates)))
	} else {
		h.sess.Flash(c, "success", "Lessons booked, see you in class")
	}
	return c.Redirect(http.StatusSeeOther, "/profile/timetable")
}

func bookingURL(form *bookingForm) string {
	return "/profile/booking?course_id=" + strconv.FormatInt(form.CourseID, 10) +
		"&teacher_id=" + strconv.FormatInt(form.TeacherID, 10)
}

func plansFor(pricePerWeek decimal.Decimal) []payPlan {
	plans := make([]payPlan, 0, len(payWeeks))
	for _, weeks := range payWeeks {
		plans = append(plans, payPlan{
			Weeks: weeks,
			Total: pricePerWeek.Mul(decimal.NewFromInt(int64(weeks))),
		})
	}
	return plans
}

func toWindows(ws []spwapi.AvailabilityWindow) []booking.Window {
	out := make([]booking.Window, 0, len(ws))
	for _, w := range ws {
		out = append(out, booking.Window{
			WeekDay: w.WeekDay,
			Enabled: w.Enabled,
			Start:   w.StartTime,
			End:     w.EndTime,
		})
	}
	return out
}
