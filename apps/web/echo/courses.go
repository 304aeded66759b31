package echoweb

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/catiga/languagebridge/spwapi"
)

const coursePageSize = 10

type coursePages struct {
	*pageDeps
}

func registerCoursePages(e *echo.Echo, deps *pageDeps) {
	h := coursePages{deps}
	e.GET("/courses", h.list)
	e.GET("/courses/:id", h.detail)
	e.POST("/courses/:id/signup", h.signup)
	e.POST("/courses/:id/join", h.join)
}

type courseListData struct {
	Courses []spwapi.Course
	Search  string
	Page    int64
	Pages   int64
	Total   int64
}

func (h coursePages) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("pn"))
	if page < 1 {
		page = 1
	}
	search := strings.TrimSpace(c.QueryParam("search"))

	res, err := h.api.CourseList(c.Request().Context(), page, coursePageSize)
	if err != nil {
		return err
	}

	courses := res.List
	if search != "" {
		courses = filterCourses(courses, search)
	}

	return h.render(c, http.StatusOK, "courses.html", "Courses", courseListData{
		Courses: courses,
		Search:  search,
		Page:    int64(page),
		Pages:   res.TotalPages,
		Total:   res.Total,
	})
}

// filterCourses narrows the fetched page by name or language, case-insensitive.
func filterCourses(courses []spwapi.Course, search string) []spwapi.Course {
	search = strings.ToLower(search)
	out := make([]spwapi.Course, 0, len(courses))
	for _, crs := range courses {
		if strings.Contains(strings.ToLower(crs.Name), search) ||
			strings.Contains(strings.ToLower(crs.Language), search) {
			out = append(out, crs)
		}
	}
	return out
}

type courseDetailData struct {
	Course   *spwapi.Course
	Teachers []spwapi.Teacher
	Reviews  []spwapi.Review
}

// detail fetches the course, its teachers and its reviews concurrently; each
// failure degrades its own section with a toast instead of failing the page.
func (h coursePages) detail(c echo.Context) error {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}

	ctx := c.Request().Context()
	var (
		data                             courseDetailData
		courseErr, teacherErr, reviewErr error
		wg                               sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Course, courseErr = h.api.CourseDetail(ctx, courseID)
	}()
	go func() {
		defer wg.Done()
		data.Teachers, teacherErr = h.api.CourseTeachers(ctx, courseID)
	}()
	go func() {
		defer wg.Done()
		data.Reviews, reviewErr = h.api.CourseReviews(ctx, courseID)
	}()
	wg.Wait()

	if courseErr != nil {
		return courseErr
	}
	if teacherErr != nil {
		if err = h.apiFail(c, teacherErr, "could not load the teachers for this course"); err != nil {
			return err
		}
	}
	if reviewErr != nil {
		if err = h.apiFail(c, reviewErr, "could not load the reviews for this course"); err != nil {
			return err
		}
	}

	return h.render(c, http.StatusOK, "course_detail.html", data.Course.Name, data)
}

func (h coursePages) signup(c echo.Context) error {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}

	usr, ok := h.sess.Current(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login?next="+c.Request().URL.RequestURI())
	}

	if err = h.api.CourseSignup(c.Request().Context(), usr.Token, courseID); err != nil {
		if redirErr := h.apiFail(c, err, "sign up failed, please try again"); redirErr != nil {
			return redirErr
		}
	} else {
		h.sess.Flash(c, "success", "Signed up, we will be in touch")
	}
	return c.Redirect(http.StatusSeeOther, "/courses")
}

func (h coursePages) join(c echo.Context) error {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "course not found")
	}

	usr, ok := h.sess.Current(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login?next=/courses/"+c.Param("id"))
	}

	if err = h.api.CourseJoin(c.Request().Context(), usr.Token, courseID); err != nil {
		if redirErr := h.apiFail(c, err, "joining the course failed, please try again"); redirErr != nil {
			return redirErr
		}
		return c.Redirect(http.StatusSeeOther, "/courses/"+c.Param("id"))
	}

	h.sess.Flash(c, "success", "Course joined, you can now book lessons")
	return c.Redirect(http.StatusSeeOther, "/profile/booking?course_id="+c.Param("id"))
}
