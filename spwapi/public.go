package spwapi

import (
	"context"
	"net/url"
	"strconv"
)

// Public endpoints: no session token required, only the request signature.

func (c *Client) Welcome(ctx context.Context) error {
	return c.get(ctx, "/spwapi/welcome", nil, nil, "")
}

// PublicConfig fetches the backend-published client settings. The payload is a
// loose key/value document the backend extends without notice, so it stays
// untyped.
func (c *Client) PublicConfig(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/spwapi/public", nil, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.get(ctx, "/spwapi/public/countries", nil, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Country  int64  `json:"country"`
	Language string `json:"language,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	var out RegisterResult
	if err := c.post(ctx, "/spwapi/register", req, &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

type LoginRequest struct {
	LoginName string `json:"login_name"`
	Password  string `json:"password"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var out LoginResult
	if err := c.post(ctx, "/spwapi/login", req, &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CourseList(ctx context.Context, pn, ps int) (*CoursePage, error) {
	params := url.Values{}
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))
	var out CoursePage
	if err := c.get(ctx, "/spwapi/course/fetch", params, &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CourseDetail(ctx context.Context, courseID int64) (*Course, error) {
	var out Course
	if err := c.get(ctx, "/spwapi/course/detail", courseParams(courseID), &out, ""); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CourseTeachers(ctx context.Context, courseID int64) ([]Teacher, error) {
	var out []Teacher
	if err := c.get(ctx, "/spwapi/course/teachers", courseParams(courseID), &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CourseReviews(ctx context.Context, courseID int64) ([]Review, error) {
	var out []Review
	if err := c.get(ctx, "/spwapi/course/reviews", courseParams(courseID), &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// TeacherSlots fetches the teacher's weekly availability windows for a course
// over the requested booking period.
func (c *Client) TeacherSlots(ctx context.Context, teacherID, courseID int64, startDate, endDate string) ([]AvailabilityWindow, error) {
	params := courseParams(courseID)
	params.Set("teacher_id", strconv.FormatInt(teacherID, 10))
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	var out []AvailabilityWindow
	if err := c.get(ctx, "/spwapi/course/teacher/slots", params, &out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func courseParams(courseID int64) url.Values {
	params := url.Values{}
	params.Set("course_id", strconv.FormatInt(courseID, 10))
	return params
}
