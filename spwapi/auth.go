package spwapi

import (
	"context"
	"net/url"
	"strconv"
)

// Authenticated endpoints: all of these require the session token on top of
// the request signature.

func (c *Client) ProfileRetrieve(ctx context.Context, token string) (*Profile, error) {
	var out Profile
	if err := c.post(ctx, "/spwapi/auth/profile/retrieve", nil, &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}

type UpdateProfileRequest struct {
	NickName        string `json:"nick_name"`
	Avatar          string `json:"avatar"`
	LivingCountryID int64  `json:"living_country_id"`
	Phone           string `json:"phone"`
	NativeLanguage  string `json:"native_language"`
}

func (c *Client) ProfileUpdate(ctx context.Context, token string, req UpdateProfileRequest) error {
	return c.post(ctx, "/spwapi/auth/profile/update", req, nil, token)
}

func (c *Client) MemberList(ctx context.Context, token string) ([]Member, error) {
	var out []Member
	if err := c.post(ctx, "/spwapi/auth/profile/member/list", nil, &out, token); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveMemberRequest both creates (ID zero) and updates (ID set) a member.
type SaveMemberRequest struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	RelType     string `json:"rel_type"`
	RelDesc     string `json:"rel_desc"`
	Gender      int    `json:"gender"`
	Birthday    string `json:"birthday"`
	Personality string `json:"personality"`
	Character   string `json:"character"`
}

func (c *Client) MemberSave(ctx context.Context, token string, req SaveMemberRequest) (*Member, error) {
	var out Member
	if err := c.post(ctx, "/spwapi/auth/profile/member/add", req, &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MemberDelete(ctx context.Context, token string, memberID int64) error {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(memberID, 10))
	return c.get(ctx, "/spwapi/auth/profile/member/del", params, nil, token)
}

// CourseSignup registers interest in a course from the marketplace table; the
// endpoint predates /auth/course/join and keeps its camelCase payload field.
func (c *Client) CourseSignup(ctx context.Context, token string, courseID int64) error {
	body := struct {
		CourseID int64 `json:"courseId"`
	}{courseID}
	return c.post(ctx, "/spwapi/courses/signup", body, nil, token)
}

func (c *Client) CourseJoin(ctx context.Context, token string, courseID int64) error {
	return c.get(ctx, "/spwapi/auth/course/join", courseParams(courseID), nil, token)
}

func (c *Client) MyCourses(ctx context.Context, token string) ([]MyCourse, error) {
	var out []MyCourse
	if err := c.get(ctx, "/spwapi/auth/course/list", nil, &out, token); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConfirmBooking(ctx context.Context, token string, req ConfirmBookingRequest) error {
	return c.post(ctx, "/spwapi/auth/course/confirm", req, nil, token)
}

func (c *Client) LessonTimeList(ctx context.Context, token string, pn, ps int) (*LessonPage, error) {
	params := url.Values{}
	params.Set("pn", strconv.Itoa(pn))
	params.Set("ps", strconv.Itoa(ps))
	var out LessonPage
	if err := c.get(ctx, "/spwapi/auth/course/time/list", params, &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}

// LessonTimeRange fetches every lesson between two dates, for the week and
// month timetable views.
func (c *Client) LessonTimeRange(ctx context.Context, token string, startDate, endDate string) ([]Lesson, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	var out []Lesson
	if err := c.get(ctx, "/spwapi/auth/course/time/range", params, &out, token); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MeetingInfo(ctx context.Context, token string, bookingID int64) (*MeetingInfo, error) {
	params := url.Values{}
	params.Set("btid", strconv.FormatInt(bookingID, 10))
	var out MeetingInfo
	if err := c.get(ctx, "/spwapi/auth/course/meeting/fetch", params, &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}
